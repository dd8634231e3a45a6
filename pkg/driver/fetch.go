package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

var (
	unsafeSegment = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	fullHash      = regexp.MustCompile(`^[0-9a-f]{40}$`)
)

// FetchExercise checks out url at rev into cacheDir/<url>/<commit> and returns
// that directory with the resolved commit. An empty rev means HEAD. A checkout
// that already exists for the commit is reused.
func FetchExercise(cacheDir, url, rev string) (string, string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", "", fmt.Errorf("fetch: empty repository url")
	}
	rev = strings.TrimSpace(rev)
	if rev == "" {
		rev = "HEAD"
	}
	repoDir := filepath.Join(cacheDir, sanitizePathSegment(url))
	if fullHash.MatchString(rev) {
		if dir := filepath.Join(repoDir, rev); isDir(dir) {
			return dir, rev, nil
		}
	}
	if err := os.MkdirAll(repoDir, 0o755); err != nil {
		return "", "", fmt.Errorf("fetch: create cache %s: %w", repoDir, err)
	}

	tmp, err := os.MkdirTemp(repoDir, ".fetch-")
	if err != nil {
		return "", "", fmt.Errorf("fetch: temp dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	repo, err := git.PlainClone(tmp, false, &git.CloneOptions{URL: url})
	if err != nil {
		return "", "", fmt.Errorf("fetch: clone %s: %w", url, err)
	}
	hash, err := resolveRevision(repo, rev)
	if err != nil {
		return "", "", fmt.Errorf("fetch: resolve %s in %s: %w", rev, url, err)
	}
	commit := hash.String()
	dest := filepath.Join(repoDir, commit)
	if isDir(dest) {
		return dest, commit, nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", "", fmt.Errorf("fetch: worktree: %w", err)
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		return "", "", fmt.Errorf("fetch: checkout %s: %w", commit, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		return "", "", fmt.Errorf("fetch: move checkout into cache: %w", err)
	}
	return dest, commit, nil
}

// resolveRevision also tries origin/<rev>, since a fresh clone only has a
// local branch for the remote's default.
func resolveRevision(repo *git.Repository, rev string) (*plumbing.Hash, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err == nil {
		return hash, nil
	}
	if remote, remoteErr := repo.ResolveRevision(plumbing.Revision("origin/" + rev)); remoteErr == nil {
		return remote, nil
	}
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, fmt.Errorf("revision %q not found", rev)
	}
	return nil, err
}

func sanitizePathSegment(value string) string {
	value = strings.TrimSuffix(value, ".git")
	cleaned := strings.Trim(unsafeSegment.ReplaceAllString(value, "_"), "_.")
	if cleaned == "" {
		return "repo"
	}
	return cleaned
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
