package driver

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"pseudocode/interpreter-go/pkg/diagnostics"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}

func TestLoadManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestFileName), `
name: week-3
settings:
  max_iterations: 500
  random_seed: 7
programs:
  hello:
    main: src/hello.pseudo
  average:
    main: src/average.pseudo
    input: data/average.txt
`)
	manifest, err := LoadManifest(filepath.Join(root, ManifestFileName))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if manifest.Name != "week-3" || manifest.Settings.MaxIterations != 500 {
		t.Fatalf("unexpected manifest %+v", manifest)
	}
	if manifest.Settings.RandomSeed == nil || *manifest.Settings.RandomSeed != 7 {
		t.Fatalf("random seed not decoded")
	}
	if got := strings.Join(manifest.ProgramOrder, ","); got != "average,hello" {
		t.Fatalf("unexpected program order %s", got)
	}
	program, ok := manifest.Program("Average")
	if !ok || program.Input != "data/average.txt" {
		t.Fatalf("case-insensitive lookup failed: %+v", program)
	}
	path, err := manifest.ResolvePath(program.Main)
	if err != nil || path != filepath.Join(root, "src", "average.pseudo") {
		t.Fatalf("ResolvePath = %q, %v", path, err)
	}
	if _, err := manifest.ResolvePath("../outside.pseudo"); err == nil {
		t.Fatalf("expected escaping path to be rejected")
	}
}

func TestLoadManifestValidation(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ManifestFileName)
	writeFile(t, path, `
settings:
  max_iterations: -1
programs:
  broken:
    input: /abs/input.txt
`)
	_, err := LoadManifest(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{"name must be provided", "max_iterations", "requires a main", "input must be relative"}
	for _, fragment := range want {
		if !strings.Contains(verr.Error(), fragment) {
			t.Fatalf("expected issue mentioning %q in %s", fragment, verr.Error())
		}
	}
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ManifestFileName)
	writeFile(t, path, `
name: x
programs:
  a:
    main: a.pseudo
    entry: b.pseudo
`)
	if _, err := LoadManifest(path); err == nil || !strings.Contains(err.Error(), "entry") {
		t.Fatalf("expected unknown field error, got %v", err)
	}

	writeFile(t, path, "")
	if _, err := LoadManifest(path); err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("expected empty manifest error, got %v", err)
	}
}

func TestFindManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestFileName), "name: test\n")
	child := filepath.Join(root, "src", "nested")
	if err := os.MkdirAll(child, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	found, err := FindManifest(child)
	if err != nil {
		t.Fatalf("FindManifest returned error: %v", err)
	}
	if want := filepath.Join(root, ManifestFileName); found != want {
		t.Fatalf("FindManifest = %q, want %q", found, want)
	}

	if _, err := FindManifest(t.TempDir()); !errors.Is(err, ErrManifestNotFound) {
		t.Fatalf("expected ErrManifestNotFound, got %v", err)
	}
}

func TestResolveTarget(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestFileName), `
name: set
settings:
  max_iterations: 50
programs:
  echo:
    main: src/echo.pseudo
    input: data/echo.txt
`)
	writeFile(t, filepath.Join(root, "src", "echo.pseudo"), "DECLARE S : STRING\nINPUT S\nOUTPUT S\n")
	writeFile(t, filepath.Join(root, "data", "echo.txt"), "first\nsecond\n")
	writeFile(t, filepath.Join(root, "src", "loose.pseudo"), "OUTPUT 1\n")

	target, err := ResolveTarget(root, "echo")
	if err != nil {
		t.Fatalf("ResolveTarget: %v", err)
	}
	if target.MainPath != filepath.Join(root, "src", "echo.pseudo") || target.MaxIterations != 50 {
		t.Fatalf("unexpected target %+v", target)
	}
	input, closeInput, err := target.OpenInput()
	if err != nil {
		t.Fatalf("OpenInput: %v", err)
	}
	defer closeInput()
	for _, want := range []string{"first", "second"} {
		line, err := input.ReadLine()
		if err != nil || line != want {
			t.Fatalf("expected %q, got %q (%v)", want, line, err)
		}
	}
	if _, err := input.ReadLine(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}

	direct, err := ResolveTarget(filepath.Join(root, "src"), "loose.pseudo")
	if err != nil {
		t.Fatalf("ResolveTarget direct: %v", err)
	}
	if direct.Manifest == nil || direct.MaxIterations != 50 || direct.InputPath != "" {
		t.Fatalf("direct file should inherit manifest settings: %+v", direct)
	}

	if _, err := ResolveTarget(root, "missing"); err == nil {
		t.Fatalf("expected unknown target to fail")
	}
}

func TestLoadSource(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.pseudo")
	writeFile(t, good, "OUTPUT 1\n")
	src, program, err := LoadSource(good)
	if err != nil || program == nil || len(program.Statements) != 1 || src != "OUTPUT 1\n" {
		t.Fatalf("LoadSource: %v %v", program, err)
	}

	bad := filepath.Join(dir, "bad.pseudo")
	writeFile(t, bad, "IF TRUE\nOUTPUT 1\nENDIF\n")
	src, _, err = LoadSource(bad)
	if !errors.Is(err, diagnostics.KindUnexpectedToken) || src == "" {
		t.Fatalf("expected syntax error with source, got %v", err)
	}
}

func initGitRepo(t *testing.T, dir string) string {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	return commitAll(t, repo, dir, "init")
}

func commitAll(t *testing.T, repo *git.Repository, dir, message string) string {
	t.Helper()
	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	if err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == filepath.Join(dir, ".git") {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		_, err = worktree.Add(filepath.ToSlash(rel))
		return err
	}); err != nil {
		t.Fatalf("stage files: %v", err)
	}
	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Pseudo CLI",
			Email: "pseudo@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return hash.String()
}

func TestFetchExercise(t *testing.T) {
	root := t.TempDir()
	repoDir := filepath.Join(root, "exercises")
	writeFile(t, filepath.Join(repoDir, ManifestFileName), "name: exercises\nprograms:\n  a:\n    main: a.pseudo\n")
	writeFile(t, filepath.Join(repoDir, "a.pseudo"), "OUTPUT \"v1\"\n")
	first := initGitRepo(t, repoDir)

	repo, err := git.PlainOpen(repoDir)
	if err != nil {
		t.Fatalf("PlainOpen: %v", err)
	}
	writeFile(t, filepath.Join(repoDir, "a.pseudo"), "OUTPUT \"v2\"\n")
	second := commitAll(t, repo, repoDir, "second")

	cache := filepath.Join(root, "cache")
	dir, commit, err := FetchExercise(cache, repoDir, "")
	if err != nil {
		t.Fatalf("FetchExercise HEAD: %v", err)
	}
	if commit != second {
		t.Fatalf("HEAD resolved to %s, want %s", commit, second)
	}
	data, err := os.ReadFile(filepath.Join(dir, "a.pseudo"))
	if err != nil || !strings.Contains(string(data), "v2") {
		t.Fatalf("unexpected checkout content %q (%v)", data, err)
	}

	oldDir, oldCommit, err := FetchExercise(cache, repoDir, first)
	if err != nil {
		t.Fatalf("FetchExercise first: %v", err)
	}
	if oldCommit != first || oldDir == dir {
		t.Fatalf("expected separate checkout for %s, got %s at %s", first, oldCommit, oldDir)
	}
	data, err = os.ReadFile(filepath.Join(oldDir, "a.pseudo"))
	if err != nil || !strings.Contains(string(data), "v1") {
		t.Fatalf("unexpected checkout content %q (%v)", data, err)
	}

	again, _, err := FetchExercise(cache, repoDir, first)
	if err != nil || again != oldDir {
		t.Fatalf("expected cached checkout reuse, got %s (%v)", again, err)
	}

	if _, _, err := FetchExercise(cache, repoDir, "no-such-branch"); err == nil {
		t.Fatalf("expected unknown revision to fail")
	}
}

func TestSanitizePathSegment(t *testing.T) {
	cases := map[string]string{
		"https://github.com/acme/week-3.git": "https_github.com_acme_week-3",
		"/tmp/repo":                          "tmp_repo",
		"::":                                 "repo",
	}
	for in, want := range cases {
		if got := sanitizePathSegment(in); got != want {
			t.Fatalf("sanitizePathSegment(%q) = %q, want %q", in, got, want)
		}
	}
}
