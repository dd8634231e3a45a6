package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestFileName is the file FindManifest looks for.
const ManifestFileName = "pseudo.yml"

// ErrManifestNotFound is returned by FindManifest when no manifest exists in
// the start directory or any of its parents.
var ErrManifestNotFound = errors.New("pseudo.yml not found")

// Manifest represents the parsed contents of pseudo.yml.
type Manifest struct {
	Path         string
	Name         string
	Settings     Settings
	Programs     map[string]*ProgramSpec
	ProgramOrder []string
}

// Settings override interpreter defaults for every program in the manifest.
type Settings struct {
	MaxIterations int
	RandomSeed    *int64
}

// ProgramSpec describes one runnable program.
type ProgramSpec struct {
	Name  string
	Main  string
	Input string
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses pseudo.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	manifest := raw.toManifest(absPath)
	if err := manifest.validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// FindManifest walks from start towards the filesystem root looking for
// pseudo.yml.
func FindManifest(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ManifestFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ManifestFileName, origin, ErrManifestNotFound)
		}
		dir = parent
	}
}

func (m *Manifest) validate() error {
	var errs ValidationError
	if m.Name == "" {
		errs.Issues = append(errs.Issues, "name must be provided")
	}
	if m.Settings.MaxIterations < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("settings.max_iterations must be positive, got %d", m.Settings.MaxIterations))
	}
	if len(m.Programs) == 0 {
		errs.Issues = append(errs.Issues, "at least one program must be declared")
	}
	for _, name := range m.ProgramOrder {
		program := m.Programs[name]
		if name == "" {
			errs.Issues = append(errs.Issues, "programs must not use empty keys")
			continue
		}
		if program.Main == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("programs.%s requires a main source file", name))
		} else if filepath.IsAbs(program.Main) {
			errs.Issues = append(errs.Issues, fmt.Sprintf("programs.%s.main must be relative to the manifest", name))
		}
		if program.Input != "" && filepath.IsAbs(program.Input) {
			errs.Issues = append(errs.Issues, fmt.Sprintf("programs.%s.input must be relative to the manifest", name))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Dir is the directory holding the manifest.
func (m *Manifest) Dir() string {
	return filepath.Dir(m.Path)
}

// Program looks up a program by name, ignoring case and surrounding space.
func (m *Manifest) Program(name string) (*ProgramSpec, bool) {
	if m == nil {
		return nil, false
	}
	key := strings.TrimSpace(name)
	if program, ok := m.Programs[key]; ok {
		return program, true
	}
	for _, candidate := range m.ProgramOrder {
		if strings.EqualFold(candidate, key) {
			return m.Programs[candidate], true
		}
	}
	return nil, false
}

// ResolvePath turns a manifest-relative path into an absolute one and rejects
// paths that escape the manifest directory.
func (m *Manifest) ResolvePath(rel string) (string, error) {
	root := m.Dir()
	joined := filepath.Join(root, filepath.FromSlash(rel))
	within, err := filepath.Rel(root, joined)
	if err != nil {
		return "", fmt.Errorf("manifest: resolve %s: %w", rel, err)
	}
	if within == ".." || strings.HasPrefix(within, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("manifest: %s escapes %s", rel, root)
	}
	return joined, nil
}

type manifestFile struct {
	Name     string                  `yaml:"name"`
	Settings settingsYAML            `yaml:"settings"`
	Programs map[string]*programYAML `yaml:"programs"`
}

type settingsYAML struct {
	MaxIterations int    `yaml:"max_iterations"`
	RandomSeed    *int64 `yaml:"random_seed"`
}

type programYAML struct {
	Main  string `yaml:"main"`
	Input string `yaml:"input"`
}

func (mf manifestFile) toManifest(path string) *Manifest {
	result := &Manifest{
		Path: path,
		Name: strings.TrimSpace(mf.Name),
		Settings: Settings{
			MaxIterations: mf.Settings.MaxIterations,
			RandomSeed:    mf.Settings.RandomSeed,
		},
		Programs: make(map[string]*ProgramSpec, len(mf.Programs)),
	}
	for name, program := range mf.Programs {
		key := strings.TrimSpace(name)
		spec := &ProgramSpec{Name: key}
		if program != nil {
			spec.Main = strings.TrimSpace(program.Main)
			spec.Input = strings.TrimSpace(program.Input)
		}
		result.Programs[key] = spec
		result.ProgramOrder = append(result.ProgramOrder, key)
	}
	sort.Strings(result.ProgramOrder)
	return result
}
