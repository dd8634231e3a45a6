package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pseudocode/interpreter-go/pkg/ast"
	"pseudocode/interpreter-go/pkg/interpreter"
	"pseudocode/interpreter-go/pkg/parser"
)

// Target is a resolved program ready to run: its source file, optional input
// file and the settings of the manifest it came from.
type Target struct {
	Name          string
	MainPath      string
	InputPath     string
	MaxIterations int
	RandomSeed    *int64
	Manifest      *Manifest
}

// ResolveTarget accepts either a path to a source file or the name of a
// program declared in the nearest pseudo.yml above dir.
func ResolveTarget(dir, arg string) (*Target, error) {
	manifest, err := manifestNear(dir)
	if err != nil {
		return nil, err
	}

	if manifest != nil {
		if program, ok := manifest.Program(arg); ok {
			return targetFromManifest(manifest, program)
		}
	}

	path := arg
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if manifest == nil {
			return nil, fmt.Errorf("%s is neither a source file nor a program in %s: %w", arg, ManifestFileName, statErr)
		}
		return nil, fmt.Errorf("%s is neither a source file nor a program in %s", arg, manifest.Path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", arg)
	}
	target := &Target{Name: filepath.Base(path), MainPath: path, Manifest: manifest}
	if manifest != nil {
		target.MaxIterations = manifest.Settings.MaxIterations
		target.RandomSeed = manifest.Settings.RandomSeed
	}
	return target, nil
}

func manifestNear(dir string) (*Manifest, error) {
	path, err := FindManifest(dir)
	if err != nil {
		if errors.Is(err, ErrManifestNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return LoadManifest(path)
}

func targetFromManifest(m *Manifest, program *ProgramSpec) (*Target, error) {
	mainPath, err := m.ResolvePath(program.Main)
	if err != nil {
		return nil, err
	}
	target := &Target{
		Name:          program.Name,
		MainPath:      mainPath,
		MaxIterations: m.Settings.MaxIterations,
		RandomSeed:    m.Settings.RandomSeed,
		Manifest:      m,
	}
	if program.Input != "" {
		if target.InputPath, err = m.ResolvePath(program.Input); err != nil {
			return nil, err
		}
	}
	return target, nil
}

// LoadSource reads and parses a program. The source text is returned even when
// parsing fails so callers can render the diagnostic against it.
func LoadSource(path string) (string, *ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read %s: %w", path, err)
	}
	source := string(data)
	program, err := parser.Parse(source)
	if err != nil {
		return source, nil, err
	}
	return source, program, nil
}

// OpenInput returns a line source over the target's input file. The returned
// close function is never nil.
func (t *Target) OpenInput() (interpreter.LineSource, func() error, error) {
	if t.InputPath == "" {
		return nil, func() error { return nil }, nil
	}
	file, err := os.Open(t.InputPath)
	if err != nil {
		return nil, func() error { return nil }, fmt.Errorf("open input %s: %w", t.InputPath, err)
	}
	return interpreter.NewReaderSource(file), file.Close, nil
}
