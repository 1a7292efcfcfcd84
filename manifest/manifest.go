// Package manifest handles xm4s.toml project configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the project configuration file.
const FileName = "xm4s.toml"

// DefaultProgram is the program path used when none is configured.
const DefaultProgram = "input.txt"

// Manifest represents an xm4s.toml project configuration.
type Manifest struct {
	Program ProgramConfig `toml:"program"`
	Eval    EvalConfig    `toml:"eval"`
	Log     LogConfig     `toml:"log"`

	// Dir is the directory containing the xm4s.toml file (set at load time).
	Dir string `toml:"-"`
}

// ProgramConfig locates the program source.
type ProgramConfig struct {
	Path string `toml:"path"`
}

// EvalConfig tunes grid evaluation.
type EvalConfig struct {
	Workers int `toml:"workers"`
}

// LogConfig configures commonlog output.
type LogConfig struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Default returns the configuration used when no xm4s.toml exists.
func Default(dir string) *Manifest {
	m := &Manifest{Dir: dir}
	m.applyDefaults()
	return m
}

// Load parses an xm4s.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	if m.Eval.Workers < 0 {
		return nil, fmt.Errorf("%s: eval.workers must be >= 0, got %d", path, m.Eval.Workers)
	}

	m.applyDefaults()
	return &m, nil
}

func (m *Manifest) applyDefaults() {
	if m.Program.Path == "" {
		m.Program.Path = DefaultProgram
	}
}

// FindAndLoad walks up from startDir to find an xm4s.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// ProgramPath returns the program path, resolved against the manifest
// directory when relative.
func (m *Manifest) ProgramPath() string {
	if filepath.IsAbs(m.Program.Path) || m.Dir == "" {
		return m.Program.Path
	}
	return filepath.Join(m.Dir, m.Program.Path)
}

// LogPath returns the log file path, or nil to log to stderr.
func (m *Manifest) LogPath() *string {
	if m.Log.File == "" {
		return nil
	}
	path := m.Log.File
	if !filepath.IsAbs(path) && m.Dir != "" {
		path = filepath.Join(m.Dir, path)
	}
	return &path
}
