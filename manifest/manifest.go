// Package manifest handles aoc.toml project configuration.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileNames lists the manifest names searched for, in order of preference.
var FileNames = []string{"aoc.toml", "aoc.yaml", "aoc.yml"}

var validate = validator.New()

// Manifest represents an aoc.toml project configuration.
type Manifest struct {
	Inputs Inputs       `toml:"inputs" yaml:"inputs"`
	Log    LogConfig    `toml:"log" yaml:"log"`
	Solver SolverConfig `toml:"solver" yaml:"solver"`

	// Dir is the directory containing the manifest file (set at load time).
	Dir string `toml:"-" yaml:"-"`
}

// Inputs configures where puzzle inputs live.
type Inputs struct {
	Dir string `toml:"dir" yaml:"dir" validate:"required"`
}

// LogConfig configures commonlog.
type LogConfig struct {
	Verbosity int    `toml:"verbosity" yaml:"verbosity" validate:"gte=-4,lte=4"`
	File      string `toml:"file" yaml:"file"`
}

// SolverConfig configures the self-reproduction search.
type SolverConfig struct {
	MaxChunk       uint64        `toml:"max-chunk" yaml:"max-chunk" validate:"gte=1,lte=8"`
	SkipShapeCheck bool          `toml:"skip-shape-check" yaml:"skip-shape-check"`
	BruteForce     bool          `toml:"brute-force" yaml:"brute-force"`
	BruteTimeout   time.Duration `toml:"brute-timeout" yaml:"brute-timeout" validate:"gte=0"`
}

// Default returns the configuration used when no manifest is present.
func Default() *Manifest {
	m := &Manifest{}
	m.applyDefaults()
	return m
}

func (m *Manifest) applyDefaults() {
	if m.Inputs.Dir == "" {
		m.Inputs.Dir = "inputs"
	}
	if m.Solver.MaxChunk == 0 {
		m.Solver.MaxChunk = 8
	}
}

// Validate checks field constraints.
func (m *Manifest) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("invalid manifest: %w", err)
	}
	return nil
}

// Load parses the manifest in the given directory, trying each of FileNames.
func Load(dir string) (*Manifest, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, fmt.Errorf("cannot read manifest in %s: %w", dir, os.ErrNotExist)
}

// LoadFile parses a manifest file, choosing the decoder by extension.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	default:
		err = toml.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find a manifest, then loads and
// returns it. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		m, err := Load(dir)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// InputsDir returns the absolute inputs directory.
func (m *Manifest) InputsDir() string {
	if filepath.IsAbs(m.Inputs.Dir) {
		return m.Inputs.Dir
	}
	return filepath.Join(m.Dir, m.Inputs.Dir)
}

// InputPath returns the input file for a day, e.g. inputs/day17.txt.
func (m *Manifest) InputPath(day int) string {
	return filepath.Join(m.InputsDir(), fmt.Sprintf("day%02d.txt", day))
}

// LogFile returns the configured log file, or nil to log to stderr.
func (m *Manifest) LogFile() *string {
	if m.Log.File == "" {
		return nil
	}
	path := m.Log.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.Dir, path)
	}
	return &path
}
