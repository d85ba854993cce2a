package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults holds persistent preferences loaded from a YAML file. Every field
// can still be overridden by the matching CLI flag; only values present in
// the file replace the built-in defaults.
type Defaults struct {
	// Level is the default recursion depth.
	Level *int `yaml:"level"`

	// MinSize is the default minimum size threshold, human-readable.
	MinSize string `yaml:"min_size"`

	// Sort is the default sort key (size or name).
	Sort string `yaml:"sort"`

	// Reverse flips the default sort direction.
	Reverse *bool `yaml:"reverse"`

	// Tree enables tree output by default.
	Tree *bool `yaml:"tree"`

	// Format is the default path format (absolute, relative, basename).
	Format string `yaml:"format"`

	// Workers is the default size-measurement pool bound.
	Workers *int `yaml:"workers"`

	// LogLevel is the default diagnostic verbosity.
	LogLevel string `yaml:"log_level"`
}

// DefaultsFileName is the per-user preferences file, looked up under the
// home directory.
const DefaultsFileName = ".duscan/config.yaml"

// LoadDefaults reads a Defaults file. A missing file is not an error and
// yields an empty Defaults; a malformed file is an error.
func LoadDefaults(path string) (*Defaults, error) {
	d := &Defaults{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, d); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return d, nil
}

// LoadUserDefaults loads the preferences file from the user's home
// directory.
func LoadUserDefaults() (*Defaults, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return &Defaults{}, nil
	}
	return LoadDefaults(filepath.Join(home, DefaultsFileName))
}
