package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = "vectorize.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the on-disk configuration format. It carries the default request
// settings applied before per-request overrides.
type File struct {
	// Defaults are the baseline vectorization settings.
	Defaults Vectorization `yaml:"defaults"`

	// MaxDimension resizes larger inputs down before processing. Zero
	// disables the resize.
	MaxDimension int `yaml:"max_dimension"`
}

// LoadFile reads and parses a YAML configuration file.
//
// A missing file returns ErrConfigNotFound so callers can distinguish "no
// config" from a broken one; parsed defaults are normalized, not validated,
// since a config file is a lenient surface.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	cf.Defaults = cf.Defaults.Normalize()
	return &cf, nil
}

// FindFile locates the configuration file, searching in order:
//
//  1. the explicit path, if given
//  2. vectorize.yaml in the current directory
//  3. vectorize.yaml in the XDG config directory
//
// Returns the path if found, or an empty string.
func FindFile(path string) string {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	p := filepath.Join(XDGConfigDir(), DefaultConfigFile)
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}
