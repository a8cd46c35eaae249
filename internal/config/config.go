// Package config loads an optional on-disk defaults file so CLI flags don't
// need to be repeated across every invocation against the same endpoint.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds defaults applied when the matching CLI flag is unset.
type Config struct {
	Socket   string `yaml:"socket"`
	Size     string `yaml:"size"`    // "COLSxROWS"
	Emulator string `yaml:"emulator"` // "xterm" or "custom"
	PtyDump  string `yaml:"pty_dump"`
}

// ConfigDir returns the termctl configuration directory (~/.termctl/).
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".termctl")
	}
	return filepath.Join(home, ".termctl")
}

// Load reads the termctl config from ~/.termctl/config.yaml.
// If the file does not exist, it returns an empty Config with no error.
func Load() (*Config, error) {
	return LoadFrom(filepath.Join(ConfigDir(), "config.yaml"))
}

// LoadFrom reads the termctl config from the given path.
// If the file does not exist, it returns an empty Config with no error.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
