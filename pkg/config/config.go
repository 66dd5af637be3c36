// Package config provides YAML-based configuration loading with
// environment variable expansion.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Validator is implemented by configuration types that can validate
// themselves after loading.
type Validator interface {
	Validate() error
}

// Load reads a YAML file into target, expanding ${VAR} references from
// the environment first. If target implements Validator, it is
// validated after unmarshalling.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", filename, err)
	}

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), target); err != nil {
		return fmt.Errorf("parse config file %s: %w", filename, err)
	}

	if v, ok := any(target).(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}

	return nil
}

// LoadWithDefaults loads filename, falling back to defaultFile when the
// primary file does not exist.
func LoadWithDefaults[T any](filename, defaultFile string, target *T) error {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		if defaultFile != "" {
			return Load(defaultFile, target)
		}
		return fmt.Errorf("config file not found: %s", filename)
	}
	return Load(filename, target)
}
