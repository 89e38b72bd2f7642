// Package config provides YAML-based configuration loading with environment variable expansion.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Validator is an interface for configuration validation.
type Validator interface {
	Validate() error
}

// Load reads filename and decodes it into target with Decode.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}
	if err := Decode(data, target); err != nil {
		return fmt.Errorf("config file %s: %w", filename, err)
	}
	return nil
}

// Decode expands environment references in data, unmarshals the YAML into
// target (keeping any defaults already set), and validates the result when
// target implements Validator.
//
// References use $VAR or ${VAR}; ${VAR:-fallback} yields fallback when VAR
// is unset or empty.
func Decode[T any](data []byte, target *T) error {
	expanded := os.Expand(string(data), lookupEnv)

	if err := yaml.Unmarshal([]byte(expanded), target); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	if validator, ok := any(target).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}

	return nil
}

func lookupEnv(key string) string {
	name, fallback, hasFallback := strings.Cut(key, ":-")
	if v := os.Getenv(name); v != "" || !hasFallback {
		return v
	}
	return fallback
}
