package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Dataset sources.
const (
	SourceFile   = "file"
	SourceSQLite = "sqlite"
	SourceDemo   = "demo"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Dataset DatasetConfig     `yaml:"dataset"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	Engine  EngineConfig      `yaml:"engine"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Dataset.Validate(); err != nil {
		return err
	}
	if c.Dataset.Source == SourceSQLite {
		if err := c.SQLite.Validate(); err != nil {
			return err
		}
	}
	return c.Engine.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// DatasetConfig selects where career data comes from.
//
// Source is one of:
//   - "file" (default): the YAML file at Path; Watch enables hot reload.
//   - "sqlite": the database at sqlite.path, filled by the import command.
//   - "demo": the built-in sample data.
type DatasetConfig struct {
	Source   string        `yaml:"source"`
	Path     string        `yaml:"path"`
	Watch    bool          `yaml:"watch"`
	Debounce time.Duration `yaml:"debounce"`
}

// Validate validates the dataset configuration.
func (c *DatasetConfig) Validate() error {
	if c.Source == "" {
		c.Source = SourceFile
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Source, validation.Required, validation.In(SourceFile, SourceSQLite, SourceDemo)),
		validation.Field(&c.Path, validation.When(c.Source == SourceFile, validation.Required)),
		validation.Field(&c.Debounce, validation.Min(time.Duration(0))),
	); err != nil {
		return err
	}
	if c.Watch && c.Source != SourceFile {
		return fmt.Errorf("dataset: watch requires source %q, got %q", SourceFile, c.Source)
	}
	return nil
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// EngineConfig tunes the query engine.
type EngineConfig struct {
	// MaxPaths caps the paths returned per enumeration; 0 is unbounded.
	MaxPaths int `yaml:"max_paths"`
}

// Validate validates the engine configuration.
func (c *EngineConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MaxPaths, validation.Min(0)),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Dataset: DatasetConfig{
			Source:   SourceFile,
			Path:     "./data/careers.yaml",
			Debounce: 200 * time.Millisecond,
		},
		SQLite: SQLiteConfig{
			Path: "./careergraph.db",
		},
	}
}
