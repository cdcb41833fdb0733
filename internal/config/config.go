// Package config loads vault configuration from an optional YAML file.
//
// Values missing from the file fall back to defaults; the merged result is
// validated against an embedded CUE schema before use.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/pardal23/gato23/internal/classify"
)

//go:embed schema.cue
var schemaCUE string

const (
	// DefaultDirName is the data directory created under the user's home.
	DefaultDirName = ".vault"

	// DatabaseFile is the default database filename inside the data directory.
	DatabaseFile = "vault.db"

	// SlotFile is the editor text slot filename inside the data directory.
	SlotFile = "editor.txt"
)

// Config holds all vault configuration.
type Config struct {
	DataDir    string           `yaml:"data_dir" json:"data_dir"`
	Database   string           `yaml:"database" json:"database"`
	Classifier ClassifierConfig `yaml:"classifier" json:"classifier"`
	Log        LogConfig        `yaml:"log" json:"log"`
}

// ClassifierConfig holds text/binary classification settings.
type ClassifierConfig struct {
	Threshold float64 `yaml:"threshold" json:"threshold"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `yaml:"level" json:"level"`
	Development bool   `yaml:"development" json:"development"`
}

// Default returns the default configuration.
func Default() *Config {
	dir := DefaultDirName
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, DefaultDirName)
	}

	return &Config{
		DataDir:  dir,
		Database: filepath.Join(dir, DatabaseFile),
		Classifier: ClassifierConfig{
			Threshold: classify.DefaultThreshold,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result. An empty path returns the validated defaults.
//
// When the file sets data_dir but not database, the database moves into the
// configured data directory.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.merge(file)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) merge(file Config) {
	if file.DataDir != "" {
		c.DataDir = file.DataDir
		c.Database = filepath.Join(file.DataDir, DatabaseFile)
	}
	if file.Database != "" {
		c.Database = file.Database
	}
	if file.Classifier.Threshold != 0 {
		c.Classifier.Threshold = file.Classifier.Threshold
	}
	if file.Log.Level != "" {
		c.Log.Level = file.Log.Level
	}
	if file.Log.Development {
		c.Log.Development = true
	}
}

// SlotPath returns the location of the editor text slot.
func (c *Config) SlotPath() string {
	return filepath.Join(c.DataDir, SlotFile)
}

// Validate checks the configuration against the embedded CUE schema.
func (c *Config) Validate() error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Config"))
	if !def.Exists() {
		return errors.New("config schema has no #Config definition")
	}

	value := def.Unify(ctx.Encode(c))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return err
	}
	return nil
}
