package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/vlist/internal/logging"
)

// SchemaVersion is the config schema version written by "config init".
const SchemaVersion = "1.0.0"

// schemaConstraint lists the schema versions this build understands.
const schemaConstraint = ">= 1.0.0, < 2.0.0"

// Split modes for turning input into items.
const (
	SplitLines  = "lines"
	SplitBlocks = "blocks"
)

const (
	outputTypeFile = "file"

	configFileYAML = "config.yaml"
	configFileTOML = "config.toml"
)

// Validation errors.
var (
	ErrUnsupportedVersion = errors.New("unsupported config version")
	ErrInvalidItemHeight  = errors.New("list.item_height must be >= 0")
	ErrInvalidHeight      = errors.New("list.height must be >= 0")
	ErrInvalidSplit       = errors.New("list.split must be 'lines' or 'blocks'")
	ErrInvalidLogLevel    = errors.New("invalid logging.level")
	ErrInvalidLogFormat   = errors.New("logging.format must be 'json', 'console' or 'text'")
	ErrUnknownKey         = errors.New("unknown config key")
)

// Config is the vlist configuration file.
type Config struct {
	// Version is the config schema version (semver).
	Version string        `yaml:"version" toml:"version"`
	List    ListConfig    `yaml:"list" toml:"list"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// ListConfig holds the defaults for the windowed list.
type ListConfig struct {
	// ItemHeight is the fixed row height; 0 selects the engine default.
	ItemHeight float64 `yaml:"item_height" toml:"item_height"`

	// Height is the viewport height; 0 means "fill the terminal".
	Height float64 `yaml:"height" toml:"height"`

	// DynamicHeight sizes each item by its line count.
	DynamicHeight bool `yaml:"dynamic_height" toml:"dynamic_height"`

	// Markdown renders every item through glamour before measuring it.
	Markdown bool `yaml:"markdown" toml:"markdown"`

	// Split is how input is cut into items: "lines" or "blocks".
	Split string `yaml:"split" toml:"split"`

	ClassName string            `yaml:"class_name,omitempty" toml:"class_name,omitempty"`
	Styles    map[string]string `yaml:"styles,omitempty" toml:"styles,omitempty"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
	File   string `yaml:"file,omitempty" toml:"file,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: SchemaVersion,
		List: ListConfig{
			ItemHeight: 1,
			Split:      SplitLines,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// New returns the default configuration overlaid with the user's config file
// (if present) and environment overrides. Load errors are logged and ignored.
func New() *Config {
	cfg := Default()

	if path, err := GetConfigPath(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if loadErr := cfg.LoadFrom(path); loadErr != nil {
				logger := GetLogger()
				logger.Warn().
					Str("component", "config").
					Err(loadErr).
					Str("path", path).
					Msg("failed to load config file, using defaults")
				cfg = Default()
			}
		}
	}

	cfg.applyEnv()
	return cfg
}

// NewFromFile returns the default configuration overlaid with the file at path
// and environment overrides. Unlike New, a load error is returned.
func NewFromFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.LoadFrom(path); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadFrom decodes the file at path onto c. Files ending in ".toml" are read as
// TOML, everything else as YAML.
func (c *Config) LoadFrom(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err = toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("parsing TOML config %s: %w", path, err)
		}
		return nil
	}

	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing YAML config %s: %w", path, err)
	}
	return nil
}

// Save writes c to path as YAML (or TOML for a ".toml" path), creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	var data []byte
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var sb strings.Builder
		if err := toml.NewEncoder(&sb).Encode(c); err != nil {
			return fmt.Errorf("encoding TOML config: %w", err)
		}
		data = []byte(sb.String())
	} else {
		out, err := yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("encoding YAML config: %w", err)
		}
		data = out
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// applyEnv applies VLIST_* environment overrides.
func (c *Config) applyEnv() {
	if v := os.Getenv("VLIST_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("VLIST_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("VLIST_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
}

// Validate checks the configuration for semantic errors.
func (c *Config) Validate() error {
	if err := validateVersion(c.Version); err != nil {
		return err
	}

	if c.List.ItemHeight < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidItemHeight, c.List.ItemHeight)
	}
	if c.List.Height < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidHeight, c.List.Height)
	}
	switch c.List.Split {
	case "", SplitLines, SplitBlocks:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidSplit, c.List.Split)
	}

	if c.Logging.Level != "" {
		if _, err := zerologLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("%w %q: %w", ErrInvalidLogLevel, c.Logging.Level, err)
		}
	}
	switch c.Logging.Format {
	case "", logging.FormatJSON, logging.FormatConsole, logging.FormatText:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	return nil
}

func validateVersion(version string) error {
	if version == "" {
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q is not a semantic version: %w", ErrUnsupportedVersion, version, err)
	}
	constraint, err := semver.NewConstraint(schemaConstraint)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedVersion, v, schemaConstraint)
	}
	return nil
}

// Get returns the value at a dotted key such as "list.item_height".
func (c *Config) Get(key string) (interface{}, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	var tree map[string]interface{}
	if err = yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	var current interface{} = tree
	for _, part := range strings.Split(key, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		current, ok = m[part]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
	}
	return current, nil
}
