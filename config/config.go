// Package config loads the settings of an edit session from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brunoga/sitepatch/block"
	"github.com/brunoga/sitepatch/history"
	"github.com/brunoga/sitepatch/internal/core"
)

// DefaultYAML documents every setting with its default value.
const DefaultYAML = `# sitepatch configuration
history:
  # Number of undo steps kept per session.
  max_size: 100

# Props holding nested blocks. Any other prop whose value is a list of
# blocks is treated as a slot too.
slots: [children, header, content, footer]

# Deep copy backend: go-clone, copystructure or deepcopy.
clone: go-clone

# Validate every patch against strict JSON Patch semantics before applying.
strict: false

log:
  level: info   # debug, info, warn or error
  format: text  # text or json
`

// HistoryConfig configures the undo history.
type HistoryConfig struct {
	MaxSize int `yaml:"max_size"`
}

// LogConfig configures the logger built by NewLogger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config models a sitepatch configuration file.
type Config struct {
	History HistoryConfig `yaml:"history"`
	Slots   []string      `yaml:"slots"`
	Clone   string        `yaml:"clone"`
	Strict  bool          `yaml:"strict"`
	Log     LogConfig     `yaml:"log"`
}

// Default returns the configuration described by DefaultYAML.
func Default() Config {
	return Config{
		History: HistoryConfig{MaxSize: history.DefaultMaxSize},
		Slots:   append([]string(nil), block.DefaultSlotNames...),
		Clone:   core.ClonerGoClone,
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Load reads the file at path. A missing file yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.History.MaxSize == 0 {
		c.History.MaxSize = history.DefaultMaxSize
	}
	if len(c.Slots) == 0 {
		c.Slots = append([]string(nil), block.DefaultSlotNames...)
	}
	c.Clone = strings.TrimSpace(c.Clone)
	if c.Clone == "" {
		c.Clone = core.ClonerGoClone
	}
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks that every setting has a usable value.
func (c Config) Validate() error {
	if c.History.MaxSize < 1 {
		return fmt.Errorf("history.max_size must be positive, got %d", c.History.MaxSize)
	}
	for _, s := range c.Slots {
		if strings.TrimSpace(s) == "" {
			return errors.New("slots: empty slot name")
		}
	}
	if _, err := core.ClonerByName(c.Clone); err != nil {
		return fmt.Errorf("clone: %w", err)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	return nil
}

// SlotFunc returns the slot detection configured by Slots.
func (c Config) SlotFunc() block.SlotFunc {
	if len(c.Slots) == 0 {
		return block.DefaultSlots
	}
	return block.Slots(c.Slots...)
}

// Cloner returns the configured deep copy backend.
func (c Config) Cloner() (core.Cloner, error) {
	return core.ClonerByName(c.Clone)
}
