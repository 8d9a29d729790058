/*
Package config manages the TOML config for keyserve.

	[trie]
	mode = "keypad"

	[trie.keypad]
	2 = "abc"

	[server]
	max_limit = 64
	min_prefix = 1
	max_prefix = 32

	[dict]
	dir = "data/"
	max_words = 50000
	default_frequency = 1

	[cache]
	max_entries = 2048

	[cli]
	default_limit = 16
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/bastiangx/keyserve/internal/utils"
	"github.com/charmbracelet/log"
)

// Trie modes.
const (
	ModeExact  = "exact"
	ModeKeypad = "keypad"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the entire config structure
type Config struct {
	Trie   TrieConfig   `toml:"trie"`
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	Cache  CacheConfig  `toml:"cache"`
	CLI    CliConfig    `toml:"cli"`
}

// TrieConfig picks the mapping strategy. Keypad overrides the default
// digit to letters layout when non-empty.
type TrieConfig struct {
	Mode   string            `toml:"mode"`
	Keypad map[string]string `toml:"keypad,omitempty"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit  int `toml:"max_limit"`
	MinPrefix int `toml:"min_prefix"`
	MaxPrefix int `toml:"max_prefix"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Dir              string `toml:"dir"`
	MaxWords         int    `toml:"max_words"`
	DefaultFrequency int    `toml:"default_frequency"`
}

// CacheConfig sizes the hot query cache. Zero disables it.
type CacheConfig struct {
	MaxEntries int `toml:"max_entries"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int `toml:"default_limit"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Trie: TrieConfig{Mode: ModeKeypad},
		Server: ServerConfig{
			MaxLimit:  64,
			MinPrefix: 1,
			MaxPrefix: 32,
		},
		Dict: DictConfig{
			Dir:              "data/",
			MaxWords:         50000,
			DefaultFrequency: 1,
		},
		Cache: CacheConfig{MaxEntries: 2048},
		CLI:   CliConfig{DefaultLimit: 16},
	}
}

// Validate checks the values the rest of the program relies on.
func (c *Config) Validate() error {
	switch c.Trie.Mode {
	case ModeExact, ModeKeypad:
	default:
		return fmt.Errorf("%w: unknown trie mode %q", ErrInvalidConfig, c.Trie.Mode)
	}
	for digit := range c.Trie.Keypad {
		if utf8.RuneCountInString(digit) != 1 {
			return fmt.Errorf("%w: keypad key %q must be a single character", ErrInvalidConfig, digit)
		}
	}
	if c.Server.MaxLimit < 1 {
		return fmt.Errorf("%w: server.max_limit must be positive", ErrInvalidConfig)
	}
	if c.Server.MinPrefix < 1 || c.Server.MaxPrefix < c.Server.MinPrefix {
		return fmt.Errorf("%w: server prefix bounds %d..%d", ErrInvalidConfig, c.Server.MinPrefix, c.Server.MaxPrefix)
	}
	if c.Dict.DefaultFrequency < 1 {
		return fmt.Errorf("%w: dict.default_frequency must be positive", ErrInvalidConfig)
	}
	if c.Dict.MaxWords < 0 || c.Cache.MaxEntries < 0 {
		return fmt.Errorf("%w: negative size", ErrInvalidConfig)
	}
	return nil
}

// KeypadLayout returns the configured layout keyed by rune, or nil when the
// default layout should be used.
func (c *Config) KeypadLayout() map[rune]string {
	if len(c.Trie.Keypad) == 0 {
		return nil
	}
	layout := make(map[rune]string, len(c.Trie.Keypad))
	for digit, letters := range c.Trie.Keypad {
		r, _ := utf8.DecodeRuneInString(digit)
		layout[r] = letters
	}
	return layout
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path passed by the caller
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath, defaultPath string) (*Config, string) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	if defaultPath == "" {
		return DefaultConfig(), ""
	}
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), ""
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Values missing from the file keep
// their defaults; a file that fails to decode as a whole is parsed section
// by section. The result is validated.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		config = tryPartialParse(configPath)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// tryPartialParse keeps whatever sections of the file hold usable values.
func tryPartialParse(configPath string) *Config {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config
	}

	if section, ok := utils.ExtractSection(tempConfig, "trie"); ok {
		if val, ok := utils.ExtractString(section, "mode"); ok {
			config.Trie.Mode = val
		}
		if val, ok := utils.ExtractStringMap(section, "keypad"); ok {
			config.Trie.Keypad = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractInt(section, "max_limit", &config.Server.MaxLimit)
		extractInt(section, "min_prefix", &config.Server.MinPrefix)
		extractInt(section, "max_prefix", &config.Server.MaxPrefix)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		if val, ok := utils.ExtractString(section, "dir"); ok {
			config.Dict.Dir = val
		}
		extractInt(section, "max_words", &config.Dict.MaxWords)
		extractInt(section, "default_frequency", &config.Dict.DefaultFrequency)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cache"); ok {
		extractInt(section, "max_entries", &config.Cache.MaxEntries)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractInt(section, "default_limit", &config.CLI.DefaultLimit)
	}
	return config
}

func extractInt(section map[string]any, key string, dst *int) {
	if val, ok := utils.ExtractInt64(section, key); ok {
		*dst = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
