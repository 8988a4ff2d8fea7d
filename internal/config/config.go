package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Defaults for a fresh install.
const (
	DefaultBaseURL = "http://localhost:5000"
	DefaultLocale  = "en"
	EnvPrefix      = "ITEMDECK"
)

// ErrNotFound is returned by Load when no config file exists.
var ErrNotFound = errors.New("config not found")

// Config holds CLI configuration stored at ~/.itemdeck/config.
type Config struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key,omitempty"`
	Locale  string `yaml:"locale,omitempty"`
	Theme   string `yaml:"theme,omitempty"`
	VimKeys bool   `yaml:"vim_keys"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{BaseURL: DefaultBaseURL, Locale: DefaultLocale}
}

// Path returns the config file path.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".itemdeck", "config")
}

// Load reads and parses the config file. Returns error if missing or insecure.
func Load() (*Config, error) {
	path := Path()

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat config: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.fill()
	return cfg, nil
}

// Resolve loads the config file, falling back to defaults when it does not
// exist, and applies ITEMDECK_* environment overrides on top.
func Resolve() (*Config, error) {
	cfg, err := Load()
	if errors.Is(err, ErrNotFound) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides fields from ITEMDECK_BASE_URL, ITEMDECK_API_KEY,
// ITEMDECK_LOCALE, ITEMDECK_THEME and ITEMDECK_VIM_KEYS.
func (c *Config) ApplyEnv() {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if v.IsSet("base_url") {
		c.BaseURL = v.GetString("base_url")
	}
	if v.IsSet("api_key") {
		c.APIKey = v.GetString("api_key")
	}
	if v.IsSet("locale") {
		c.Locale = v.GetString("locale")
	}
	if v.IsSet("theme") {
		c.Theme = v.GetString("theme")
	}
	if v.IsSet("vim_keys") {
		c.VimKeys = v.GetBool("vim_keys")
	}
	c.fill()
}

// Debug reports whether ITEMDECK_DEBUG asks for a debug log.
func Debug() bool {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v.GetBool("debug")
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	return os.Chmod(path, 0600)
}

func (c *Config) fill() {
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.Locale = strings.TrimSpace(c.Locale)
	if c.Locale == "" {
		c.Locale = DefaultLocale
	}
}
