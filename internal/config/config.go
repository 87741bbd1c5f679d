// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for ladle.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides. File location: ~/.ladle/config.toml. The file is read once per
// session; there is no hot reload, just as the speech capability's
// configuration is fixed at acquisition.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete ladle configuration.
type Config struct {
	// Backend configuration (the recipe assistant service)
	Backend BackendConfig `toml:"backend"`

	// Speech configuration (the optional host speech gateway)
	Speech SpeechConfig `toml:"speech"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// BackendConfig locates the recipe assistant's chat endpoint.
type BackendConfig struct {
	// URL is the base URL of the backend; /api/chat is appended.
	URL string `toml:"url"`
}

// SpeechConfig locates the optional speech gateway.
type SpeechConfig struct {
	// GatewayURL is the WebSocket URL of the host speech gateway.
	// Empty means the host offers no speech recognition: voice input
	// degrades to unavailable rather than failing at startup.
	GatewayURL string `toml:"gateway_url"`

	// Locale is the recognition locale, fixed for the session.
	Locale string `toml:"locale"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// AssistantName is the label shown on assistant messages.
	AssistantName string `toml:"assistant_name"`

	// Markdown renders assistant replies as Markdown when true.
	Markdown bool `toml:"markdown"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			URL: "http://localhost:8000",
		},
		Speech: SpeechConfig{
			GatewayURL: "", // no speech gateway unless configured
			Locale:     "en-US",
		},
		UI: UIConfig{
			AssistantName: "Chef",
			Markdown:      true,
		},
	}
}

// ConfigDir returns the ladle configuration directory (~/.ladle).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".ladle"), nil
}

// ConfigPath returns the path of the TOML configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration in order of precedence: built-in defaults, then
// the config file if present, then environment variables. A missing file is
// not an error; a malformed file is.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path, err := ConfigPath()
	if err == nil {
		if loadErr := loadFile(cfg, path); loadErr != nil {
			return nil, loadErr
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFrom reads configuration from an explicit file path plus environment
// overrides. Used by tests and the --config flag.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := loadFile(cfg, path); err != nil {
		return nil, err
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnv applies environment variable overrides.
func applyEnv(cfg *Config) {
	if v := os.Getenv("LADLE_BACKEND_URL"); v != "" {
		cfg.Backend.URL = v
	}
	if v := os.Getenv("LADLE_SPEECH_URL"); v != "" {
		cfg.Speech.GatewayURL = v
	}
	if v := os.Getenv("LADLE_LOCALE"); v != "" {
		cfg.Speech.Locale = v
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.url %q is not an absolute URL", c.Backend.URL)
	}

	if c.Speech.GatewayURL != "" {
		g, err := url.Parse(c.Speech.GatewayURL)
		if err != nil || (g.Scheme != "ws" && g.Scheme != "wss") {
			return fmt.Errorf("speech.gateway_url %q must be a ws:// or wss:// URL", c.Speech.GatewayURL)
		}
	}

	if c.Speech.Locale == "" {
		c.Speech.Locale = "en-US"
	}
	if c.UI.AssistantName == "" {
		c.UI.AssistantName = "Chef"
	}
	return nil
}

// HasSpeechGateway reports whether a speech gateway is configured.
func (c *Config) HasSpeechGateway() bool {
	return c.Speech.GatewayURL != ""
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalConfig *Config
	globalOnce   sync.Once
)

// Global returns the process-wide configuration, loading it on first use.
// A load failure falls back to defaults so the UI can still start and show
// the problem instead of dying before the screen exists.
func Global() *Config {
	globalOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			cfg = DefaultConfig()
		}
		globalConfig = cfg
	})
	return globalConfig
}

// SetGlobal replaces the process-wide configuration. Used by startup after
// flag parsing and by tests.
func SetGlobal(cfg *Config) {
	globalOnce.Do(func() {})
	globalConfig = cfg
}
