// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:8000", cfg.Backend.URL)
	assert.Empty(t, cfg.Speech.GatewayURL)
	assert.Equal(t, "en-US", cfg.Speech.Locale)
	assert.Equal(t, "Chef", cfg.UI.AssistantName)
	assert.True(t, cfg.UI.Markdown)
	assert.False(t, cfg.HasSpeechGateway())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[backend]
url = "http://kitchen.local:9000"

[speech]
gateway_url = "ws://localhost:7700/asr"
locale = "fr-FR"

[ui]
assistant_name = "Sous-chef"
markdown = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "http://kitchen.local:9000", cfg.Backend.URL)
	assert.Equal(t, "ws://localhost:7700/asr", cfg.Speech.GatewayURL)
	assert.True(t, cfg.HasSpeechGateway())
	assert.Equal(t, "fr-FR", cfg.Speech.Locale)
	assert.Equal(t, "Sous-chef", cfg.UI.AssistantName)
	assert.False(t, cfg.UI.Markdown)
}

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Backend.URL, cfg.Backend.URL)
}

func TestLoadFromMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("backend = {{{"), 0o644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LADLE_BACKEND_URL", "http://override:1234")
	t.Setenv("LADLE_SPEECH_URL", "wss://override:5678/asr")
	t.Setenv("LADLE_LOCALE", "de-DE")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, "http://override:1234", cfg.Backend.URL)
	assert.Equal(t, "wss://override:5678/asr", cfg.Speech.GatewayURL)
	assert.Equal(t, "de-DE", cfg.Speech.Locale)
}

func TestValidateRejectsBadBackendURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend.URL = "not a url"
	assert.Error(t, cfg.Validate())

	cfg.Backend.URL = "/relative/only"
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNonWebSocketGateway(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Speech.GatewayURL = "http://localhost:7700/asr"
	assert.Error(t, cfg.Validate())
}

func TestValidateBackfillsBlanks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Speech.Locale = ""
	cfg.UI.AssistantName = ""

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "en-US", cfg.Speech.Locale)
	assert.Equal(t, "Chef", cfg.UI.AssistantName)
}

func TestSetGlobal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.AssistantName = "Test Chef"
	SetGlobal(cfg)

	assert.Equal(t, "Test Chef", Global().UI.AssistantName)
}
