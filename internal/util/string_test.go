// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxRunes int
		want     string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exactly at limit", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 8, "hello..."},
		{"zero limit", "hello", 0, ""},
		{"negative limit", "hello", -1, ""},
		{"tiny limit skips ellipsis", "hello", 2, "he"},
		{"multibyte runes kept intact", "crème brûlée", 8, "crème..."},
		{"cjk runes counted as one", "麻婆豆腐のレシピ", 5, "麻婆..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateRunes(tt.input, tt.maxRunes))
		})
	}
}

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"fits", "soup", 10, "soup"},
		{"ascii truncated", "hello world", 8, "hello..."},
		{"zero width", "soup", 0, ""},
		{"cjk counts double", "麻婆豆腐", 8, "麻婆豆腐"},
		{"cjk truncated", "麻婆豆腐のレシピ", 9, "麻婆豆..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateWidth(tt.input, tt.maxWidth))
		})
	}
}

func TestStringWidth(t *testing.T) {
	assert.Equal(t, 4, StringWidth("soup"))
	assert.Equal(t, 8, StringWidth("麻婆豆腐"))
	assert.Equal(t, 0, StringWidth(""))
}
