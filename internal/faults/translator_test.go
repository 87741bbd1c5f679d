// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package faults

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackendCausesShareFallback(t *testing.T) {
	// Transport failure, bad status, and malformed body must be
	// indistinguishable to the user.
	for _, c := range []Cause{CauseTransport, CauseBadStatus, CauseMalformed} {
		assert.Equal(t, FallbackReply, Translate(c), "cause %s", c)
	}
}

func TestVoiceCausesAreNotices(t *testing.T) {
	for _, c := range []Cause{CauseVoiceUnavailable, CauseVoiceStart, CauseVoiceRuntime} {
		got := Translate(c)
		assert.NotEmpty(t, got)
		assert.NotEqual(t, FallbackReply, got, "voice cause %s must not read like an assistant reply", c)
	}
}

func TestUnknownCauseNeverSurfacesRaw(t *testing.T) {
	assert.Equal(t, FallbackReply, Translate(CauseUnknown))
	assert.Equal(t, FallbackReply, Translate(Cause(99)))
}

func TestCauseString(t *testing.T) {
	tests := []struct {
		cause Cause
		want  string
	}{
		{CauseTransport, "transport"},
		{CauseBadStatus, "bad_status"},
		{CauseMalformed, "malformed"},
		{CauseVoiceUnavailable, "voice_unavailable"},
		{CauseVoiceStart, "voice_start"},
		{CauseVoiceRuntime, "voice_runtime"},
		{CauseUnknown, "unknown"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.cause.String())
	}
}
