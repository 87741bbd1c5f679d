// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package faults maps failure causes to the user-visible text shown for them.
//
// Every failure mode in the application is funneled through Translate so that
// failures surface as conversation entries or notices, never as broken UI
// state. The mapping lives in its own package so new causes and messages can
// be added without touching the dispatcher or the voice capture code.
package faults

// Cause identifies where a failure came from.
type Cause int

const (
	// CauseUnknown covers failures that no component classified.
	CauseUnknown Cause = iota

	// CauseTransport is a network failure: the request could not complete.
	CauseTransport

	// CauseBadStatus is a non-success HTTP status from the backend.
	CauseBadStatus

	// CauseMalformed is a success status whose body lacks a usable response.
	CauseMalformed

	// CauseVoiceUnavailable means the host offers no speech recognition.
	CauseVoiceUnavailable

	// CauseVoiceStart means a capture session could not be started
	// (capability busy, permission denied, and similar).
	CauseVoiceStart

	// CauseVoiceRuntime is a mid-session recognition failure.
	CauseVoiceRuntime
)

// String returns a short identifier for logging.
func (c Cause) String() string {
	switch c {
	case CauseTransport:
		return "transport"
	case CauseBadStatus:
		return "bad_status"
	case CauseMalformed:
		return "malformed"
	case CauseVoiceUnavailable:
		return "voice_unavailable"
	case CauseVoiceStart:
		return "voice_start"
	case CauseVoiceRuntime:
		return "voice_runtime"
	default:
		return "unknown"
	}
}

// FallbackReply is the fixed assistant reply appended when a submission's
// backend call fails for any reason. It matches the apology the recipe
// service itself sends when it hits an internal error, so a dead network is
// indistinguishable from an unhelpful answer.
const FallbackReply = "Sorry, I encountered an error while processing your message. Please try again."

// Notice texts for voice capture failures. These surface as status notices,
// not as transcript entries.
const (
	noticeVoiceUnavailable = "Voice input isn't available on this system."
	noticeVoiceStart       = "Couldn't start voice capture. Check your microphone and try again."
	noticeVoiceRuntime     = "Voice capture stopped unexpectedly. Tap the toggle to try again."
)

// Translate maps a failure cause to its user-visible text.
//
// All backend causes currently map to the single FallbackReply; voice causes
// map to their notices. Unknown causes get the fallback reply so nothing ever
// surfaces raw.
func Translate(c Cause) string {
	switch c {
	case CauseTransport, CauseBadStatus, CauseMalformed:
		return FallbackReply
	case CauseVoiceUnavailable:
		return noticeVoiceUnavailable
	case CauseVoiceStart:
		return noticeVoiceStart
	case CauseVoiceRuntime:
		return noticeVoiceRuntime
	default:
		return FallbackReply
	}
}
