// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package speech wraps an optional speech-recognition capability behind a
// small state machine.
//
// The capability itself is a Recognizer: something that can start and stop a
// capture session and emits typed events while one is running. The Capture
// type owns exactly one Recognizer for the session's lifetime and exposes
// only toggle semantics to the rest of the application. When the host offers
// no recognizer at all, Capture degrades to a permanent Unavailable state
// instead of crashing or silently doing nothing.
package speech

import "context"

// EventKind identifies the kind of a capture event.
type EventKind int

const (
	// EventResult carries one final transcript string. It does not end the
	// capture session and never submits anything by itself.
	EventResult EventKind = iota

	// EventError is a mid-session recognition failure. The session is over;
	// any partial transcript is discarded.
	EventError

	// EventEnd means the capability stopped on its own, e.g. after silence
	// or a timeout. No error, no transcript.
	EventEnd
)

// String returns a short identifier for logging.
func (k EventKind) String() string {
	switch k {
	case EventResult:
		return "result"
	case EventError:
		return "error"
	case EventEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Event is one asynchronous occurrence from an active capture session.
type Event struct {
	Kind       EventKind
	Transcript string // set for EventResult
	Err        error  // set for EventError
}

// Recognizer is a speech-recognition capability.
//
// Implementations are acquired once and reused across capture sessions:
// Start/Stop bracket one session each, Events delivers that session's
// occurrences, and Close releases the underlying handle for good.
type Recognizer interface {
	// Start begins a capture session. It returns an error when the session
	// cannot start (capability busy, permission denied, gone away).
	Start(ctx context.Context) error

	// Stop ends the active capture session, if any.
	Stop() error

	// Events returns the channel capture events are delivered on. The
	// channel is closed when the recognizer is closed.
	Events() <-chan Event

	// Close releases the capability handle. No events are delivered after
	// Close returns.
	Close() error
}
