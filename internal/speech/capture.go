// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package speech

import (
	"context"
	"errors"
	"fmt"
)

// =============================================================================
// CAPTURE STATE
// =============================================================================

// State is the voice capture state.
type State int

const (
	// StateUnavailable means no recognizer exists. Entered permanently at
	// construction; Toggle never leaves it.
	StateUnavailable State = iota

	// StateIdle means a recognizer exists and no capture session is active.
	StateIdle

	// StateListening means a capture session is active.
	StateListening
)

// String returns the state name for display and logging.
func (s State) String() string {
	switch s {
	case StateUnavailable:
		return "unavailable"
	case StateIdle:
		return "idle"
	case StateListening:
		return "listening"
	default:
		return "unknown"
	}
}

// ErrUnavailable is returned by Toggle when the host offers no speech
// recognition capability.
var ErrUnavailable = errors.New("speech recognition is not available")

// =============================================================================
// CAPTURE ADAPTER
// =============================================================================

// Capture is the voice capture state machine. It exclusively owns the one
// Recognizer handle for the session's lifetime; nothing else starts, stops,
// or reads the capability directly.
//
// Capture is not safe for concurrent use. It is driven from the single
// event-loop goroutine, which also serializes its state transitions.
type Capture struct {
	rec   Recognizer
	state State
}

// NewCapture wraps a recognizer. A nil recognizer yields a Capture that is
// permanently Unavailable.
func NewCapture(rec Recognizer) *Capture {
	if rec == nil {
		return &Capture{state: StateUnavailable}
	}
	return &Capture{rec: rec, state: StateIdle}
}

// State returns the current capture state.
func (c *Capture) State() State {
	return c.state
}

// Listening reports whether a capture session is active.
func (c *Capture) Listening() bool {
	return c.state == StateListening
}

// Available reports whether the host offers speech recognition at all.
func (c *Capture) Available() bool {
	return c.state != StateUnavailable
}

// Events returns the recognizer's event channel, or nil when Unavailable.
func (c *Capture) Events() <-chan Event {
	if c.rec == nil {
		return nil
	}
	return c.rec.Events()
}

// Toggle flips the capture session on or off.
//
//   - Unavailable: reports ErrUnavailable, no state change.
//   - Idle: asks the recognizer to start; Listening on success, otherwise
//     stays Idle and returns the start failure. The draft is never touched.
//   - Listening: asks the recognizer to stop and returns to Idle. A stop
//     failure still lands in Idle — at most one session may be active.
func (c *Capture) Toggle(ctx context.Context) error {
	switch c.state {
	case StateUnavailable:
		return ErrUnavailable

	case StateIdle:
		if err := c.rec.Start(ctx); err != nil {
			return fmt.Errorf("starting capture: %w", err)
		}
		c.state = StateListening
		return nil

	case StateListening:
		err := c.rec.Stop()
		c.state = StateIdle
		if err != nil {
			return fmt.Errorf("stopping capture: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("capture in unknown state %d", c.state)
	}
}

// Observe applies an event's state transition and hands the event back for
// the caller to act on (write the draft, show a notice).
//
// A result leaves the state alone: the session keeps listening until the
// next Toggle or an end event. Errors and ends both return to Idle.
func (c *Capture) Observe(ev Event) Event {
	switch ev.Kind {
	case EventError, EventEnd:
		if c.state == StateListening {
			c.state = StateIdle
		}
	}
	return ev
}

// Close releases the recognizer unconditionally, stopping an active session
// first if one exists. After Close the capture is permanently Unavailable.
func (c *Capture) Close() error {
	if c.rec == nil {
		return nil
	}

	var stopErr error
	if c.state == StateListening {
		stopErr = c.rec.Stop()
	}
	closeErr := c.rec.Close()
	c.rec = nil
	c.state = StateUnavailable

	if stopErr != nil {
		return stopErr
	}
	return closeErr
}
