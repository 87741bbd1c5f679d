// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation transcript.
package model

import "time"

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript holds the ordered, append-only record of the conversation.
//
// The append order is the conversation order: entries are never removed,
// reordered, or deduplicated. The transcript lives for the session's lifetime
// and is not persisted.
type Transcript struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	messages []*Message
	version  uint64
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	now := time.Now()
	return &Transcript{
		CreatedAt: now,
		UpdatedAt: now,
		messages:  make([]*Message, 0),
	}
}

// =============================================================================
// APPEND-ONLY CONTRACT
// =============================================================================

// Append adds a message to the end of the transcript.
// Nil messages are ignored so a failed constructor can never corrupt the log.
func (t *Transcript) Append(msg *Message) {
	if msg == nil {
		return
	}
	t.messages = append(t.messages, msg)
	t.UpdatedAt = time.Now()
	t.version++
}

// AppendUser creates and appends a user message, returning it.
func (t *Transcript) AppendUser(content string) *Message {
	msg := NewUserMessage(content)
	t.Append(msg)
	return msg
}

// AppendAssistant creates and appends an assistant message, returning it.
func (t *Transcript) AppendAssistant(content string) *Message {
	msg := NewAssistantMessage(content)
	t.Append(msg)
	return msg
}

// All returns the full ordered sequence of messages for rendering.
// The returned slice is a copy; mutating it does not affect the transcript.
func (t *Transcript) All() []*Message {
	out := make([]*Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages in the transcript.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last returns the most recent message, or nil if the transcript is empty.
func (t *Transcript) Last() *Message {
	if len(t.messages) == 0 {
		return nil
	}
	return t.messages[len(t.messages)-1]
}

// IsEmpty returns true if there are no messages.
func (t *Transcript) IsEmpty() bool {
	return len(t.messages) == 0
}

// Version returns a counter that increases on every append. Renderers use it
// to detect that the projection is stale without diffing message content.
func (t *Transcript) Version() uint64 {
	return t.version
}
