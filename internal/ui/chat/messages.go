// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file defines the Bubble Tea message types used by the chat interface:
//   - Dispatch: resolution of one submission's backend call
//   - Voice: capture events bridged from the recognizer's channel
//   - Notices: transient status-bar text
//
// All message types follow Bubble Tea conventions and are immutable.

package chat

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ladle-tui/internal/faults"
	"github.com/jeranaias/ladle-tui/internal/speech"
)

// =============================================================================
// DISPATCH MESSAGES
// =============================================================================

// ReplyMsg delivers the assistant's reply for one submission. Exactly one
// ReplyMsg or FailedMsg resolves per accepted submission; either way exactly
// one assistant entry is appended. Replies land in arrival order — nothing
// correlates a reply back to the submission that triggered it.
type ReplyMsg struct {
	Text string
}

// FailedMsg reports that a submission's backend call failed. The cause is
// already classified; the update loop only translates and appends.
type FailedMsg struct {
	Cause faults.Cause
	Err   error
}

// =============================================================================
// VOICE MESSAGES
// =============================================================================

// VoiceEventMsg bridges one capture event from the recognizer's channel into
// the event loop.
type VoiceEventMsg struct {
	Event speech.Event
}

// VoiceGoneMsg signals that the recognizer's event channel closed: the
// capability handle was released and no further events will arrive.
type VoiceGoneMsg struct{}

// =============================================================================
// NOTICE MESSAGES
// =============================================================================

// noticeTTL is how long a status-bar notice stays up.
const noticeTTL = 5 * time.Second

// noticeExpiredMsg clears a notice after its TTL. The sequence number keeps
// a stale timer from clearing a newer notice.
type noticeExpiredMsg struct {
	seq int
}

// expireNoticeCmd schedules the clearing of the notice with the given
// sequence number.
func expireNoticeCmd(seq int) tea.Cmd {
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}
