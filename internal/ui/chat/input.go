// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ladle-tui/internal/api"
	"github.com/jeranaias/ladle-tui/internal/faults"
)

// =============================================================================
// SUBMISSION
// =============================================================================

// submitInput handles the submit key. The draft is cleared on every press so
// the input never implies an in-flight send; only non-whitespace content
// actually becomes a transcript entry and a backend call.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	content := strings.TrimSpace(m.input.Value())
	m.input.Reset()

	if content == "" {
		return m, nil
	}

	m.transcript.AppendUser(content)
	m.updateViewport()
	m.viewport.GotoBottom()

	m.inFlight++
	return m, tea.Batch(sendCmd(m.backend, content), m.spinner.Tick)
}

// sendCmd issues the backend call off the event loop. No timeout and no
// retry: the call resolves when the server answers or the connection dies.
func sendCmd(backend Dispatcher, content string) tea.Cmd {
	return func() tea.Msg {
		reply, err := backend.Send(context.Background(), content)
		if err != nil {
			return FailedMsg{Cause: classifyFailure(err), Err: err}
		}
		return ReplyMsg{Text: reply}
	}
}

// classifyFailure maps a dispatch error onto its cause.
func classifyFailure(err error) faults.Cause {
	var statusErr *api.StatusError
	switch {
	case errors.Is(err, api.ErrEmptyResponse):
		return faults.CauseMalformed
	case errors.As(err, &statusErr):
		return faults.CauseBadStatus
	default:
		return faults.CauseTransport
	}
}
