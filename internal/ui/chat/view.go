// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ladle-tui/internal/model"
	"github.com/jeranaias/ladle-tui/internal/speech"
	"github.com/jeranaias/ladle-tui/internal/util"
)

// =============================================================================
// RENDERING
// =============================================================================

// renderChat composes the full view: header, transcript, input, status bar.
func (m Model) renderChat() string {
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{
		m.renderHeader(),
		m.viewport.View(),
		m.renderInput(),
		m.renderStatusBar(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("Ladle")
	hint := m.theme.HeaderHint.Render("enter send · ctrl+g voice · ctrl+c quit")

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(hint) - 2
	if gap < 1 {
		gap = 1
	}
	return m.theme.Header.Width(m.width).Render(title + strings.Repeat(" ", gap) + hint)
}

// renderMessages projects the transcript for the viewport. Entries keep
// their append order; the viewport is pinned to the bottom after every
// append so the latest entry is always visible.
func (m Model) renderMessages() string {
	messages := m.transcript.All()
	if len(messages) == 0 {
		return m.theme.EmptyState.Render("What would you like to cook today?")
	}

	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderMessage(msg *model.Message) string {
	var label string
	switch msg.Role {
	case model.RoleUser:
		label = m.theme.UserLabel.Render(msg.Role.DisplayName())
	case model.RoleAssistant:
		label = m.theme.AssistantLabel.Render(m.assistantName)
	default:
		label = msg.Role.DisplayName()
	}
	stamp := m.theme.Timestamp.Render(msg.CreatedAt.Format("15:04"))
	header := label + " " + stamp

	body := msg.Content
	if msg.Role == model.RoleAssistant {
		body = m.renderAssistantBody(body)
	}

	style := m.theme.UserMessage
	if msg.Role == model.RoleAssistant {
		style = m.theme.AssistantMessage
	}
	return header + "\n" + style.Width(m.contentWidth()).Render(body)
}

// renderAssistantBody renders assistant replies as markdown when enabled.
// Any rendering failure falls back to the raw text; the reply itself is
// never altered or dropped.
func (m Model) renderAssistantBody(content string) string {
	if !m.markdown || m.mdRenderer == nil {
		return content
	}
	rendered, err := m.mdRenderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

func (m Model) renderInput() string {
	return m.theme.InputContainer.Width(m.width).Render(m.input.View())
}

// renderStatusBar shows voice state, in-flight activity, and any notice.
func (m Model) renderStatusBar() string {
	parts := []string{m.renderVoiceIndicator()}

	if m.inFlight > 0 {
		parts = append(parts, m.theme.Spinner.Render(m.spinner.View())+" waiting for reply")
	}

	if m.notice != "" {
		maxNotice := m.width - util.StringWidth(strings.Join(parts, "  ")) - 4
		parts = append(parts, m.theme.StatusNotice.Render(util.TruncateWidth(m.notice, maxNotice)))
	}

	return m.theme.StatusBar.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderVoiceIndicator() string {
	switch m.capture.State() {
	case speech.StateListening:
		return m.theme.VoiceListening.Render("● listening")
	case speech.StateIdle:
		return m.theme.VoiceIdle.Render("○ voice")
	default:
		return m.theme.VoiceUnavailable.Render("voice")
	}
}
