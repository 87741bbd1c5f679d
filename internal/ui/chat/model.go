// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// The chat model is the session: it owns the transcript, the draft, and the
// voice capture adapter, and it is the only writer of all three. Bubble
// Tea's single-threaded update loop serializes every transcript append, so
// appends never race even while several backend calls and a capture session
// are in flight at once.
package chat

import (
	"context"
	"errors"
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/ladle-tui/internal/config"
	"github.com/jeranaias/ladle-tui/internal/faults"
	"github.com/jeranaias/ladle-tui/internal/model"
	"github.com/jeranaias/ladle-tui/internal/speech"
	"github.com/jeranaias/ladle-tui/internal/ui/styles"
)

// Dispatcher issues one backend call per accepted submission. Implemented by
// api.Client; a narrow interface keeps the update loop testable.
type Dispatcher interface {
	Send(ctx context.Context, message string) (string, error)
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat session.
type Model struct {
	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Conversation state. The transcript is append-only; the draft lives in
	// the text input and is cleared on every submission.
	transcript *model.Transcript

	// Collaborators
	backend Dispatcher
	capture *speech.Capture

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// Key bindings
	keyMap KeyMap

	// Submissions still awaiting a reply. Display only: submissions are
	// never locked out while others are in flight.
	inFlight int

	// Transient status-bar notice (voice failures, capability absence).
	notice    string
	noticeSeq int

	// Markdown rendering for assistant replies
	markdown   bool
	mdRenderer *glamour.TermRenderer

	assistantName string
}

// New creates a chat model for the given collaborators.
func New(theme *styles.Theme, backend Dispatcher, capture *speech.Capture) Model {
	cfg := config.Global()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about ingredients, dishes, or techniques..."
	ti.CharLimit = 2048
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	return Model{
		theme:         theme,
		transcript:    model.NewTranscript(),
		backend:       backend,
		capture:       capture,
		viewport:      vp,
		input:         ti,
		spinner:       sp,
		keyMap:        DefaultKeyMap(),
		markdown:      cfg.UI.Markdown,
		assistantName: cfg.UI.AssistantName,
	}
}

// Transcript exposes the session transcript (used by tests and teardown
// logging). Callers get append-only semantics like everyone else.
func (m *Model) Transcript() *model.Transcript {
	return m.transcript
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the cursor blink and arms the voice event bridge.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listenVoice())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReplyMsg:
		return m.handleReply(msg)

	case FailedMsg:
		return m.handleFailure(msg)

	case VoiceEventMsg:
		return m.handleVoiceEvent(msg)

	case VoiceGoneMsg:
		// Capability handle released; nothing left to bridge.
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case spinner.TickMsg:
		if m.inFlight > 0 {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	default:
		var cmds []tea.Cmd

		var inputCmd tea.Cmd
		m.input, inputCmd = m.input.Update(msg)
		cmds = append(cmds, inputCmd)

		var vpCmd tea.Cmd
		m.viewport, vpCmd = m.viewport.Update(msg)
		cmds = append(cmds, vpCmd)

		return m, tea.Batch(cmds...)
	}
}

// View renders the chat view.
func (m Model) View() string {
	return m.renderChat()
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	// Layout: header + viewport (dynamic) + input area + status bar.
	const (
		headerHeight    = 1
		inputAreaHeight = 2
		statusBarHeight = 1
	)

	viewportHeight := m.height - headerHeight - inputAreaHeight - statusBarHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	m.viewport.Width = m.width
	m.viewport.Height = viewportHeight

	inputWidth := m.width - 6
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth

	if m.theme != nil {
		m.theme.SetSize(m.width, m.height)
	}

	m.mdRenderer = newMarkdownRenderer(m.contentWidth())
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Submit):
		return m.submitInput()

	case key.Matches(msg, m.keyMap.VoiceToggle):
		return m.toggleVoice()

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.ViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.HalfUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.HalfDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keyMap.Bottom):
		m.viewport.GotoBottom()
		return m, nil
	}

	// Everything else is typing: it edits the draft.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleReply appends the assistant's reply. One reply per submission, in
// arrival order.
func (m Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	if m.inFlight > 0 {
		m.inFlight--
	}
	m.transcript.AppendAssistant(msg.Text)
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// handleFailure appends the fixed fallback reply so the assistant side of
// the turn is never silently dropped. The raw error stays in the log file.
func (m Model) handleFailure(msg FailedMsg) (tea.Model, tea.Cmd) {
	if m.inFlight > 0 {
		m.inFlight--
	}
	log.Printf("chat: submission failed (%s): %v", msg.Cause, msg.Err)

	m.transcript.AppendAssistant(faults.Translate(msg.Cause))
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, nil
}

// handleVoiceEvent runs one capture event through the state machine and
// applies its effect: results overwrite the draft (and nothing else),
// errors surface as a notice, ends are silent.
func (m Model) handleVoiceEvent(msg VoiceEventMsg) (tea.Model, tea.Cmd) {
	ev := m.capture.Observe(msg.Event)

	var noticeCmd tea.Cmd
	switch ev.Kind {
	case speech.EventResult:
		// A transcript fills the draft; it never submits on its own.
		m.input.SetValue(ev.Transcript)
		m.input.CursorEnd()

	case speech.EventError:
		log.Printf("chat: voice capture error: %v", ev.Err)
		m, noticeCmd = m.showNotice(faults.Translate(faults.CauseVoiceRuntime))

	case speech.EventEnd:
		// Capability stopped on its own (silence, timeout). Not an error.
	}

	// Re-arm the bridge for the next event.
	return m, tea.Batch(m.listenVoice(), noticeCmd)
}

// =============================================================================
// VOICE CONTROL
// =============================================================================

// toggleVoice flips the capture session. Failures become notices; the draft
// is never touched here.
func (m Model) toggleVoice() (tea.Model, tea.Cmd) {
	err := m.capture.Toggle(context.Background())
	if err == nil {
		return m, nil
	}

	cause := faults.CauseVoiceStart
	if errors.Is(err, speech.ErrUnavailable) {
		cause = faults.CauseVoiceUnavailable
	}
	log.Printf("chat: voice toggle: %v", err)

	var cmd tea.Cmd
	m, cmd = m.showNotice(faults.Translate(cause))
	return m, cmd
}

// listenVoice bridges the recognizer's event channel into the update loop,
// one event per command.
func (m Model) listenVoice() tea.Cmd {
	events := m.capture.Events()
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return VoiceGoneMsg{}
		}
		return VoiceEventMsg{Event: ev}
	}
}

// =============================================================================
// NOTICES
// =============================================================================

// showNotice puts transient text in the status bar and schedules its expiry.
func (m Model) showNotice(text string) (Model, tea.Cmd) {
	m.noticeSeq++
	m.notice = text
	return m, expireNoticeCmd(m.noticeSeq)
}

// =============================================================================
// VIEWPORT PROJECTION
// =============================================================================

// updateViewport re-renders the transcript projection. Every append path
// calls this followed by GotoBottom, so the newest entry is always shown.
func (m *Model) updateViewport() {
	m.viewport.SetContent(m.renderMessages())
}

// contentWidth is the usable width for message content.
func (m Model) contentWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// newMarkdownRenderer builds the glamour renderer for the given wrap width.
// A nil renderer means raw text rendering.
func newMarkdownRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Printf("chat: markdown renderer unavailable: %v", err)
		return nil
	}
	return r
}
