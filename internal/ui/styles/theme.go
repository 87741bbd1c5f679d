// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the ladle TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette. Warm kitchen tones with adaptive fallbacks for light terminals.
var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "#C2410C", Dark: "#FB923C"} // paprika
	colorUser    = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	colorChef    = lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"} // herb green
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	colorNotice  = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}
	colorDanger  = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	colorSurface = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#1F2937"}
)

// Theme holds the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// Header
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderHint  lipgloss.Style

	// Transcript
	UserLabel        lipgloss.Style
	AssistantLabel   lipgloss.Style
	UserMessage      lipgloss.Style
	AssistantMessage lipgloss.Style
	Timestamp        lipgloss.Style

	// Input area
	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	StatusNotice lipgloss.Style
	Spinner      lipgloss.Style

	// Voice toggle indicator
	VoiceIdle        lipgloss.Style
	VoiceListening   lipgloss.Style
	VoiceUnavailable lipgloss.Style

	// Empty state
	EmptyState lipgloss.Style
}

// NewTheme builds the theme for the current terminal.
func NewTheme() *Theme {
	t := &Theme{
		ColorProfile: termenv.ColorProfile(),
	}

	t.Header = lipgloss.NewStyle().
		Background(colorSurface).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)
	t.HeaderHint = lipgloss.NewStyle().
		Foreground(colorMuted)

	t.UserLabel = lipgloss.NewStyle().
		Foreground(colorUser).
		Bold(true)
	t.AssistantLabel = lipgloss.NewStyle().
		Foreground(colorChef).
		Bold(true)
	t.UserMessage = lipgloss.NewStyle().
		PaddingLeft(2)
	t.AssistantMessage = lipgloss.NewStyle().
		PaddingLeft(2)
	t.Timestamp = lipgloss.NewStyle().
		Foreground(colorMuted)

	t.InputContainer = lipgloss.NewStyle().
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	t.StatusBar = lipgloss.NewStyle().
		Background(colorSurface).
		Foreground(colorMuted).
		Padding(0, 1)
	t.StatusNotice = lipgloss.NewStyle().
		Foreground(colorNotice)
	t.Spinner = lipgloss.NewStyle().
		Foreground(colorAccent)

	t.VoiceIdle = lipgloss.NewStyle().
		Foreground(colorMuted)
	t.VoiceListening = lipgloss.NewStyle().
		Foreground(colorDanger).
		Bold(true)
	t.VoiceUnavailable = lipgloss.NewStyle().
		Foreground(colorMuted).
		Strikethrough(true)

	t.EmptyState = lipgloss.NewStyle().
		Foreground(colorMuted).
		Italic(true)

	return t
}

// SetSize records the terminal dimensions for styles that need them.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}
