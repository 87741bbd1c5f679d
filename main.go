// ladle TUI - A terminal chat interface for recipe recommendations.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ladle-tui/internal/api"
	"github.com/jeranaias/ladle-tui/internal/config"
	"github.com/jeranaias/ladle-tui/internal/speech"
	"github.com/jeranaias/ladle-tui/internal/ui/chat"
	"github.com/jeranaias/ladle-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.ladle/config.toml)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ladle %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	// Bubble Tea owns the terminal, so debug logging goes to a file.
	if os.Getenv("LADLE_DEBUG") != "" {
		f, err := tea.LogToFile("ladle-debug.log", "ladle")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(os.Stderr)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobal(cfg)

	runTUI(cfg)
}

// loadConfig resolves the configuration from the given path or the default
// location, with environment overrides applied either way.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// runTUI starts the chat interface.
func runTUI(cfg *config.Config) {
	theme := styles.NewTheme()
	backend := api.NewClient(cfg.Backend.URL)

	// Voice capture is optional: no gateway configured, or a failed dial,
	// means the toggle reports the capability as unavailable.
	var recognizer speech.Recognizer
	if cfg.HasSpeechGateway() {
		rec, err := speech.DialGateway(context.Background(), cfg.Speech.GatewayURL, cfg.Speech.Locale)
		if err != nil {
			log.Printf("ladle: speech gateway unreachable: %v", err)
		} else {
			recognizer = rec
		}
	}
	capture := speech.NewCapture(recognizer)
	defer capture.Close()

	m := chat.New(theme, backend, capture)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running ladle: %v\n", err)
		os.Exit(1)
	}
}
