// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Gateway connection settings.
const (
	// handshakeTimeout bounds the initial WebSocket dial only. Once the
	// handle is acquired it lives until Close.
	handshakeTimeout = 10 * time.Second

	// writeTimeout bounds individual control frames (start/stop).
	writeTimeout = 5 * time.Second

	// eventBuffer smooths bursts so the read loop never drops a frame while
	// the UI event loop is mid-render.
	eventBuffer = 16
)

// Gateway wire frames. The gateway performs microphone capture and
// recognition on the host; the client only brackets sessions and consumes
// events.
type gatewayCommand struct {
	Type       string `json:"type"` // "start" or "stop"
	Locale     string `json:"locale,omitempty"`
	Continuous bool   `json:"continuous"`      // always false: single utterance
	Interim    bool   `json:"interim_results"` // always false: final results only
}

type gatewayFrame struct {
	Type       string `json:"type"` // "result", "error", or "end"
	Transcript string `json:"transcript,omitempty"`
	Message    string `json:"message,omitempty"`
}

// =============================================================================
// GATEWAY RECOGNIZER
// =============================================================================

// GatewayRecognizer is a Recognizer backed by a host speech gateway reached
// over a WebSocket. The connection is dialed once at construction and reused
// across capture sessions; recognition configuration is fixed at acquisition
// (single utterance, final results only, one locale).
type GatewayRecognizer struct {
	conn   *websocket.Conn
	locale string

	events chan Event
	done   chan struct{}

	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

// DialGateway connects to the speech gateway at url. A failed dial means the
// host offers no usable capability; callers hand the nil recognizer to
// NewCapture and the adapter degrades to Unavailable.
func DialGateway(ctx context.Context, url, locale string) (*GatewayRecognizer, error) {
	dialer := &websocket.Dialer{HandshakeTimeout: handshakeTimeout}

	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing speech gateway: %w", err)
	}

	g := &GatewayRecognizer{
		conn:   conn,
		locale: locale,
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
	}
	go g.readLoop()

	return g, nil
}

// Start asks the gateway to open a capture session.
func (g *GatewayRecognizer) Start(ctx context.Context) error {
	cmd := gatewayCommand{
		Type:       "start",
		Locale:     g.locale,
		Continuous: false,
		Interim:    false,
	}
	if err := g.writeCommand(cmd); err != nil {
		return fmt.Errorf("requesting capture start: %w", err)
	}
	return nil
}

// Stop asks the gateway to end the active capture session.
func (g *GatewayRecognizer) Stop() error {
	if err := g.writeCommand(gatewayCommand{Type: "stop"}); err != nil {
		return fmt.Errorf("requesting capture stop: %w", err)
	}
	return nil
}

// Events returns the channel capture events arrive on.
func (g *GatewayRecognizer) Events() <-chan Event {
	return g.events
}

// Close releases the gateway connection. Safe to call more than once.
func (g *GatewayRecognizer) Close() error {
	g.closeOnce.Do(func() {
		close(g.done)

		g.writeMu.Lock()
		g.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		g.conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		g.writeMu.Unlock()

		g.closeErr = g.conn.Close()
	})
	return g.closeErr
}

// writeCommand sends one control frame, serialized against concurrent writes.
func (g *GatewayRecognizer) writeCommand(cmd gatewayCommand) error {
	g.writeMu.Lock()
	defer g.writeMu.Unlock()

	g.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return g.conn.WriteJSON(cmd)
}

// readLoop translates gateway frames into typed Events until the connection
// goes away. It is the only reader of the connection.
func (g *GatewayRecognizer) readLoop() {
	defer close(g.events)

	for {
		_, raw, err := g.conn.ReadMessage()
		if err != nil {
			select {
			case <-g.done:
				// Deliberate teardown, not a capture failure.
			default:
				g.deliver(Event{Kind: EventError, Err: fmt.Errorf("speech gateway connection lost: %w", err)})
			}
			return
		}

		var frame gatewayFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			log.Printf("speech: discarding undecodable gateway frame: %v", err)
			continue
		}

		switch frame.Type {
		case "result":
			g.deliver(Event{Kind: EventResult, Transcript: frame.Transcript})
		case "error":
			g.deliver(Event{Kind: EventError, Err: fmt.Errorf("speech gateway: %s", frame.Message)})
		case "end":
			g.deliver(Event{Kind: EventEnd})
		default:
			log.Printf("speech: ignoring unknown gateway frame type %q", frame.Type)
		}
	}
}

// deliver hands an event to the consumer unless the recognizer is closing.
func (g *GatewayRecognizer) deliver(ev Event) {
	select {
	case g.events <- ev:
	case <-g.done:
	}
}
