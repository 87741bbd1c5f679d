// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package speech

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// newGatewayServer runs handler for each WebSocket connection and returns
// the ws:// URL to dial.
func newGatewayServer(t *testing.T, handler func(conn *websocket.Conn)) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		handler(conn)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func waitEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "event channel closed before event arrived")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for capture event")
		return Event{}
	}
}

func TestGatewayStartFrameFixesConfiguration(t *testing.T) {
	got := make(chan gatewayCommand, 1)
	url := newGatewayServer(t, func(conn *websocket.Conn) {
		var cmd gatewayCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}
		got <- cmd
		conn.WriteJSON(gatewayFrame{Type: "end"})
		conn.ReadMessage() // hold until client closes
	})

	g, err := DialGateway(context.Background(), url, "en-US")
	require.NoError(t, err)
	defer g.Close()

	require.NoError(t, g.Start(context.Background()))

	select {
	case cmd := <-got:
		assert.Equal(t, "start", cmd.Type)
		assert.Equal(t, "en-US", cmd.Locale)
		assert.False(t, cmd.Continuous, "single-utterance mode is fixed at acquisition")
		assert.False(t, cmd.Interim, "final results only")
	case <-time.After(2 * time.Second):
		t.Fatal("gateway never received the start frame")
	}
}

func TestGatewayDeliversResultThenEnd(t *testing.T) {
	url := newGatewayServer(t, func(conn *websocket.Conn) {
		var cmd gatewayCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}
		conn.WriteJSON(gatewayFrame{Type: "result", Transcript: "what can I make with chicken"})
		conn.WriteJSON(gatewayFrame{Type: "end"})
		conn.ReadMessage()
	})

	g, err := DialGateway(context.Background(), url, "en-US")
	require.NoError(t, err)
	defer g.Close()
	require.NoError(t, g.Start(context.Background()))

	ev := waitEvent(t, g.Events())
	assert.Equal(t, EventResult, ev.Kind)
	assert.Equal(t, "what can I make with chicken", ev.Transcript)

	ev = waitEvent(t, g.Events())
	assert.Equal(t, EventEnd, ev.Kind)
}

func TestGatewayDeliversError(t *testing.T) {
	url := newGatewayServer(t, func(conn *websocket.Conn) {
		var cmd gatewayCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}
		conn.WriteJSON(gatewayFrame{Type: "error", Message: "permission denied"})
		conn.ReadMessage()
	})

	g, err := DialGateway(context.Background(), url, "en-US")
	require.NoError(t, err)
	defer g.Close()
	require.NoError(t, g.Start(context.Background()))

	ev := waitEvent(t, g.Events())
	require.Equal(t, EventError, ev.Kind)
	assert.Contains(t, ev.Err.Error(), "permission denied")
}

func TestGatewaySkipsUnknownFrames(t *testing.T) {
	url := newGatewayServer(t, func(conn *websocket.Conn) {
		conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"heartbeat"}`))
		conn.WriteMessage(websocket.TextMessage, []byte(`not json at all`))
		conn.WriteJSON(gatewayFrame{Type: "result", Transcript: "still here"})
		conn.ReadMessage()
	})

	g, err := DialGateway(context.Background(), url, "en-US")
	require.NoError(t, err)
	defer g.Close()

	ev := waitEvent(t, g.Events())
	assert.Equal(t, EventResult, ev.Kind)
	assert.Equal(t, "still here", ev.Transcript)
}

func TestGatewayLostConnectionSurfacesAsError(t *testing.T) {
	url := newGatewayServer(t, func(conn *websocket.Conn) {
		// Drop the connection without a close handshake.
		conn.Close()
	})

	g, err := DialGateway(context.Background(), url, "en-US")
	require.NoError(t, err)
	defer g.Close()

	ev := waitEvent(t, g.Events())
	assert.Equal(t, EventError, ev.Kind)
}

func TestGatewayStopSendsStopFrame(t *testing.T) {
	frames := make(chan gatewayCommand, 2)
	url := newGatewayServer(t, func(conn *websocket.Conn) {
		for {
			var cmd gatewayCommand
			if err := conn.ReadJSON(&cmd); err != nil {
				return
			}
			frames <- cmd
		}
	})

	g, err := DialGateway(context.Background(), url, "en-US")
	require.NoError(t, err)
	defer g.Close()

	require.NoError(t, g.Start(context.Background()))
	require.NoError(t, g.Stop())

	var kinds []string
	for i := 0; i < 2; i++ {
		select {
		case cmd := <-frames:
			kinds = append(kinds, cmd.Type)
		case <-time.After(2 * time.Second):
			t.Fatal("gateway missed a control frame")
		}
	}
	assert.Equal(t, []string{"start", "stop"}, kinds)
}

func TestGatewayCloseIsIdempotent(t *testing.T) {
	url := newGatewayServer(t, func(conn *websocket.Conn) {
		conn.ReadMessage()
	})

	g, err := DialGateway(context.Background(), url, "en-US")
	require.NoError(t, err)

	first := g.Close()
	second := g.Close()
	assert.Equal(t, first, second)
}

func TestGatewayCloseClosesEventChannel(t *testing.T) {
	url := newGatewayServer(t, func(conn *websocket.Conn) {
		conn.ReadMessage()
	})

	g, err := DialGateway(context.Background(), url, "en-US")
	require.NoError(t, err)
	g.Close()

	select {
	case _, ok := <-g.Events():
		assert.False(t, ok, "event channel should close on teardown")
	case <-time.After(2 * time.Second):
		t.Fatal("event channel never closed")
	}
}

func TestDialGatewayFailure(t *testing.T) {
	_, err := DialGateway(context.Background(), "ws://127.0.0.1:1/ws", "en-US")
	require.Error(t, err)
}
