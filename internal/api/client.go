// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the client for the recipe assistant's chat endpoint.
//
// The backend exposes a single completion endpoint: POST /api/chat with a
// JSON body {"message": ...} answered by {"response": ...}. Anything else —
// a transport failure, a non-2xx status, or a 2xx body without a non-empty
// response field — is a failure the caller translates into the fixed
// fallback reply. Notably the service reports its own internal errors as a
// 200 with an "error" field and no "response" field, so the response field
// is the only success signal that counts.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// chatPath is the completion endpoint, relative to the base URL.
	chatPath = "/api/chat"

	// MaxResponseSize caps the response body read to keep a misbehaving
	// backend from exhausting memory.
	MaxResponseSize = 4 * 1024 * 1024 // 4MB
)

// Error variables for common chat endpoint failures.
var (
	// ErrEmptyResponse indicates a success status whose body carried no
	// non-empty response field (malformed contract).
	ErrEmptyResponse = errors.New("backend returned no response text")

	// ErrEmptyMessage indicates Send was called with nothing to send.
	ErrEmptyMessage = errors.New("message is empty")
)

// StatusError represents a non-success HTTP status from the backend.
type StatusError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("chat endpoint returned HTTP %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("chat endpoint returned HTTP %d", e.Status)
}

// chatRequest is the JSON body sent to the chat endpoint.
type chatRequest struct {
	Message string `json:"message"`
}

// chatResponse is the JSON body returned by the chat endpoint.
// The error field is informational only; its presence never changes how a
// missing response field is classified.
type chatResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the recipe assistant backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL.
//
// The client carries no request timeout: a submission that never resolves
// simply never appends its reply. That mirrors the interface's original
// behavior and is deliberate, not an oversight.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Send submits one user message and returns the assistant's reply text.
//
// Exactly one request is issued per call: no retries, no coalescing, no
// cancellation of other in-flight requests. Concurrent Sends are independent
// and may resolve in any order.
func (c *Client) Send(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}

	body, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return "", fmt.Errorf("reading chat response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Status: resp.StatusCode, Body: previewBody(raw)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEmptyResponse, err)
	}

	if strings.TrimSpace(parsed.Response) == "" {
		return "", ErrEmptyResponse
	}

	return parsed.Response, nil
}

// previewBody trims a response body down to something loggable.
func previewBody(raw []byte) string {
	const max = 200
	s := strings.TrimSpace(string(raw))
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max])
	}
	return s
}
