// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation transcript.
//
// This package defines the core domain types used throughout the application
// for representing the chat transcript and its messages.
//
// # Key Types
//
//   - Transcript: Append-only ordered record of the conversation
//   - Message: Single immutable message with role, content, and timestamp
//   - Role: Message role enumeration (user, assistant)
//
// # Usage
//
// Append to a transcript:
//
//	tr := model.NewTranscript()
//	tr.Append(model.NewUserMessage("chicken and rice"))
//
// The transcript never shrinks and never reorders: the append order is the
// conversation order.
package model
