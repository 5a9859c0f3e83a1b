// Copyright (c) 2026 Shelfmark. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// Collection listings use opaque cursors rather than page numbers: a cursor
// encodes the store-assigned row id to resume from, so pages stay stable
// while rows are inserted ahead of the reader. Clients treat the token as a
// black box and hand it back unchanged.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

const (
	// DefaultLimit is the number of items per page if not specified.
	DefaultLimit = 10
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 100
)

// ErrInvalidCursor is returned when a cursor token cannot be decoded.
var ErrInvalidCursor = errors.New("pagination: invalid cursor")

// cursorPayload is the JSON structure hidden inside the base64 token.
type cursorPayload struct {
	AfterID string `json:"after_id"`
}

// EncodeCursor wraps a row id into an opaque continuation token.
// An empty id produces an empty token, signalling the end of the collection.
func EncodeCursor(afterID string) string {
	if afterID == "" {
		return ""
	}

	raw, err := json.Marshal(cursorPayload{AfterID: afterID})
	if err != nil {
		return ""
	}

	return base64.URLEncoding.EncodeToString(raw)
}

// DecodeCursor unwraps an opaque continuation token back into a row id.
// An empty token decodes to an empty id (start of the collection).
func DecodeCursor(token string) (string, error) {
	if token == "" {
		return "", nil
	}

	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", ErrInvalidCursor
	}

	var payload cursorPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", ErrInvalidCursor
	}

	return payload.AfterID, nil
}
