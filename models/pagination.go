package models

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidCursor is returned by [DecodeCursor] for a malformed token.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor identifies the last row of a page. Rows are ordered by At and then
// by ID, which makes the key strictly increasing.
type Cursor struct {
	At time.Time `json:"at"`
	ID string    `json:"id"`
}

// Less reports whether c sorts before other.
func (c Cursor) Less(other Cursor) bool {
	if !c.At.Equal(other.At) {
		return c.At.Before(other.At)
	}
	return c.ID < other.ID
}

// Encode returns the opaque string form of the cursor.
func (c Cursor) Encode() string {
	raw := c.At.UTC().Format(time.RFC3339Nano) + "|" + c.ID
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses a token produced by [Cursor.Encode].
// An empty token yields a nil cursor, meaning "first page".
func DecodeCursor(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCursor, err)
	}

	at, id, ok := strings.Cut(string(raw), "|")
	if !ok || id == "" {
		return nil, ErrInvalidCursor
	}

	ts, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCursor, err)
	}

	return &Cursor{At: ts, ID: id}, nil
}

// EncodeCursor returns the token for c, or "" for nil.
func EncodeCursor(c *Cursor) string {
	if c == nil {
		return ""
	}
	return c.Encode()
}

// Page is one slice of a cursor-paginated result set.
type Page[T any] struct {
	Rows       []T     `json:"rows"`
	HasMore    bool    `json:"has_more"`
	NextCursor *Cursor `json:"next_cursor,omitempty"`
}
