package utils

import "github.com/google/uuid"

// NewID returns a UUIDv7 string. Version 7 ids sort by creation time, which
// keeps (created_at, id) keyset order close to insertion order. It falls back
// to a random v4 id if the v7 generator fails.
func NewID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
