package models

import "time"

// EventKind names a kind of in-process notification.
type EventKind string

// SyncEvent is an ephemeral notification delivered to current subscribers.
// It is never persisted.
type SyncEvent struct {
	Kind      EventKind `json:"kind"`
	Scope     string    `json:"scope"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// RejectedMutation is the payload of a mutation-rejected event.
type RejectedMutation struct {
	Entry  QueueEntry `json:"entry"`
	Reason string     `json:"reason"`
}
