package models

import (
	"encoding/json"
	"time"
)

// Submission is a queued mutation as sent to the server of record.
// The server treats (Scope, MutationID) as an idempotency key.
type Submission struct {
	Scope      string          `json:"scope"`
	EntityType EntityType      `json:"entity_type"`
	Operation  Operation       `json:"operation"`
	LocalID    string          `json:"local_id"`
	MutationID string          `json:"mutation_id"`
	Payload    json.RawMessage `json:"payload"`
	CreatedAt  time.Time       `json:"created_at"`
}

// SubmitAck is the server's confirmation of a submission.
type SubmitAck struct {
	LocalID    string          `json:"local_id"`
	MutationID string          `json:"mutation_id"`
	ServerID   string          `json:"server_id"`
	Record     json.RawMessage `json:"record,omitempty"`
	// Replayed is set when the server had already applied this MutationID.
	Replayed bool `json:"replayed,omitempty"`
}

// RealtimeEnvelope is a push notification delivered over the realtime channel.
type RealtimeEnvelope struct {
	Kind      string          `json:"kind"`
	Scope     string          `json:"scope"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}
