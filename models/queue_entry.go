package models

import (
	"encoding/json"
	"time"
)

// QueueEntry is a pending mutation stored in the outbox.
//
// QueueID is assigned by the store and grows monotonically, so ordering by
// QueueID within a scope is creation order. LocalID equals the ID of the
// affected [LocalRecord]. MutationID is a correlation id unique to the entry;
// the server uses it to recognise a replayed submission.
type QueueEntry struct {
	QueueID       int64           `json:"queue_id"`
	Scope         string          `json:"scope"`
	EntityType    EntityType      `json:"entity_type"`
	Operation     Operation       `json:"operation"`
	Payload       json.RawMessage `json:"payload"`
	LocalID       string          `json:"local_id"`
	MutationID    string          `json:"mutation_id"`
	CreatedAt     time.Time       `json:"created_at"`
	Attempts      int             `json:"attempts"`
	LastError     string          `json:"last_error,omitempty"`
	LastAttemptAt *time.Time      `json:"last_attempt_at,omitempty"`
}

// Submission converts the entry into the request sent to the Remote API.
func (e QueueEntry) Submission() Submission {
	return Submission{
		Scope:      e.Scope,
		EntityType: e.EntityType,
		Operation:  e.Operation,
		LocalID:    e.LocalID,
		MutationID: e.MutationID,
		Payload:    e.Payload,
		CreatedAt:  e.CreatedAt,
	}
}
