package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// LocalRecord is an entity mirrored into the local durable store.
//
// Records are partitioned by Scope and never cross scopes. Exactly one record
// exists per (Scope, ID) within an entity type. Data holds the JSON-encoded
// domain value (for example a [Customer]).
type LocalRecord struct {
	ID         string          `json:"id"`
	Scope      string          `json:"scope"`
	EntityType EntityType      `json:"entity_type"`
	Data       json.RawMessage `json:"data"`
	UpdatedAt  time.Time       `json:"updated_at"`
	SyncStatus SyncStatus      `json:"sync_status"`
}

// Record is a typed view over a [LocalRecord].
type Record[T any] struct {
	LocalRecord
	Value T
}

// NewLocalRecord encodes value and wraps it into a LocalRecord.
func NewLocalRecord[T any](scope string, entityType EntityType, id string, value T, status SyncStatus, updatedAt time.Time) (LocalRecord, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return LocalRecord{}, fmt.Errorf("encode %s %s: %w", entityType, id, err)
	}

	return LocalRecord{
		ID:         id,
		Scope:      scope,
		EntityType: entityType,
		Data:       data,
		UpdatedAt:  updatedAt,
		SyncStatus: status,
	}, nil
}

// DecodeRecord decodes the record data into T.
func DecodeRecord[T any](rec LocalRecord) (Record[T], error) {
	var value T
	if err := json.Unmarshal(rec.Data, &value); err != nil {
		return Record[T]{}, fmt.Errorf("decode %s %s: %w", rec.EntityType, rec.ID, err)
	}
	return Record[T]{LocalRecord: rec, Value: value}, nil
}

// DecodeRecords decodes every record, failing on the first bad payload.
func DecodeRecords[T any](recs []LocalRecord) ([]Record[T], error) {
	out := make([]Record[T], 0, len(recs))
	for _, rec := range recs {
		typed, err := DecodeRecord[T](rec)
		if err != nil {
			return nil, err
		}
		out = append(out, typed)
	}
	return out, nil
}
