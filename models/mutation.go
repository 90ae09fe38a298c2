package models

import "encoding/json"

// Mutation is a user action as handed to the write facade: an optimistic
// change to one record that must also reach the server. ID names the
// affected record and is generated for a create when empty.
type Mutation struct {
	Scope      string          `json:"scope"`
	EntityType EntityType      `json:"entity_type"`
	Operation  Operation       `json:"operation"`
	ID         string          `json:"id,omitempty"`
	Data       json.RawMessage `json:"data"`
}
