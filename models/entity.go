// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EntityType names a mirrored collection. Every entity type is stored in its
// own table of the local store.
type EntityType string

const (
	EntityCustomer    EntityType = "customer"
	EntityLedgerEntry EntityType = "ledger_entry"
)

// MirroredEntities lists every entity type the client mirrors from the server.
var MirroredEntities = []EntityType{EntityCustomer, EntityLedgerEntry}

// Valid reports whether e is a known entity type.
func (e EntityType) Valid() bool {
	switch e {
	case EntityCustomer, EntityLedgerEntry:
		return true
	}
	return false
}

// Operation names the kind of mutation carried by an outbox entry.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
)

// Valid reports whether o is a known operation.
func (o Operation) Valid() bool {
	return o == OperationCreate || o == OperationUpdate
}
