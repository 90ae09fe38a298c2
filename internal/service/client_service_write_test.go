package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ledger-sync/internal/events"
	"github.com/MKhiriev/go-ledger-sync/internal/store"
	"github.com/MKhiriev/go-ledger-sync/internal/validators"
	"github.com/MKhiriev/go-ledger-sync/models"
)

func TestWriteService_AddCustomer_OfflineIsLocalAndQueued(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	c, err := h.write.AddCustomer(ctx, "shop-1", models.Customer{Name: "Karim"})
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())

	rec := h.record(t, "shop-1", store.TableCustomers, c.ID)
	assert.Equal(t, models.SyncStatusNew, rec.SyncStatus)

	queued := h.pending(t, "shop-1")
	require.Len(t, queued, 1)
	assert.Equal(t, c.ID, queued[0].LocalID)
	assert.Equal(t, models.OperationCreate, queued[0].Operation)
	assert.NotEmpty(t, queued[0].MutationID)
	assert.NotEqual(t, queued[0].LocalID, queued[0].MutationID)
	assert.JSONEq(t, string(rec.Data), string(queued[0].Payload))

	assert.Equal(t, []models.EventKind{events.KindCustomerUpdate}, h.bus.kinds())
	// офлайн: синхронизацию не будим
	assert.Zero(t, h.nudger.count())
	assert.Zero(t, h.server.submitCount())
}

func TestWriteService_OnlineWriteNudgesSync(t *testing.T) {
	h := newHarness(t, true)

	_, err := h.write.AddCustomer(context.Background(), "shop-1", models.Customer{Name: "Karim"})
	require.NoError(t, err)

	assert.Equal(t, 1, h.nudger.count())
}

func TestWriteService_AddEntry_EmitsKindEvents(t *testing.T) {
	tests := []struct {
		name  string
		entry models.LedgerEntry
		want  []models.EventKind
	}{
		{
			name:  "sale on credit",
			entry: models.LedgerEntry{Kind: models.EntryKindSale, Amount: 500, CustomerID: "c1"},
			want:  []models.EventKind{events.KindSaleUpdate, events.KindCustomerUpdate},
		},
		{
			name:  "expense",
			entry: models.LedgerEntry{Kind: models.EntryKindExpense, Amount: 120},
			want:  []models.EventKind{events.KindExpenseUpdate},
		},
		{
			name:  "cash",
			entry: models.LedgerEntry{Kind: models.EntryKindCash, Amount: 1000},
			want:  []models.EventKind{events.KindCashUpdate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, false)

			e, err := h.write.AddEntry(context.Background(), "shop-1", tt.entry)
			require.NoError(t, err)
			assert.NotEmpty(t, e.ID)
			assert.Equal(t, e.CreatedAt, e.CreatedAt.Truncate(time.Microsecond))

			assert.Equal(t, tt.want, h.bus.kinds())
			require.Len(t, h.pending(t, "shop-1"), 1)
		})
	}
}

func TestWriteService_AddEntry_InvalidStoresNothing(t *testing.T) {
	h := newHarness(t, false)

	_, err := h.write.AddEntry(context.Background(), "shop-1", models.LedgerEntry{Kind: models.EntryKindSale, Amount: 500})
	require.ErrorIs(t, err, ErrInvalidMutation)
	require.ErrorIs(t, err, validators.ErrCustomerRequired)

	assert.Empty(t, h.pending(t, "shop-1"))
	assert.Empty(t, h.bus.kinds())
}

func TestWriteService_Write_Validation(t *testing.T) {
	data := json.RawMessage(`{"id":"c1","name":"Karim"}`)

	tests := []struct {
		name    string
		m       models.Mutation
		wantErr error
	}{
		{name: "empty scope", m: models.Mutation{EntityType: models.EntityCustomer, Operation: models.OperationCreate, Data: data}, wantErr: validators.ErrEmptyScope},
		{name: "unknown entity", m: models.Mutation{Scope: "s", EntityType: "invoice", Operation: models.OperationCreate, Data: data}, wantErr: validators.ErrInvalidEntityType},
		{name: "unknown operation", m: models.Mutation{Scope: "s", EntityType: models.EntityCustomer, Operation: "delete", Data: data}, wantErr: validators.ErrInvalidOperation},
		{name: "update without id", m: models.Mutation{Scope: "s", EntityType: models.EntityCustomer, Operation: models.OperationUpdate, Data: data}, wantErr: validators.ErrEmptyID},
		{name: "empty data", m: models.Mutation{Scope: "s", EntityType: models.EntityCustomer, Operation: models.OperationCreate}, wantErr: validators.ErrEmptyPayload},
		{name: "broken json", m: models.Mutation{Scope: "s", EntityType: models.EntityCustomer, Operation: models.OperationCreate, Data: json.RawMessage(`{"id":`)}, wantErr: validators.ErrInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, false)

			_, err := h.write.Write(context.Background(), tt.m)
			require.ErrorIs(t, err, ErrInvalidMutation)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, h.pending(t, "s"))
		})
	}
}

func TestWriteService_Write_CreateExistingFails(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	c, err := h.write.AddCustomer(ctx, "shop-1", models.Customer{Name: "Karim"})
	require.NoError(t, err)

	_, err = h.write.AddCustomer(ctx, "shop-1", c)
	require.ErrorIs(t, err, ErrRecordExists)

	// transaction rolled back: still one entry
	assert.Len(t, h.pending(t, "shop-1"), 1)
}

func TestWriteService_Write_UpdateMissingFails(t *testing.T) {
	h := newHarness(t, false)

	_, err := h.write.UpdateCustomer(context.Background(), "shop-1", models.Customer{ID: "ghost", Name: "Nobody"})
	require.ErrorIs(t, err, ErrRecordMissing)
	assert.Empty(t, h.pending(t, "shop-1"))
}

func TestWriteService_Write_UpdateStatus(t *testing.T) {
	tests := []struct {
		name string
		from models.SyncStatus
		want models.SyncStatus
	}{
		{name: "synced becomes dirty", from: models.SyncStatusSynced, want: models.SyncStatusDirty},
		{name: "new stays new", from: models.SyncStatusNew, want: models.SyncStatusNew},
		{name: "dirty stays dirty", from: models.SyncStatusDirty, want: models.SyncStatusDirty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, false)
			h.putRecord(t, "shop-1", models.Customer{ID: "c1", Name: "Karim"}, tt.from)

			_, err := h.write.UpdateCustomer(context.Background(), "shop-1", models.Customer{ID: "c1", Name: "Karim B."})
			require.NoError(t, err)

			rec := h.record(t, "shop-1", store.TableCustomers, "c1")
			assert.Equal(t, tt.want, rec.SyncStatus)

			queued := h.pending(t, "shop-1")
			require.Len(t, queued, 1)
			assert.Equal(t, models.OperationUpdate, queued[0].Operation)
		})
	}
}

func TestWriteService_ScopesAreIsolated(t *testing.T) {
	h := newHarness(t, false)
	ctx := context.Background()

	_, err := h.write.AddCustomer(ctx, "shop-1", models.Customer{ID: "c1", Name: "Karim"})
	require.NoError(t, err)
	_, err = h.write.AddCustomer(ctx, "shop-2", models.Customer{ID: "c1", Name: "Other Karim"})
	require.NoError(t, err)

	assert.Len(t, h.pending(t, "shop-1"), 1)
	assert.Len(t, h.pending(t, "shop-2"), 1)
}
