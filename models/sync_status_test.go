package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncStatus_Transition(t *testing.T) {
	tests := []struct {
		name    string
		from    SyncStatus
		to      SyncStatus
		wantErr bool
	}{
		{name: "new is acknowledged", from: SyncStatusNew, to: SyncStatusSynced},
		{name: "new edited again", from: SyncStatusNew, to: SyncStatusNew},
		{name: "dirty is acknowledged", from: SyncStatusDirty, to: SyncStatusSynced},
		{name: "synced edited", from: SyncStatusSynced, to: SyncStatusDirty},
		{name: "synced reseeded", from: SyncStatusSynced, to: SyncStatusSynced},
		{name: "new cannot become dirty", from: SyncStatusNew, to: SyncStatusDirty, wantErr: true},
		{name: "synced cannot become new", from: SyncStatusSynced, to: SyncStatusNew, wantErr: true},
		{name: "dirty cannot become new", from: SyncStatusDirty, to: SyncStatusNew, wantErr: true},
		{name: "unknown status", from: SyncStatus("gone"), to: SyncStatusSynced, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.Transition(tt.to)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, tt.from, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, got)
		})
	}
}

func TestSyncStatus_Edited(t *testing.T) {
	assert.Equal(t, SyncStatusNew, SyncStatusNew.Edited())
	assert.Equal(t, SyncStatusDirty, SyncStatusDirty.Edited())
	assert.Equal(t, SyncStatusDirty, SyncStatusSynced.Edited())
}

func TestSyncStatus_OnlySyncedIsReseedable(t *testing.T) {
	assert.True(t, SyncStatusSynced.Reseedable())
	assert.False(t, SyncStatusNew.Reseedable())
	assert.False(t, SyncStatusDirty.Reseedable())

	assert.True(t, SyncStatusNew.Pending())
	assert.True(t, SyncStatusDirty.Pending())
	assert.False(t, SyncStatusSynced.Pending())
}
