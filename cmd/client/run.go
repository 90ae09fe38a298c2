package main

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-ledger-sync/internal/client"
	"github.com/MKhiriev/go-ledger-sync/internal/connectivity"
	"github.com/MKhiriev/go-ledger-sync/internal/events"
	"github.com/MKhiriev/go-ledger-sync/models"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Keep the ledger in sync until interrupted",
	Long:  "Runs the sync job, the realtime channel and the report cache workers, printing one line per notification.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *client.App) error {
			detach := printNotifications(app.Bus, cmd.OutOrStdout())
			defer detach()

			fmt.Fprintf(cmd.OutOrStdout(), "syncing %s, press Ctrl+C to stop\n", app.Scope)
			return app.Run(ctx)
		})
	},
}

// notificationKinds are the bus events worth a line on the terminal.
var notificationKinds = []models.EventKind{
	events.KindSyncComplete,
	events.KindMutationRejected,
	events.KindConnectivity,
}

// printNotifications writes one line per notification to w. Listeners run
// on the publishing goroutine, so writes are serialized here.
func printNotifications(bus *events.Bus, w io.Writer) (detach func()) {
	var mu sync.Mutex

	handles := make([]events.Handle, 0, len(notificationKinds))
	for _, kind := range notificationKinds {
		handles = append(handles, bus.AddListener(kind, func(_ context.Context, ev models.SyncEvent) error {
			line := describe(ev)
			if line == "" {
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			_, err := fmt.Fprintf(w, "%s  %s\n", ev.Timestamp.Local().Format(time.TimeOnly), line)
			return err
		}, events.Options{}))
	}

	return func() {
		for _, h := range handles {
			bus.RemoveListener(h)
		}
	}
}

func describe(ev models.SyncEvent) string {
	switch ev.Kind {
	case events.KindSyncComplete:
		return fmt.Sprintf("%s: synced with the server", ev.Scope)
	case events.KindMutationRejected:
		if rejected, ok := ev.Payload.(models.RejectedMutation); ok {
			return fmt.Sprintf("%s: server rejected %s %s: %s",
				ev.Scope, rejected.Entry.Operation, rejected.Entry.EntityType, rejected.Reason)
		}
		return fmt.Sprintf("%s: server rejected a change", ev.Scope)
	case events.KindConnectivity:
		if state, ok := ev.Payload.(connectivity.State); ok {
			return fmt.Sprintf("%s: connection %s", ev.Scope, state.Quality())
		}
	}
	return ""
}

func init() {
	rootCmd.AddCommand(runCmd)
}
