package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-ledger-sync/internal/client"
)

var errOffline = errors.New("server unreachable")

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show changes waiting for the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		globalFlags.offline = true
		return withApp(cmd, func(ctx context.Context, app *client.App) error {
			pending, err := app.Services.OutboxService.Pending(ctx, app.Scope)
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "queue is empty")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tENTITY\tOP\tID\tQUEUED\tATTEMPTS\tLAST ERROR")
			for _, e := range pending {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\t%s\n",
					e.QueueID, e.EntityType, e.Operation, e.LocalID,
					e.CreatedAt.Local().Format(time.DateTime), e.Attempts, e.LastError)
			}
			return w.Flush()
		})
	},
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push queued changes and pull the server state once",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *client.App) error {
			if !app.Monitor.IsOnline() {
				return errOffline
			}

			drained, reconciled, err := app.Services.SyncJob.SyncOnce(ctx)
			for scope, s := range drained.Scopes {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: pushed %d, rejected %d\n", scope, s.Acked, s.Rejected)
				if s.Halted {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: halted after %d attempt(s): %v\n", scope, s.Attempts, s.Err)
				}
			}
			for _, r := range reconciled {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: pulled %d, kept %d local change(s)\n", r.Scope, r.Inserted, r.Preserved)
			}
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(queueCmd, syncCmd)
}
