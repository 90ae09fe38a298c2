package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-ledger-sync/internal/client"
	"github.com/MKhiriev/go-ledger-sync/models"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Record ledger entries",
}

var entryAddFlags struct {
	kind     string
	amount   string
	customer string
	note     string
}

var entryAddCmd = &cobra.Command{
	Use:   "add --kind sale|payment|expense|cash --amount 12.50 [--customer ID]",
	Short: "Record a ledger entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := parseAmount(entryAddFlags.amount)
		if err != nil {
			return err
		}

		entry := models.LedgerEntry{
			CustomerID: entryAddFlags.customer,
			Kind:       models.EntryKind(entryAddFlags.kind),
			Amount:     amount,
			Note:       entryAddFlags.note,
		}

		return withApp(cmd, func(ctx context.Context, app *client.App) error {
			saved, err := app.Services.WriteService.AddEntry(ctx, app.Scope, entry)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s of %s recorded (%s)\n", saved.Kind, formatAmount(saved.Amount), saved.ID)
			return flush(ctx, cmd, app)
		})
	},
}

func init() {
	f := entryAddCmd.Flags()
	f.StringVar(&entryAddFlags.kind, "kind", string(models.EntryKindSale), "Entry kind")
	f.StringVar(&entryAddFlags.amount, "amount", "", "Amount, e.g. 12.50")
	f.StringVar(&entryAddFlags.customer, "customer", "", "Customer id (sales and payments)")
	f.StringVar(&entryAddFlags.note, "note", "", "Free-form note")
	_ = entryAddCmd.MarkFlagRequired("amount")

	entryCmd.AddCommand(entryAddCmd)
	rootCmd.AddCommand(entryCmd)
}
