package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-ledger-sync/internal/client"
	"github.com/MKhiriev/go-ledger-sync/models"
)

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Manage customers",
}

var customerAddFlags struct {
	phone string
}

var customerAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a customer",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		return withApp(cmd, func(ctx context.Context, app *client.App) error {
			customer, err := app.Services.WriteService.AddCustomer(ctx, app.Scope, models.Customer{
				Name:  name,
				Phone: customerAddFlags.phone,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "customer %s added (%s)\n", customer.Name, customer.ID)
			return flush(ctx, cmd, app)
		})
	},
}

var customerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List customers with their sync status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *client.App) error {
			customers, err := app.Reports.Customers(ctx, app.Scope)
			if err != nil {
				return err
			}
			if len(customers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no customers")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPHONE\tDUE\tSTATUS")
			for _, c := range customers {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					c.Value.ID, c.Value.Name, c.Value.Phone, formatAmount(c.Value.TotalDue), c.SyncStatus)
			}
			return w.Flush()
		})
	},
}

func init() {
	customerAddCmd.Flags().StringVar(&customerAddFlags.phone, "phone", "", "Phone number")

	customerCmd.AddCommand(customerAddCmd, customerListCmd)
	rootCmd.AddCommand(customerCmd)
}
