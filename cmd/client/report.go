package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-ledger-sync/internal/client"
	"github.com/MKhiriev/go-ledger-sync/internal/pagination"
	"github.com/MKhiriev/go-ledger-sync/models"
)

var reportFlags struct {
	rng  string
	page int
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Ledger reports",
}

var reportSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Totals per entry kind for a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		rng, err := models.ParseDateRange(reportFlags.rng)
		if err != nil {
			return err
		}

		return withApp(cmd, func(ctx context.Context, app *client.App) error {
			s, err := app.Reports.Summary(ctx, app.Scope, rng)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(w, "range\t%s\t\n", rng)
			fmt.Fprintf(w, "sales\t%s\t\n", formatAmount(s.Sales))
			fmt.Fprintf(w, "payments\t%s\t\n", formatAmount(s.Payments))
			fmt.Fprintf(w, "expenses\t%s\t\n", formatAmount(s.Expenses))
			fmt.Fprintf(w, "cash\t%s\t\n", formatAmount(s.Cash))
			fmt.Fprintf(w, "entries\t%d\t\n", s.Count)
			return w.Flush()
		})
	},
}

var reportEntriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Page through the entries of a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		rng, err := models.ParseDateRange(reportFlags.rng)
		if err != nil {
			return err
		}

		return withApp(cmd, func(ctx context.Context, app *client.App) error {
			pager := pagination.NewPager(app.Reports.Entries(app.Scope, rng), app.Reports.PageSize())
			page, err := walkTo(ctx, pager, reportFlags.page)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tKIND\tAMOUNT\tCUSTOMER\tNOTE")
			for _, e := range page.Rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.CreatedAt.Local().Format(time.DateTime), e.Kind, formatAmount(e.Amount), e.CustomerID, e.Note)
			}
			if err = w.Flush(); err != nil {
				return err
			}

			more := ""
			if page.HasMore {
				more = fmt.Sprintf(", next: --page %d", pager.Current()+1)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "page %d%s\n", pager.Current(), more)
			return nil
		})
	},
}

// walkTo loads pages 1..n; earlier pages come from the cache when warm.
func walkTo[T any](ctx context.Context, pager *pagination.Pager[T], n int) (models.Page[T], error) {
	if n < 1 {
		return models.Page[T]{}, fmt.Errorf("%w: %d", pagination.ErrInvalidPage, n)
	}

	var page models.Page[T]
	for pager.Current() < n {
		var err error
		if page, err = pager.Next(ctx); err != nil {
			return models.Page[T]{}, fmt.Errorf("page %d: %w", pager.Current()+1, err)
		}
	}
	return page, nil
}

func init() {
	reportCmd.PersistentFlags().StringVar(&reportFlags.rng, "range", string(models.RangeToday),
		"today, yesterday, last7days, thisMonth, lastMonth or YYYY-MM-DD..YYYY-MM-DD")
	reportEntriesCmd.Flags().IntVar(&reportFlags.page, "page", 1, "Page number")

	reportCmd.AddCommand(reportSummaryCmd, reportEntriesCmd)
	rootCmd.AddCommand(reportCmd)
}
