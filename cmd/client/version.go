package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-ledger-sync/models"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
