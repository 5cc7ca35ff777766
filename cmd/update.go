package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// updateCmd runs a single update cycle and exits, for external schedulers.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Run one update cycle and exit",
	Long:  `Refreshes the schedule, records current odds and pulls late results for every seeded sport, then exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := bootstrap()
		defer a.logger.Sync()

		return a.service.RunScheduledUpdate(context.Background())
	},
}

func init() {
	RootCmd.AddCommand(updateCmd)
}
