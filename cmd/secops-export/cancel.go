package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/c-mac49/secops-dataexport-script/internal/export"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel <export-id>",
	Short: "Cancel an in-flight export job",
	Long: `Ask the service to cancel an export job.

Cancellation happens asynchronously on the remote side, so the stage
shown right after may still be non-terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, func(ctx context.Context, r *export.Runner) error {
			return r.Cancel(ctx, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(cancelCmd)
}
