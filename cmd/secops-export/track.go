package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/c-mac49/secops-dataexport-script/internal/export"
)

var trackCmd = &cobra.Command{
	Use:   "track <export-id>",
	Short: "Track an existing export job until it finishes",
	Long: `Poll an export job until it reaches a terminal stage.

Accepts a bare export id, or the full resource name as returned by the
API. Ctrl+C stops the watch without cancelling the job.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, func(ctx context.Context, r *export.Runner) error {
			return r.Track(ctx, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(trackCmd)
}
