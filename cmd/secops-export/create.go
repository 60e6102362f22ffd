package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/c-mac49/secops-dataexport-script/internal/export"
)

var createFlags struct {
	days     int
	logTypes []string
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new data export job and track it to completion",
	Args:  cobra.NoArgs,
	RunE:  runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)
	addCreateFlags(createCmd)
}

// addCreateFlags registers the create options on both the create
// subcommand and the bare root command (create is the default action).
func addCreateFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&createFlags.days, "days", 1, "number of days back to export")
	cmd.Flags().StringSliceVar(&createFlags.logTypes, "log-types", nil, "restrict the export to these log types (e.g. OKTA,WINEVTLOG)")
}

func runCreate(cmd *cobra.Command, args []string) error {
	return runAction(cmd, func(ctx context.Context, r *export.Runner) error {
		return r.Create(ctx, createFlags.days, createFlags.logTypes)
	})
}
