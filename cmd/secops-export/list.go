package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/c-mac49/secops-dataexport-script/internal/export"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent data export jobs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, func(ctx context.Context, r *export.Runner) error {
			return r.List(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
