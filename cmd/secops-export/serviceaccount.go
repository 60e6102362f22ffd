package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/c-mac49/secops-dataexport-script/internal/export"
)

var serviceAccountCmd = &cobra.Command{
	Use:   "service-account",
	Short: "Show the Chronicle service account that needs bucket access",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd, func(ctx context.Context, r *export.Runner) error {
			return r.ServiceAccount(ctx)
		})
	},
}

func init() {
	rootCmd.AddCommand(serviceAccountCmd)
}
