package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c-mac49/secops-dataexport-script/internal/auth"
	"github.com/c-mac49/secops-dataexport-script/internal/chronicle"
	"github.com/c-mac49/secops-dataexport-script/internal/config"
	"github.com/c-mac49/secops-dataexport-script/internal/export"
	"github.com/c-mac49/secops-dataexport-script/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "secops-export",
	Short: "Manage Chronicle data-export jobs",
	Long: `Create, list, cancel and track Chronicle data-export jobs.

Running without a subcommand creates a new export and tracks it to
completion, same as "secops-export create".`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCreate, // create is the default action
}

func init() {
	addCreateFlags(rootCmd)
}

// Execute runs the CLI. Configuration and authentication failures exit
// non-zero; remote API failures are reported and exit clean.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// stdoutReporter is the console implementation of export.Reporter.
type stdoutReporter struct{}

func (stdoutReporter) Printf(format string, args ...any) {
	fmt.Printf(format, args...)
}

// runAction wires config, auth, client and runner, then executes the
// action. Only configuration and authentication errors propagate out;
// remote-call failures are formatted for the user here.
func runAction(cmd *cobra.Command, action func(ctx context.Context, r *export.Runner) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.Must(cfg.App.Env)
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpClient, err := auth.NewClient(ctx, cfg.Auth)
	if err != nil {
		return err
	}

	client := chronicle.NewClient(cfg.Chronicle, httpClient, log)
	runner := export.NewRunner(client, cfg.Chronicle.Bucket, cfg.Tracker.PollInterval, stdoutReporter{}, log)

	if err := action(ctx, runner); err != nil {
		reportActionError(err)
	}
	return nil
}

// reportActionError prints a failed remote call in human terms, with
// the structured remote detail when the service sent one.
func reportActionError(err error) {
	var apiErr *chronicle.APIError
	switch {
	case errors.As(err, &apiErr):
		fmt.Fprintf(os.Stderr, "\nAPI error: %v\n", apiErr)
		if detail := indentedBody(apiErr.Body); detail != "" {
			fmt.Fprintf(os.Stderr, "Details:\n%s\n", detail)
		}
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(os.Stderr, "\nInterrupted.")
	default:
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
	}
}

// indentedBody pretty-prints a JSON error body; non-JSON bodies come
// back empty since the one-line error already carries them.
func indentedBody(body string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(body), "", "  "); err != nil {
		return ""
	}
	return buf.String()
}
