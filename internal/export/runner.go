// Package export composes the API client and tracker into the
// user-facing export lifecycle actions.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/c-mac49/secops-dataexport-script/internal/chronicle"
	"github.com/c-mac49/secops-dataexport-script/internal/tracker"
)

// Client is the remote-operation surface the runner drives.
type Client interface {
	FetchServiceAccount(ctx context.Context) (string, error)
	ListExports(ctx context.Context) ([]chronicle.DataExport, error)
	CreateExport(ctx context.Context, daysBack int, logTypes []string) (*chronicle.DataExport, error)
	CancelExport(ctx context.Context, id string) error
	GetExportStatus(ctx context.Context, id string) (*chronicle.DataExport, error)
}

// Reporter receives user-facing output. The CLI backs it with stdout;
// tests capture it.
type Reporter interface {
	Printf(format string, args ...any)
}

// Runner executes one action per invocation. Actions are sequential
// request/response cycles; the only long wait is inside Track.
type Runner struct {
	client   Client
	bucket   string
	interval time.Duration
	out      Reporter
	log      *zap.Logger
}

func NewRunner(client Client, bucket string, interval time.Duration, out Reporter, log *zap.Logger) *Runner {
	return &Runner{
		client:   client,
		bucket:   bucket,
		interval: interval,
		out:      out,
		log:      log,
	}
}

// ServiceAccount fetches the service-managed account and prints the
// bucket-permission instruction.
func (r *Runner) ServiceAccount(ctx context.Context) error {
	r.out.Printf("[Action] Fetching Chronicle service account...\n")
	email, err := r.client.FetchServiceAccount(ctx)
	if err != nil {
		return err
	}
	r.out.Printf("Chronicle service account: %s\n", email)
	r.out.Printf("-> Grant %q the 'Storage Object Admin' role on your target bucket.\n", email)
	return nil
}

// List prints the instance's export jobs, most useful fields first.
func (r *Runner) List(ctx context.Context) error {
	r.out.Printf("[Action] Listing data exports...\n")
	exports, err := r.client.ListExports(ctx)
	if err != nil {
		return err
	}
	if len(exports) == 0 {
		r.out.Printf("No data exports found.\n")
		return nil
	}
	r.out.Printf("Found %d export(s):\n", len(exports))
	for i := range exports {
		e := &exports[i]
		r.out.Printf("ID: %-38s | Stage: %-20s | Created: %s\n", e.ShortID(), e.Stage(), e.CreateTime)
	}
	return nil
}

// Cancel issues the cancel request, then re-fetches the job once to
// show where cancellation stands. The service cancels asynchronously,
// so the stage shown may still be non-terminal.
func (r *Runner) Cancel(ctx context.Context, id string) error {
	r.out.Printf("[Action] Cancelling data export %s...\n", id)
	if err := r.client.CancelExport(ctx, id); err != nil {
		return err
	}
	r.out.Printf("Cancel request issued successfully.\n")

	export, err := r.client.GetExportStatus(ctx, id)
	if err != nil {
		return err
	}
	r.out.Printf("Current stage: %s\n", export.Stage())
	return nil
}

// Create starts a new export over the last days days and tracks it to
// completion.
func (r *Runner) Create(ctx context.Context, days int, logTypes []string) error {
	r.out.Printf("[Action] Creating data export job...\n")
	r.out.Printf("Target: %s | Range: last %d day(s)\n", r.bucket, days)
	if len(logTypes) > 0 {
		r.out.Printf("Log types: %v\n", logTypes)
	}

	created, err := r.client.CreateExport(ctx, days, logTypes)
	if err != nil {
		return err
	}
	r.out.Printf("Success. Job created: %s\n", created.Name)

	return r.Track(ctx, created.Name)
}

// Track watches an export until it reaches a terminal stage. Stopping
// the watch (ctx cancellation, e.g. Ctrl+C) is not an error and does
// not cancel the remote job.
func (r *Runner) Track(ctx context.Context, id string) error {
	r.out.Printf("[Tracker] Tracking status for: %s\n", id)
	r.out.Printf("Press Ctrl+C to stop tracking (the job keeps running server-side).\n")

	watch := tracker.New(r.client, r.interval, func(obs chronicle.StatusObservation) {
		r.out.Printf("[%s] Status: %s\n", obs.ObservedAt.Format("15:04:05"), obs.Stage)
	}, r.log)

	outcome, err := watch.Track(ctx, id)
	if errors.Is(err, context.Canceled) {
		r.out.Printf("\nTracking stopped. The export continues in Chronicle; use the cancel action to stop the job itself.\n")
		return nil
	}
	if err != nil {
		return err
	}

	switch outcome.Kind {
	case tracker.OutcomeSuccess:
		r.out.Printf("\n--- Export COMPLETED SUCCESSFULLY ---\n")
	case tracker.OutcomeFailed:
		r.out.Printf("\n--- Export %s ---\n", outcome.Stage)
		r.printPayload(outcome.Payload)
	case tracker.OutcomeUnrecognized:
		r.out.Printf("\nUnknown stage %q. Stopping tracker.\n", outcome.Stage)
		r.printPayload(outcome.Payload)
	}
	return nil
}

func (r *Runner) printPayload(raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}
	pretty, err := indentJSON(raw)
	if err != nil {
		r.out.Printf("%s\n", raw)
		return
	}
	r.out.Printf("%s\n", pretty)
}

func indentJSON(raw []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", fmt.Errorf("export: indent payload: %w", err)
	}
	return buf.String(), nil
}
