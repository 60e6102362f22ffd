// Package tracker polls an export job on a fixed cadence until the
// service reports a terminal stage or the caller cancels the context.
//
// Cancelling the context stops the watch only; the remote job keeps
// running. Stopping the job itself is the client's cancel operation,
// which this package never calls.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/c-mac49/secops-dataexport-script/internal/chronicle"
)

// StatusFetcher is the single client primitive the tracker needs.
type StatusFetcher interface {
	GetExportStatus(ctx context.Context, id string) (*chronicle.DataExport, error)
}

// ObserverFunc receives every status observation as it is made.
type ObserverFunc func(chronicle.StatusObservation)

// OutcomeKind is how a completed watch ended.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeFailed
	// OutcomeUnrecognized means the service reported a stage outside
	// the known set. The tracker stops rather than guess it transient.
	OutcomeUnrecognized
)

// Outcome is the result of a watch that reached a terminal stage.
type Outcome struct {
	Kind  OutcomeKind
	Stage chronicle.Stage
	// Payload is the final raw resource body, kept for diagnosis on
	// failure and unrecognized outcomes.
	Payload      json.RawMessage
	Observations int
}

// Tracker drives the polling loop. The interval is fixed: exports run
// for minutes to hours, so backoff buys nothing and a constant cadence
// keeps freshness easy to reason about.
type Tracker struct {
	status   StatusFetcher
	interval time.Duration
	observe  ObserverFunc
	log      *zap.Logger
}

// New creates a Tracker. observe may be nil.
func New(status StatusFetcher, interval time.Duration, observe ObserverFunc, log *zap.Logger) *Tracker {
	return &Tracker{
		status:   status,
		interval: interval,
		observe:  observe,
		log:      log,
	}
}

// Track polls id until a terminal stage, returning the outcome. There
// is no retry cap and no overall deadline here: bounding the watch is
// the caller's job, via ctx. On cancellation the loop stops before the
// next fetch or mid-sleep and returns ctx's error.
func (t *Tracker) Track(ctx context.Context, id string) (*Outcome, error) {
	observations := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		export, err := t.status.GetExportStatus(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("tracker: fetch status: %w", err)
		}
		observations++

		obs := chronicle.StatusObservation{
			Name:       export.Name,
			Stage:      export.Stage(),
			Payload:    export.Raw,
			ObservedAt: time.Now(),
		}
		if t.observe != nil {
			t.observe(obs)
		}

		switch obs.Stage.Classify() {
		case chronicle.ClassSuccess:
			return &Outcome{Kind: OutcomeSuccess, Stage: obs.Stage, Payload: obs.Payload, Observations: observations}, nil
		case chronicle.ClassFailure:
			return &Outcome{Kind: OutcomeFailed, Stage: obs.Stage, Payload: obs.Payload, Observations: observations}, nil
		case chronicle.ClassUnrecognized:
			t.log.Warn("unrecognized export stage, stopping tracker", zap.String("stage", string(obs.Stage)))
			return &Outcome{Kind: OutcomeUnrecognized, Stage: obs.Stage, Payload: obs.Payload, Observations: observations}, nil
		}

		timer := time.NewTimer(t.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
