// Package backfill drives a rate-limited, retrying, idempotent batch process
// that fills one missing catalog field across many records. Processing is
// strictly sequential: one record is fully resolved (call, parse, persist)
// before the next begins, so external service rate limits are respected and
// ordering stays deterministic.
package backfill

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	meepleerrors "github.com/jlaasanen/meeple/internal/errors"
	"github.com/jlaasanen/meeple/internal/ratelimit"
)

// Defaults for Options. Tests inject zero-delay configurations instead of
// relying on hidden globals.
const (
	DefaultMaxRetries = 2
	DefaultDelay      = time.Second
)

// Item is one unit of work: a record identifier and its display title.
type Item struct {
	ID    int64
	Title string
}

// Outcome is the per-item result of a run.
type Outcome struct {
	ID    int64
	Title string
	// Value is the resolved field value, or nil when the service could not
	// determine one.
	Value any
	// Success is true for both updates and skips; only hard failures
	// (exhausted retries, storage errors) clear it.
	Success bool
	// Reason is the human-readable failure reason when Success is false.
	Reason string
}

// Summary aggregates a completed run.
type Summary struct {
	Total    int
	Updated  int
	Skipped  int
	Failed   int
	Outcomes []Outcome
}

// Options wires a Runner to its collaborators, in the same shape the record
// pipeline uses elsewhere: plain func fields so tests can substitute each
// stage independently.
type Options struct {
	// List returns the ordered work list. Called exactly once per run; it
	// must only return records whose target field is still unset, which is
	// what makes re-running a partially completed backfill safe.
	List func(ctx context.Context) ([]Item, error)

	// Resolve performs one enrichment attempt for an item: one external call
	// plus parsing. Returning (nil, nil) means the service legitimately could
	// not determine a value ("skip"). Transient errors are retried; anything
	// else fails the item immediately.
	Resolve func(ctx context.Context, item Item) (any, error)

	// Store persists a resolved value. Storage failures are not retried:
	// they indicate a storage problem, not a transient service problem.
	Store func(ctx context.Context, item Item, value any) error

	// MaxRetries is the number of extra attempts per item on transient
	// failures. Defaults to DefaultMaxRetries.
	MaxRetries int

	// Delay is the minimum spacing between external calls, covering both
	// item-to-item pacing and retry backoff. Zero disables waiting entirely.
	Delay time.Duration

	// Progress receives the human-readable per-item progress lines.
	// Defaults to os.Stdout.
	Progress io.Writer
}

// Runner executes backfill runs. It never returns an error for individual
// item failures; those are captured per item in the Summary. The only error
// that escalates is a failure to obtain the initial work list.
type Runner struct {
	opts    Options
	limiter *ratelimit.Limiter
}

// NewRunner creates a Runner, applying defaults for unset options.
func NewRunner(opts Options) *Runner {
	if opts.MaxRetries == 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.Progress == nil {
		opts.Progress = os.Stdout
	}
	return &Runner{
		opts:    opts,
		limiter: ratelimit.NewInterval("backfill", opts.Delay),
	}
}

// Run pulls the work list once, processes every item sequentially, and
// returns the run summary. An empty work list is success, not an error.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	items, err := r.opts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list records to backfill: %w", err)
	}

	summary := &Summary{Total: len(items)}
	if len(items) == 0 {
		return summary, nil
	}

	for i, item := range items {
		fmt.Fprintf(r.opts.Progress, "[%d/%d] Processing: %s\n", i+1, len(items), item.Title)
		outcome := r.processItem(ctx, item)
		summary.Outcomes = append(summary.Outcomes, outcome)

		switch {
		case !outcome.Success:
			summary.Failed++
		case outcome.Value == nil:
			summary.Skipped++
		default:
			summary.Updated++
		}
	}

	return summary, nil
}

// processItem resolves and persists a single item, retrying transient
// resolution failures up to the configured bound. The limiter enforces the
// minimum spacing before every external call, which covers item-to-item
// pacing, retry backoff, and the no-wait-after-the-last-item rule in one
// place.
func (r *Runner) processItem(ctx context.Context, item Item) Outcome {
	outcome := Outcome{ID: item.ID, Title: item.Title}

	var value any
	for attempt := 0; ; attempt++ {
		if err := r.limiter.Wait(ctx); err != nil {
			outcome.Reason = err.Error()
			return outcome
		}

		var err error
		value, err = r.opts.Resolve(ctx, item)
		if err == nil {
			break
		}

		if !meepleerrors.IsTransient(err) || attempt >= r.opts.MaxRetries {
			slog.Warn("Giving up on record", "title", item.Title, "attempts", attempt+1, "error", err)
			outcome.Reason = err.Error()
			return outcome
		}
		slog.Debug("Transient failure, will retry", "title", item.Title, "attempt", attempt+1, "error", err)
	}

	if value == nil {
		// The service could not determine a value. That is a legitimate
		// outcome, not a failure; the record stays on the work list for
		// future runs.
		outcome.Success = true
		return outcome
	}

	if err := r.opts.Store(ctx, item, value); err != nil {
		slog.Error("Failed to store value", "title", item.Title, "error", err)
		outcome.Reason = err.Error()
		return outcome
	}

	outcome.Value = value
	outcome.Success = true
	return outcome
}
