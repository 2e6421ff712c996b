package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/jlaasanen/meeple/internal/backfill"
	"github.com/jlaasanen/meeple/internal/catalog"
	"github.com/jlaasanen/meeple/internal/config"
	"github.com/jlaasanen/meeple/internal/enrichment/ai"
)

// BackfillCmd represents the backfill command
type BackfillCmd struct {
	Field   string        `arg:"" help:"Catalog field to fill: age, rating, rank, description or categories"`
	Delay   time.Duration `help:"Minimum delay between AI requests (defaults to backfill.delay from config)" default:"-1ms"`
	Retries int           `help:"Retry attempts per game on transient failures (defaults to backfill.retries from config)" default:"-1"`
}

func (b *BackfillCmd) Run() error {
	field, err := catalog.ParseField(b.Field)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	client, err := newAIClient()
	if err != nil {
		return err
	}

	delay := b.Delay
	if delay < 0 {
		delay = config.BackfillDelay
	}
	retries := b.Retries
	if retries < 0 {
		retries = config.BackfillRetries
	}
	if retries == 0 {
		// The runner treats zero as unset, a negative value disables retries.
		retries = -1
	}

	ctx := context.Background()
	runner := backfill.NewRunner(backfill.Options{
		List: func(ctx context.Context) ([]backfill.Item, error) {
			records, err := store.ListMissing(ctx, field)
			if err != nil {
				return nil, err
			}
			items := make([]backfill.Item, len(records))
			for i, record := range records {
				items[i] = backfill.Item{ID: record.ID, Title: record.Title}
			}
			return items, nil
		},
		Resolve: func(ctx context.Context, item backfill.Item) (any, error) {
			return resolveField(ctx, client, field, item.Title)
		},
		Store: func(ctx context.Context, item backfill.Item, value any) error {
			return store.SetField(ctx, item.ID, field, value)
		},
		MaxRetries: retries,
		Delay:      delay,
	})

	summary, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Print(summary.Render())

	if summary.Failed > 0 {
		return fmt.Errorf("%d record(s) failed", summary.Failed)
	}
	return nil
}

// fieldResolver is the slice of the AI client the backfill path needs.
type fieldResolver interface {
	LookupGame(ctx context.Context, title string) (string, error)
	SuggestAge(ctx context.Context, title string) (string, error)
}

// resolveField performs one enrichment attempt: a single AI call plus parse.
// An untyped nil return means the service could not determine the value.
func resolveField(ctx context.Context, client fieldResolver, field catalog.Field, title string) (any, error) {
	var raw string
	var err error

	if field == catalog.FieldSuggestedAge {
		raw, err = client.SuggestAge(ctx, title)
	} else {
		raw, err = client.LookupGame(ctx, title)
	}
	if err != nil {
		return nil, err
	}

	return fieldValue(ai.ParseFields(raw), field), nil
}

// fieldValue extracts the requested field as a plain value, returning an
// untyped nil when the field is unknown so the runner records a skip.
func fieldValue(fields ai.Fields, field catalog.Field) any {
	switch field {
	case catalog.FieldSuggestedAge:
		if fields.SuggestedAge != nil {
			return *fields.SuggestedAge
		}
	case catalog.FieldBGGRating:
		if fields.BGGRating != nil {
			return *fields.BGGRating
		}
	case catalog.FieldBGGRank:
		if fields.BGGRank != nil {
			return *fields.BGGRank
		}
	case catalog.FieldDescription:
		if fields.Description != nil {
			return *fields.Description
		}
	case catalog.FieldCategories:
		if len(fields.Categories) > 0 {
			return fields.Categories
		}
	}
	return nil
}
