// Package scrape sequences the per-level fetch/extract/persist work for
// one subject: the Runner walks a level's items, the Driver walks levels
// and owns resume, persistence, and cleanup.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dtnitsch/wanikani-scraper/models"
)

// ItemFunc turns one input item into an output record. Implementations
// fetch the item's page and extract its fields; any error is fatal to the
// level being processed.
type ItemFunc[R any] func(ctx context.Context, level int, item models.InputItem) (R, error)

// Runner processes the items of one level strictly in input order, with a
// fixed sleep between items as the only flow control.
type Runner[R any] struct {
	logger  *slog.Logger
	process ItemFunc[R]
	delay   time.Duration
	sleep   func(time.Duration)
}

func NewRunner[R any](logger *slog.Logger, process ItemFunc[R], delay time.Duration) *Runner[R] {
	return &Runner[R]{
		logger:  logger,
		process: process,
		delay:   delay,
		sleep:   time.Sleep,
	}
}

// RunLevel processes every item of a level. The first item failure aborts
// the level: the partial records are dropped and the error carries the
// level, character, and URL context. A level with no configured items is
// intentionally empty and yields an empty slice.
func (r *Runner[R]) RunLevel(ctx context.Context, level int, items []models.InputItem) ([]R, error) {
	records := make([]R, 0, len(items))
	if len(items) == 0 {
		r.logger.Warn("no items configured for level", slog.Int("level", level))
		return records, nil
	}

	r.logger.Info("starting level",
		slog.Int("level", level),
		slog.Int("items", len(items)))

	for i, item := range items {
		r.logger.Info("processing item",
			slog.Int("level", level),
			slog.String("progress", fmt.Sprintf("%d/%d", i+1, len(items))),
			slog.String("character", item.Character))

		record, err := r.process(ctx, level, item)
		if err != nil {
			return nil, fmt.Errorf("level %d item %q (%s): %w", level, item.Character, item.URL, err)
		}
		records = append(records, record)

		// Fixed pacing toward the remote site, regardless of response
		// latency. Not adaptive, no backoff.
		r.sleep(r.delay)
	}
	return records, nil
}
