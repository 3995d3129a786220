package scrape

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dtnitsch/wanikani-scraper/models"
	"github.com/dtnitsch/wanikani-scraper/pkg/checkpoint"
	"github.com/dtnitsch/wanikani-scraper/pkg/results"
)

// Driver owns one subject's end-to-end run: checkpoint resume, prior
// results merge, the ascending level loop, results-then-checkpoint
// persistence per level, halt on first failure, and checkpoint cleanup on
// full completion.
type Driver[R any] struct {
	logger  *slog.Logger
	runner  *Runner[R]
	results *results.Store[R]
	ckpt    *checkpoint.Store
	start   int
	end     int

	resolved       bool
	effectiveStart int
	resumedAfter   int
}

func NewDriver[R any](logger *slog.Logger, runner *Runner[R], res *results.Store[R], ckpt *checkpoint.Store, start, end int) *Driver[R] {
	return &Driver[R]{
		logger:  logger,
		runner:  runner,
		results: res,
		ckpt:    ckpt,
		start:   start,
		end:     end,
	}
}

// Summary reports what one run accomplished, for logging and the run
// history database.
type Summary struct {
	EffectiveStart  int
	ResumedAfter    int // checkpoint level the run resumed after, 0 for a fresh run
	CompletedLevels int
	ItemCount       int
}

// Resume resolves the level the run actually starts from. A checkpoint
// overrides the configured start; a corrupt checkpoint is logged and
// treated as absent, never fatal. The decision is made once per driver.
func (d *Driver[R]) Resume() (effectiveStart, resumedAfter int) {
	if d.resolved {
		return d.effectiveStart, d.resumedAfter
	}
	d.resolved = true
	d.effectiveStart = d.start

	level, ok, err := d.ckpt.Load()
	switch {
	case err != nil:
		d.logger.Warn("checkpoint unreadable, starting from configured level",
			slog.Any("error", err),
			slog.Int("start", d.start))
	case ok:
		d.logger.Info("resuming from checkpoint",
			slog.Int("last_completed_level", level),
			slog.Int("configured_start", d.start))
		d.effectiveStart = level + 1
		d.resumedAfter = level
	}
	return d.effectiveStart, d.resumedAfter
}

// Run executes the level loop. Results are always written before the
// checkpoint for the same level, so the checkpoint never points past the
// persisted data. Any level or persistence failure halts the run, leaving
// it resumable from the last checkpointed level; the checkpoint is cleared
// only after the full range completes.
func (d *Driver[R]) Run(ctx context.Context, index models.Index) (*Summary, error) {
	effStart, resumedAfter := d.Resume()
	sum := &Summary{EffectiveStart: effStart, ResumedAfter: resumedAfter}

	if effStart > d.end {
		d.logger.Info("nothing left to scrape, range already completed",
			slog.Int("effective_start", effStart),
			slog.Int("end", d.end))
		if err := d.ckpt.Clear(); err != nil {
			return sum, err
		}
		return sum, nil
	}

	// Merge point for resumed runs: new levels extend the prior output
	// rather than replacing it. An unreadable results file halts before
	// any network activity so a good file is never clobbered.
	if err := d.results.Load(); err != nil {
		return sum, err
	}

	for level := effStart; level <= d.end; level++ {
		records, err := d.runner.RunLevel(ctx, level, index.Items(level))
		if err != nil {
			d.logger.Error("level failed, halting run",
				slog.Int("level", level),
				slog.Any("error", err))
			return sum, err
		}

		d.results.Set(level, records)
		if err := d.results.Save(); err != nil {
			return sum, fmt.Errorf("persisting results after level %d: %w", level, err)
		}
		if err := d.ckpt.Save(level); err != nil {
			return sum, fmt.Errorf("persisting checkpoint after level %d: %w", level, err)
		}

		sum.CompletedLevels++
		sum.ItemCount += len(records)
		d.logger.Info("level completed",
			slog.Int("level", level),
			slog.Int("records", len(records)),
			slog.Int("total_records", d.results.TotalRecords()))
	}

	if err := d.ckpt.Clear(); err != nil {
		return sum, fmt.Errorf("clearing checkpoint after completed run: %w", err)
	}
	d.logger.Info("run completed",
		slog.Int("levels", sum.CompletedLevels),
		slog.Int("records", sum.ItemCount),
		slog.String("output", d.results.Path()))
	return sum, nil
}
