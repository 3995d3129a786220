package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wanikani-scraper/models"
	"github.com/dtnitsch/wanikani-scraper/pkg/checkpoint"
	"github.com/dtnitsch/wanikani-scraper/pkg/db"
	"github.com/dtnitsch/wanikani-scraper/pkg/extractors"
	"github.com/dtnitsch/wanikani-scraper/pkg/fetcher"
	"github.com/dtnitsch/wanikani-scraper/pkg/results"
)

// extractFunc builds one record from a fetched page.
type extractFunc[R any] func(page *fetcher.Page, item models.InputItem) (R, error)

func RadicalsAction(c *cli.Context) error {
	return runScrape(c, models.SubjectRadical,
		func(page *fetcher.Page, item models.InputItem) (models.RadicalRecord, error) {
			return extractors.ExtractRadical(page.Doc, item)
		})
}

func KanjiAction(c *cli.Context) error {
	return runScrape(c, models.SubjectKanji,
		func(page *fetcher.Page, item models.InputItem) (models.KanjiRecord, error) {
			return extractors.ExtractKanji(page.Doc, item), nil
		})
}

func VocabularyAction(c *cli.Context) error {
	return runScrape(c, models.SubjectVocabulary,
		func(page *fetcher.Page, item models.InputItem) (models.VocabularyRecord, error) {
			return extractors.ExtractVocabulary(page.Doc, item), nil
		})
}

// runScrape is the shared command body: configuration, logging, wiring,
// one Driver run, run-history bookkeeping, exit code. Exit codes: 0
// success, 1 run failure, 2 configuration error.
func runScrape[R any](c *cli.Context, subject models.Subject, extract extractFunc[R]) error {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("configuration error: %v", err), 2)
	}

	opts := OptionsFromContext(c, subject, cfg)
	if err := opts.Validate(); err != nil {
		return cli.Exit(fmt.Sprintf("invalid options: %v", err), 2)
	}

	logger, closeLog, err := newLogger(opts)
	if err != nil {
		return cli.Exit(fmt.Sprintf("opening log file: %v", err), 2)
	}
	defer closeLog()
	slog.SetDefault(logger)

	index, err := models.LoadIndex(opts.InputPath)
	if err != nil {
		logger.Error("failed to load item index", slog.Any("error", err))
		return cli.Exit("", 2)
	}

	logger.Info("scrape starting",
		slog.String("subject", subject.String()),
		slog.Int("start", opts.Start),
		slog.Int("end", opts.End),
		slog.Int("indexed_items", index.TotalItems()),
		slog.String("input", opts.InputPath),
		slog.String("output", opts.OutputPath))

	// Run history is operability plumbing: an unavailable database logs a
	// warning and the scrape proceeds without it.
	recorder := &fetchRecorder{logger: logger}
	database, err := db.Open(opts.DBPath)
	if err != nil {
		logger.Warn("run history unavailable", slog.Any("error", err))
	} else {
		defer database.Close()
		recorder.db = database
	}

	fetch := fetcher.New(cfg.UserAgent, cfg.Timeout())
	process := func(ctx context.Context, level int, item models.InputItem) (R, error) {
		var zero R
		page, err := fetch.Fetch(ctx, item.URL)
		if err != nil {
			recorder.record(level, item, nil, err)
			return zero, err
		}
		record, err := extract(page, item)
		recorder.record(level, item, page, err)
		if err != nil {
			return zero, err
		}
		return record, nil
	}

	driver := NewDriver(
		logger,
		NewRunner(logger, process, opts.Delay),
		results.NewStore[R](opts.OutputPath),
		checkpoint.NewStore(opts.CheckpointPath),
		opts.Start,
		opts.End,
	)

	_, resumedAfter := driver.Resume()
	if database != nil {
		runID, err := database.InsertRun(subject.String(), opts.Start, opts.End, resumedAfter, opts.OutputPath)
		if err != nil {
			logger.Warn("failed to record run start", slog.Any("error", err))
		} else {
			recorder.runID = runID
		}
	}

	summary, runErr := driver.Run(c.Context, index)

	if database != nil && recorder.runID != 0 {
		var histErr error
		if runErr != nil {
			histErr = database.FailRun(recorder.runID, summary.CompletedLevels, summary.ItemCount, runErr.Error())
		} else {
			histErr = database.CompleteRun(recorder.runID, summary.CompletedLevels, summary.ItemCount)
		}
		if histErr != nil {
			logger.Warn("failed to record run outcome", slog.Any("error", histErr))
		}
	}

	if runErr != nil {
		logger.Error("scrape halted",
			slog.String("subject", subject.String()),
			slog.Int("completed_levels", summary.CompletedLevels),
			slog.Any("error", runErr))
		return cli.Exit("", 1)
	}
	return nil
}

// newLogger builds the dual-sink run logger: JSON lines to stdout and the
// per-subject log file, opened in append mode. --quiet raises the level to
// error-only.
func newLogger(opts Options) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(opts.LogDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory %s: %w", opts.LogDir, err)
	}
	logFile, err := os.OpenFile(opts.LogFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	logLevel := slog.LevelInfo
	if opts.Quiet {
		logLevel = slog.LevelError
	}
	handler := slog.NewJSONHandler(io.MultiWriter(os.Stdout, logFile), &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler), func() { logFile.Close() }, nil
}

// fetchRecorder writes one page_fetches row per attempted page, failures
// included. Recording problems are logged, never fatal to the scrape.
type fetchRecorder struct {
	logger *slog.Logger
	db     *db.DB
	runID  int64
}

func (r *fetchRecorder) record(level int, item models.InputItem, page *fetcher.Page, itemErr error) {
	if r.db == nil || r.runID == 0 {
		return
	}

	var (
		statusCode  int
		duration    time.Duration
		sizeBytes   int64
		contentHash string
	)
	var fetchErr *fetcher.FetchError
	switch {
	case page != nil:
		statusCode = page.StatusCode
		duration = page.Duration
		sizeBytes = int64(page.Size)
		contentHash = page.ContentHash
	case errors.As(itemErr, &fetchErr):
		statusCode = fetchErr.StatusCode
	}

	err := r.db.RecordPageFetch(r.runID, level, item.Character, item.URL,
		statusCode, duration, sizeBytes, contentHash, classifyError(itemErr), itemErr == nil)
	if err != nil {
		r.logger.Warn("failed to record page fetch",
			slog.String("character", item.Character),
			slog.Any("error", err))
	}
}

// classifyError maps an item failure onto the error_type column values.
func classifyError(err error) string {
	if err == nil {
		return ""
	}
	var fetchErr *fetcher.FetchError
	if errors.As(err, &fetchErr) {
		return "fetch_error"
	}
	var missing *extractors.MissingContentError
	if errors.As(err, &missing) {
		return "missing_content"
	}
	return "extract_error"
}
