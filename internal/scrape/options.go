package scrape

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wanikani-scraper/models"
)

// Options is the resolved per-run configuration for one scrape command:
// CLI flags merged over the config file, defaults filled per subject.
type Options struct {
	Subject        models.Subject
	Start          int
	End            int
	InputPath      string
	OutputPath     string
	CheckpointPath string
	LogDir         string
	DBPath         string
	Delay          time.Duration
	Quiet          bool
}

// OptionsFromContext merges CLI flags over the loaded config. Flag values
// win where both are set; unset path flags fall back to the subject's
// conventional file names.
func OptionsFromContext(c *cli.Context, subject models.Subject, cfg models.Config) Options {
	opts := Options{
		Subject:        subject,
		Start:          c.Int("start"),
		End:            c.Int("end"),
		InputPath:      c.String("input"),
		OutputPath:     c.String("output"),
		CheckpointPath: c.String("checkpoint"),
		LogDir:         cfg.LogDir,
		DBPath:         cfg.DBPath,
		Delay:          cfg.Delay(),
		Quiet:          c.Bool("quiet"),
	}

	if opts.InputPath == "" {
		opts.InputPath = subject.DefaultInputFile()
	}
	if opts.OutputPath == "" {
		opts.OutputPath = subject.DefaultOutputFile()
	}
	if opts.CheckpointPath == "" {
		opts.CheckpointPath = subject.DefaultCheckpointFile()
	}
	if c.IsSet("log-dir") {
		opts.LogDir = c.String("log-dir")
	}
	if c.IsSet("db") {
		opts.DBPath = c.String("db")
	}
	if c.IsSet("delay") {
		opts.Delay = time.Duration(c.Float64("delay") * float64(time.Second))
	}
	return opts
}

// Validate rejects a run before any network activity: the level range must
// satisfy 1 <= start <= end <= 60 and the input index must exist.
func (o Options) Validate() error {
	err := validation.ValidateStruct(&o,
		validation.Field(&o.Start,
			validation.Required,
			validation.Min(models.MinLevel),
			validation.Max(models.MaxLevel),
		),
		validation.Field(&o.End,
			validation.Required,
			validation.Min(models.MinLevel),
			validation.Max(models.MaxLevel),
			validation.By(o.endNotBeforeStart),
		),
		validation.Field(&o.InputPath, validation.Required),
		validation.Field(&o.OutputPath, validation.Required),
		validation.Field(&o.CheckpointPath, validation.Required),
		validation.Field(&o.Delay, validation.Min(time.Duration(0))),
	)
	if err != nil {
		return err
	}

	if _, err := os.Stat(o.InputPath); err != nil {
		return fmt.Errorf("input file %s: %w", o.InputPath, err)
	}
	return nil
}

func (o Options) endNotBeforeStart(interface{}) error {
	if o.End < o.Start {
		return fmt.Errorf("must be >= start level (%d)", o.Start)
	}
	return nil
}

// LogFilePath is the per-subject log file inside the log directory.
func (o Options) LogFilePath() string {
	return filepath.Join(o.LogDir, o.Subject.LogFileName())
}
