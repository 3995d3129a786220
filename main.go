package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	internaldb "github.com/dtnitsch/wanikani-scraper/internal/db"
	"github.com/dtnitsch/wanikani-scraper/internal/scrape"
	"github.com/dtnitsch/wanikani-scraper/models"
	"github.com/dtnitsch/wanikani-scraper/pkg/db"
)

func main() {
	app := &cli.App{
		Name:  "wanikani-scraper",
		Usage: "Scrape WaniKani radical, kanji, and vocabulary pages into level-keyed JSON",
		Description: "Fetches one page per item, extracts mnemonics, readings, and " +
			"meanings with their markup intact, and writes results level by level. " +
			"Progress is checkpointed after every level, so an interrupted run " +
			"resumes without re-fetching completed levels.",
		Commands: []*cli.Command{
			{
				Name:   "radicals",
				Usage:  "Scrape radical pages (mnemonic mandatory, image URL optional)",
				Flags:  scrapeFlags(models.SubjectRadical),
				Action: scrape.RadicalsAction,
			},
			{
				Name:   "kanji",
				Usage:  "Scrape kanji pages (readings, radical combination, mnemonics)",
				Flags:  scrapeFlags(models.SubjectKanji),
				Action: scrape.KanjiAction,
			},
			{
				Name:    "vocabulary",
				Aliases: []string{"vocab"},
				Usage:   "Scrape vocabulary pages (meanings, reading, explanations, composition)",
				Flags:   scrapeFlags(models.SubjectVocabulary),
				Action:  scrape.VocabularyAction,
			},
			{
				Name:  "db",
				Usage: "Inspect the run-history database",
				Subcommands: []*cli.Command{
					{
						Name:   "runs",
						Usage:  "List past scrape runs",
						Action: internaldb.RunsAction,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "db", Value: db.DefaultDBName, Usage: "Run-history database path"},
							&cli.IntFlag{Name: "limit", Value: 20, Usage: "Maximum runs to list"},
							&cli.StringFlag{Name: "subject", Usage: "Filter by subject (radical, kanji, vocabulary)"},
							&cli.BoolFlag{Name: "failed", Usage: "Only show failed runs"},
						},
					},
					{
						Name:      "run",
						Usage:     "Show one run's details and failed fetches",
						ArgsUsage: "[run-id]",
						Action:    internaldb.RunAction,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "db", Value: db.DefaultDBName, Usage: "Run-history database path"},
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		// cli.Exit errors already carried their message and code.
		if _, ok := err.(cli.ExitCoder); !ok {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

// scrapeFlags is the flag set shared by the three scrape commands. Path
// flags default per subject inside the action so the generated help shows
// the conventional file names.
func scrapeFlags(subject models.Subject) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "start",
			Value: models.MinLevel,
			Usage: "First level to scrape (1-60)",
		},
		&cli.IntFlag{
			Name:  "end",
			Value: models.MaxLevel,
			Usage: "Last level to scrape (1-60)",
		},
		&cli.StringFlag{
			Name:        "input",
			Usage:       "Level-to-items index file",
			DefaultText: subject.DefaultInputFile(),
		},
		&cli.StringFlag{
			Name:        "output",
			Usage:       "Results file, merged into on resume",
			DefaultText: subject.DefaultOutputFile(),
		},
		&cli.StringFlag{
			Name:        "checkpoint",
			Usage:       "Checkpoint file, deleted on full success",
			DefaultText: subject.DefaultCheckpointFile(),
		},
		&cli.Float64Flag{
			Name:        "delay",
			Usage:       "Seconds to sleep between item fetches",
			DefaultText: "1.5",
		},
		&cli.StringFlag{
			Name:        "db",
			Usage:       "Run-history database path",
			DefaultText: "wanikani_scraper.db",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "Optional YAML config file",
		},
		&cli.StringFlag{
			Name:        "log-dir",
			Usage:       "Directory for the per-subject log file",
			DefaultText: ".",
		},
		&cli.BoolFlag{
			Name:  "quiet",
			Usage: "Only log errors",
		},
	}
}
