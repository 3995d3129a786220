// Package db holds the run-history inspection commands: past scrape runs
// and the page fetches they made.
package db

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	dbpkg "github.com/dtnitsch/wanikani-scraper/pkg/db"
)

// RunsAction lists past scrape runs, most recent first.
func RunsAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	var runs []dbpkg.Run
	subject := c.String("subject")
	if subject != "" || c.Bool("failed") {
		runs, err = database.QueryRuns(subject, c.Bool("failed"))
	} else {
		runs, err = database.ListRuns(c.Int("limit"))
	}
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	// Print table header
	fmt.Printf("%-6s %-20s %-12s %-8s %-8s %-10s %-7s %-6s %-30s\n",
		"ID", "Started", "Subject", "Levels", "Resumed", "Status", "Done", "Items", "Output")
	fmt.Println(strings.Repeat("-", 115))

	for _, r := range runs {
		resumed := "-"
		if r.ResumedFrom.Valid {
			resumed = fmt.Sprintf("L%d", r.ResumedFrom.Int64)
		}
		fmt.Printf("%-6d %-20s %-12s %-8s %-8s %-10s %-7d %-6d %-30s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Subject,
			fmt.Sprintf("%d-%d", r.StartLevel, r.EndLevel),
			resumed,
			r.Status,
			r.CompletedLevels,
			r.ItemCount,
			filepath.Base(r.OutputFile),
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'wanikani-scraper db run <id>' to see details\n")

	return nil
}

// RunAction shows details for a specific run, including its failed
// fetches.
func RunAction(c *cli.Context) error {
	database, err := dbpkg.Open(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runID, err := GetRunIDOrLatest(c, database)
	if err != nil {
		return err
	}

	run, err := database.GetRunByID(runID)
	if err != nil {
		return fmt.Errorf("failed to get run: %w", err)
	}

	total, failed, err := database.CountFetches(runID)
	if err != nil {
		return fmt.Errorf("failed to count fetches: %w", err)
	}

	// Print run details
	fmt.Printf("Run %d\n", run.RunID)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Started:     %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	if run.FinishedAt.Valid {
		fmt.Printf("Finished:    %s\n", run.FinishedAt.Time.Format("2006-01-02 15:04:05"))
	} else {
		fmt.Printf("Finished:    (still running or killed)\n")
	}
	fmt.Printf("Subject:     %s\n", run.Subject)
	fmt.Printf("Levels:      %d-%d", run.StartLevel, run.EndLevel)
	if run.ResumedFrom.Valid {
		fmt.Printf(" (resumed after level %d)", run.ResumedFrom.Int64)
	}
	fmt.Println()
	fmt.Printf("Status:      %s\n", run.Status)
	fmt.Printf("Progress:    %d levels, %d items\n", run.CompletedLevels, run.ItemCount)
	fmt.Printf("Fetches:     %d total (%d failed)\n", total, failed)
	fmt.Printf("Output:      %s\n", run.OutputFile)
	if run.ErrorMessage.Valid {
		fmt.Printf("Error:       %s\n", run.ErrorMessage.String)
	}

	// Print failed fetches if any
	if failed > 0 {
		fetches, err := database.GetRunFetches(runID, true)
		if err != nil {
			return fmt.Errorf("failed to get run fetches: %w", err)
		}

		fmt.Printf("\nFailed fetches (%d):\n", len(fetches))
		fmt.Println(strings.Repeat("-", 60))
		for i, f := range fetches {
			fmt.Printf("%2d. [L%d] %s %s\n", i+1, f.Level, f.Character, f.URL)
			fmt.Printf("    Type: %s | Status: %d\n", f.ErrorType, f.StatusCode)
		}
	}

	if run.Status == dbpkg.RunStatusFailed {
		fmt.Printf("\nTip: Re-run 'wanikani-scraper %s' to resume from the checkpoint\n", run.Subject)
	}

	return nil
}
