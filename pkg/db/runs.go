package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Run statuses as stored in the runs table.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Run represents one scrape invocation
type Run struct {
	RunID           int64
	CreatedAt       time.Time
	FinishedAt      sql.NullTime
	Subject         string
	StartLevel      int
	EndLevel        int
	ResumedFrom     sql.NullInt64
	Status          string
	CompletedLevels int
	ItemCount       int
	ErrorMessage    sql.NullString
	OutputFile      string
}

// InsertRun records the start of a run. resumedFrom is the checkpoint level
// the run resumed after; pass 0 for a fresh run.
func (db *DB) InsertRun(subject string, startLevel, endLevel, resumedFrom int, outputFile string) (int64, error) {
	var resumed interface{}
	if resumedFrom > 0 {
		resumed = resumedFrom
	}

	result, err := db.Exec(`
		INSERT INTO runs (subject, start_level, end_level, resumed_from, status, output_file)
		VALUES (?, ?, ?, ?, ?, ?)
	`, subject, startLevel, endLevel, resumed, RunStatusRunning, outputFile)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	return runID, nil
}

// CompleteRun marks a run as finished cleanly.
func (db *DB) CompleteRun(runID int64, completedLevels, itemCount int) error {
	_, err := db.Exec(`
		UPDATE runs
		SET status = ?, completed_levels = ?, item_count = ?, finished_at = CURRENT_TIMESTAMP
		WHERE run_id = ?
	`, RunStatusCompleted, completedLevels, itemCount, runID)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// FailRun marks a run as halted, keeping the progress it made before the
// failure.
func (db *DB) FailRun(runID int64, completedLevels, itemCount int, errMessage string) error {
	_, err := db.Exec(`
		UPDATE runs
		SET status = ?, completed_levels = ?, item_count = ?, error_message = ?, finished_at = CURRENT_TIMESTAMP
		WHERE run_id = ?
	`, RunStatusFailed, completedLevels, itemCount, errMessage, runID)
	if err != nil {
		return fmt.Errorf("failed to mark run as failed: %w", err)
	}
	return nil
}

// GetRunByID retrieves a run by its ID
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	var run Run
	err := db.QueryRow(`
		SELECT run_id, created_at, finished_at, subject, start_level, end_level,
		       resumed_from, status, completed_levels, item_count, error_message, output_file
		FROM runs
		WHERE run_id = ?
	`, runID).Scan(
		&run.RunID,
		&run.CreatedAt,
		&run.FinishedAt,
		&run.Subject,
		&run.StartLevel,
		&run.EndLevel,
		&run.ResumedFrom,
		&run.Status,
		&run.CompletedLevels,
		&run.ItemCount,
		&run.ErrorMessage,
		&run.OutputFile,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// ListRuns retrieves runs ordered by most recent first
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `
		SELECT run_id, created_at, finished_at, subject, start_level, end_level,
		       resumed_from, status, completed_levels, item_count, error_message, output_file
		FROM runs
		ORDER BY created_at DESC, run_id DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.FinishedAt, &r.Subject, &r.StartLevel,
			&r.EndLevel, &r.ResumedFrom, &r.Status, &r.CompletedLevels, &r.ItemCount,
			&r.ErrorMessage, &r.OutputFile); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}

	return runs, nil
}

// QueryRuns filters runs by subject and outcome
func (db *DB) QueryRuns(subject string, failedOnly bool) ([]Run, error) {
	query := `
		SELECT run_id, created_at, finished_at, subject, start_level, end_level,
		       resumed_from, status, completed_levels, item_count, error_message, output_file
		FROM runs
	`

	var conditions []string
	var args []interface{}

	if subject != "" {
		conditions = append(conditions, "subject = ?")
		args = append(args, subject)
	}

	if failedOnly {
		conditions = append(conditions, "status = ?")
		args = append(args, RunStatusFailed)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC, run_id DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.FinishedAt, &r.Subject, &r.StartLevel,
			&r.EndLevel, &r.ResumedFrom, &r.Status, &r.CompletedLevels, &r.ItemCount,
			&r.ErrorMessage, &r.OutputFile); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}

	return runs, nil
}
