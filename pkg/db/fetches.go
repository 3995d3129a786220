package db

import (
	"fmt"
	"time"
)

// PageFetch represents one page request made during a run
type PageFetch struct {
	FetchID     int64
	RunID       int64
	FetchedAt   time.Time
	Level       int
	Character   string
	URL         string
	StatusCode  int
	DurationMS  int64
	SizeBytes   int64
	ContentHash string
	ErrorType   string
	Success     bool
}

// RecordPageFetch records a page request in page_fetches. For failed
// requests statusCode may be zero and contentHash empty.
func (db *DB) RecordPageFetch(runID int64, level int, character, url string, statusCode int, duration time.Duration, sizeBytes int64, contentHash, errorType string, success bool) error {
	_, err := db.Exec(`
		INSERT INTO page_fetches (run_id, level, character, url, status_code, duration_ms, size_bytes, content_hash, error_type, success)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, level, character, url, statusCode, duration.Milliseconds(), sizeBytes, contentHash, errorType, success)
	if err != nil {
		return fmt.Errorf("failed to record page fetch: %w", err)
	}
	return nil
}

// GetRunFetches retrieves the page requests for a run, oldest first.
func (db *DB) GetRunFetches(runID int64, failedOnly bool) ([]PageFetch, error) {
	query := `
		SELECT fetch_id, run_id, fetched_at, level, character, url,
		       status_code, duration_ms, size_bytes, content_hash, error_type, success
		FROM page_fetches
		WHERE run_id = ?
	`
	if failedOnly {
		query += " AND success = 0"
	}
	query += " ORDER BY fetch_id"

	rows, err := db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run fetches: %w", err)
	}
	defer rows.Close()

	var fetches []PageFetch
	for rows.Next() {
		var f PageFetch
		if err := rows.Scan(&f.FetchID, &f.RunID, &f.FetchedAt, &f.Level, &f.Character, &f.URL,
			&f.StatusCode, &f.DurationMS, &f.SizeBytes, &f.ContentHash, &f.ErrorType, &f.Success); err != nil {
			return nil, fmt.Errorf("failed to scan page fetch: %w", err)
		}
		fetches = append(fetches, f)
	}

	return fetches, nil
}

// CountFetches returns total and failed request counts for a run.
func (db *DB) CountFetches(runID int64) (total, failed int, err error) {
	err = db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0)
		FROM page_fetches
		WHERE run_id = ?
	`, runID).Scan(&total, &failed)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count fetches: %w", err)
	}
	return total, failed, nil
}
