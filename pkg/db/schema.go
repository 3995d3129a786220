package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs: one row per scrape invocation
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    finished_at TIMESTAMP,
    subject TEXT NOT NULL,                   -- radicals, kanji, vocabulary
    start_level INTEGER NOT NULL,
    end_level INTEGER NOT NULL,
    resumed_from INTEGER,                    -- checkpoint level the run resumed after, NULL for fresh runs
    status TEXT NOT NULL DEFAULT 'running',  -- running, completed, failed
    completed_levels INTEGER DEFAULT 0,
    item_count INTEGER DEFAULT 0,
    error_message TEXT,
    output_file TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_subject ON runs(subject);
CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);

-- Page fetches: every page request made during a run
CREATE TABLE IF NOT EXISTS page_fetches (
    fetch_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    fetched_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    level INTEGER NOT NULL,
    character TEXT NOT NULL,
    url TEXT NOT NULL,
    status_code INTEGER,
    duration_ms INTEGER,
    size_bytes INTEGER,
    content_hash TEXT,
    error_type TEXT,
    success BOOLEAN NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_fetches_run ON page_fetches(run_id);
CREATE INDEX IF NOT EXISTS idx_fetches_level ON page_fetches(run_id, level);
CREATE INDEX IF NOT EXISTS idx_fetches_failed ON page_fetches(success) WHERE success = 0;
`
