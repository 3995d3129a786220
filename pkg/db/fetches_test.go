package db

import (
	"testing"
	"time"
)

func TestRecordPageFetch(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, _ := db.InsertRun("kanji", 1, 60, 0, "out.json")

	err := db.RecordPageFetch(runID, 1, "山", "https://example.com/kanji/山", 200,
		1500*time.Millisecond, 48213, "abc123", "", true)
	if err != nil {
		t.Fatalf("RecordPageFetch() error = %v", err)
	}

	fetches, err := db.GetRunFetches(runID, false)
	if err != nil {
		t.Fatalf("GetRunFetches() error = %v", err)
	}

	if len(fetches) != 1 {
		t.Fatalf("got %d fetches, want 1", len(fetches))
	}

	f := fetches[0]
	if f.Level != 1 {
		t.Errorf("fetch.Level = %d, want 1", f.Level)
	}
	if f.Character != "山" {
		t.Errorf("fetch.Character = %q, want %q", f.Character, "山")
	}
	if f.StatusCode != 200 {
		t.Errorf("fetch.StatusCode = %d, want 200", f.StatusCode)
	}
	if f.DurationMS != 1500 {
		t.Errorf("fetch.DurationMS = %d, want 1500", f.DurationMS)
	}
	if f.SizeBytes != 48213 {
		t.Errorf("fetch.SizeBytes = %d, want 48213", f.SizeBytes)
	}
	if !f.Success {
		t.Error("fetch.Success = false, want true")
	}
}

func TestRecordPageFetch_FailedRequest(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, _ := db.InsertRun("vocabulary", 1, 60, 0, "out.json")

	err := db.RecordPageFetch(runID, 3, "富士山", "https://example.com/vocabulary/富士山", 503,
		200*time.Millisecond, 0, "", "fetch", false)
	if err != nil {
		t.Fatalf("RecordPageFetch() error = %v", err)
	}

	fetches, err := db.GetRunFetches(runID, false)
	if err != nil {
		t.Fatalf("GetRunFetches() error = %v", err)
	}

	if len(fetches) != 1 {
		t.Fatalf("got %d fetches, want 1", len(fetches))
	}
	if fetches[0].Success {
		t.Error("fetch.Success = true, want false")
	}
	if fetches[0].ErrorType != "fetch" {
		t.Errorf("fetch.ErrorType = %q, want %q", fetches[0].ErrorType, "fetch")
	}
}

func TestGetRunFetches_FailedOnly(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, _ := db.InsertRun("kanji", 1, 60, 0, "out.json")

	db.RecordPageFetch(runID, 1, "一", "https://example.com/kanji/一", 200, time.Second, 100, "h1", "", true)
	db.RecordPageFetch(runID, 1, "二", "https://example.com/kanji/二", 404, time.Second, 0, "", "fetch", false)
	db.RecordPageFetch(runID, 1, "三", "https://example.com/kanji/三", 200, time.Second, 100, "h3", "", true)

	failed, err := db.GetRunFetches(runID, true)
	if err != nil {
		t.Fatalf("GetRunFetches() error = %v", err)
	}

	if len(failed) != 1 {
		t.Fatalf("got %d failed fetches, want 1", len(failed))
	}
	if failed[0].Character != "二" {
		t.Errorf("failed fetch character = %q, want %q", failed[0].Character, "二")
	}
}

func TestGetRunFetches_OldestFirst(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, _ := db.InsertRun("radicals", 1, 60, 0, "out.json")

	for _, character := range []string{"一", "二", "三"} {
		if err := db.RecordPageFetch(runID, 1, character, "https://example.com/radicals/"+character,
			200, time.Second, 100, "h", "", true); err != nil {
			t.Fatalf("RecordPageFetch(%s) error = %v", character, err)
		}
	}

	fetches, err := db.GetRunFetches(runID, false)
	if err != nil {
		t.Fatalf("GetRunFetches() error = %v", err)
	}

	want := []string{"一", "二", "三"}
	if len(fetches) != len(want) {
		t.Fatalf("got %d fetches, want %d", len(fetches), len(want))
	}
	for i, w := range want {
		if fetches[i].Character != w {
			t.Errorf("fetch[%d].Character = %q, want %q", i, fetches[i].Character, w)
		}
	}
}

func TestCountFetches(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, _ := db.InsertRun("kanji", 1, 60, 0, "out.json")

	db.RecordPageFetch(runID, 1, "一", "https://example.com/kanji/一", 200, time.Second, 100, "h1", "", true)
	db.RecordPageFetch(runID, 1, "二", "https://example.com/kanji/二", 404, time.Second, 0, "", "fetch", false)
	db.RecordPageFetch(runID, 2, "三", "https://example.com/kanji/三", 0, time.Second, 0, "", "fetch", false)

	total, failed, err := db.CountFetches(runID)
	if err != nil {
		t.Fatalf("CountFetches() error = %v", err)
	}

	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if failed != 2 {
		t.Errorf("failed = %d, want 2", failed)
	}
}

func TestCountFetches_EmptyRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, _ := db.InsertRun("kanji", 1, 60, 0, "out.json")

	total, failed, err := db.CountFetches(runID)
	if err != nil {
		t.Fatalf("CountFetches() error = %v", err)
	}

	if total != 0 || failed != 0 {
		t.Errorf("counts = %d/%d, want 0/0", total, failed)
	}
}
