package models

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/dtnitsch/wanikani-scraper/internal/common"
)

// Level bounds of the WaniKani curriculum.
const (
	MinLevel = 1
	MaxLevel = 60
)

// InputItem is one entry of the scrape index: what to fetch plus the
// metadata carried through to the output record unchanged.
type InputItem struct {
	Character string `json:"character"`
	URL       string `json:"url"`
	Meaning   string `json:"meaning,omitempty"`
	Type      string `json:"type,omitempty"`
}

// Index maps a level to the items configured for it. Loaded once per run,
// immutable afterwards.
type Index map[int][]InputItem

// Items returns the items configured for a level. A missing level is an
// intentionally empty one.
func (ix Index) Items(level int) []InputItem {
	return ix[level]
}

// Levels returns the configured levels in ascending order.
func (ix Index) Levels() []int {
	levels := make([]int, 0, len(ix))
	for level := range ix {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	return levels
}

// TotalItems counts the items across all levels.
func (ix Index) TotalItems() int {
	total := 0
	for _, items := range ix {
		total += len(items)
	}
	return total
}

// LoadIndex reads a level→items index from a JSON file of the shape
// {"1": [{character, url, meaning, type}, ...], ...}. Item URLs are
// sanitized and must parse as absolute http(s) URLs; a malformed index is
// rejected before any network activity.
func LoadIndex(path string) (Index, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading item index: %w", err)
	}

	byLevel := map[string][]InputItem{}
	if err := json.Unmarshal(raw, &byLevel); err != nil {
		return nil, fmt.Errorf("parsing item index %s: %w", path, err)
	}

	ix := make(Index, len(byLevel))
	for key, items := range byLevel {
		level, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("item index %s: level key %q is not a number", path, key)
		}
		for i := range items {
			items[i].URL = common.SanitizeURL(items[i].URL)
			if items[i].Character == "" {
				return nil, fmt.Errorf("item index %s: level %d item %d has no character", path, level, i)
			}
			if err := common.ValidateURL(items[i].URL); err != nil {
				return nil, fmt.Errorf("item index %s: level %d item %q: %w", path, level, items[i].Character, err)
			}
		}
		ix[level] = items
	}
	return ix, nil
}
