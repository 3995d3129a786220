// Package extractors turns parsed subject pages into output records, one
// extractor per content type. Sections are located by heading label and
// known CSS classes; all of those strings live here so upstream page churn
// lands in one file.
package extractors

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/wanikani-scraper/pkg/htmlutil"
)

// Heading label substrings.
const (
	labelMnemonic           = "Mnemonic"
	labelReadings           = "Readings"
	labelReading            = "Reading"
	labelExplanation        = "Explanation"
	labelRadicalCombination = "Radical Combination"
	labelKanjiComposition   = "Kanji Composition"
)

// CSS classes and elements of the upstream subject pages.
const (
	classSectionSubtitle  = "subject-section__subtitle"
	classSection          = "subject-section"
	classSubsection       = "subject-section__subsection"
	classSectionReading   = "subject-section--reading"
	classSectionText      = "subject-section__text"
	classHintText         = "subject-hint__text"
	classReadingBlock     = "subject-readings__reading"
	classReadingTitle     = "subject-readings__reading-title"
	classReadingItems     = "subject-readings__reading-items"
	classMeanings         = "subject-section__meanings"
	classMeaningsPrimary  = "subject-section__meanings--primary"
	classMeaningsItems    = "subject-section__meanings-items"
	classReadingWithAudio = "reading-with-audio__reading"
	classCharGridItem     = "subject-character-grid__item"
	classCharText         = "subject-character__characters-text"
	classCharReading      = "subject-character__reading"
	classCharMeaning      = "subject-character__meaning"
	elemMnemonicImage     = "wk-mnemonic-image"
)

// MissingContentError marks structurally required content that was absent
// from a page. A data-integrity signal, not a transient fault.
type MissingContentError struct {
	Character string
	Field     string
}

func (e *MissingContentError) Error() string {
	return fmt.Sprintf("%s: required %s not found on page", e.Character, e.Field)
}

// sectionAfterHeading finds the first h2 whose text contains label and
// returns the next div after it in document order. Only the first matching
// heading is considered; nil when the heading or its container is absent.
func sectionAfterHeading(doc *goquery.Document, label string) *goquery.Selection {
	var section *goquery.Selection
	doc.Find("h2").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if !strings.Contains(h.Text(), label) {
			return true
		}
		if div := htmlutil.NextByTag(h.Nodes[0], "div"); div != nil {
			section = doc.FindNodes(div)
		}
		return false
	})
	return section
}

// splitListText parses a comma-separated multi-value field: full-width
// commas normalize to ASCII, fragments are trimmed, empties and the "None"
// placeholder (any case) are dropped.
func splitListText(text string) []string {
	values := []string{}
	text = strings.TrimSpace(text)
	if text == "" || strings.EqualFold(text, "none") {
		return values
	}
	for _, part := range strings.Split(strings.ReplaceAll(text, "、", ","), ",") {
		part = strings.TrimSpace(part)
		if part == "" || strings.EqualFold(part, "none") {
			continue
		}
		values = append(values, part)
	}
	return values
}

// paragraphsHTML collects the trimmed inner markup of every paragraph in
// sel matching selector, skipping empty ones. Inline emphasis tags survive.
func paragraphsHTML(sel *goquery.Selection, selector string) []string {
	parts := []string{}
	sel.Find(selector).Each(func(_ int, p *goquery.Selection) {
		if inner := htmlutil.InnerHTML(p); inner != "" {
			parts = append(parts, inner)
		}
	})
	return parts
}

// hasASCIILetter reports whether s contains an ASCII letter, which
// separates English radical names from glyph-only link text.
func hasASCIILetter(s string) bool {
	for _, r := range s {
		if r < 128 && unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
