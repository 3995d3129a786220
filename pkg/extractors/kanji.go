package extractors

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/wanikani-scraper/models"
	"github.com/dtnitsch/wanikani-scraper/pkg/htmlutil"
)

// ExtractKanji builds the output record for one kanji page. Every field is
// optional: a missing section leaves an empty list or string, never an
// error.
func ExtractKanji(doc *goquery.Document, item models.InputItem) models.KanjiRecord {
	return models.KanjiRecord{
		Character:          item.Character,
		URL:                item.URL,
		Meaning:            item.Meaning,
		Readings:           kanjiReadings(doc),
		RadicalCombination: radicalCombination(doc),
		Mnemonics:          kanjiMnemonics(doc, item.Character),
	}
}

// kanjiReadings pulls the on'yomi/kun'yomi/nanori lists from the Readings
// section. Reading blocks with an unrecognized title are skipped.
func kanjiReadings(doc *goquery.Document) models.Readings {
	readings := models.Readings{Onyomi: []string{}, Kunyomi: []string{}, Nanori: []string{}}

	section := sectionAfterHeading(doc, labelReadings)
	if section == nil {
		return readings
	}

	section.Find("div."+classReadingBlock).Each(func(_ int, block *goquery.Selection) {
		title := htmlutil.CollapseWhitespace(block.Find("h3." + classReadingTitle).Text())
		items := splitListText(block.Find("p." + classReadingItems).Text())
		if len(items) == 0 {
			return
		}
		switch {
		case strings.Contains(title, "On") && strings.Contains(title, "yomi"):
			readings.Onyomi = append(readings.Onyomi, items...)
		case strings.Contains(title, "Kun") && strings.Contains(title, "yomi"):
			readings.Kunyomi = append(readings.Kunyomi, items...)
		case strings.Contains(title, "Nanori"):
			readings.Nanori = append(readings.Nanori, items...)
		}
	})
	return readings
}

// radicalCombination lists the English radical names linked from the
// Radical Combination section, de-duplicated in page order. Glyph-only
// link lines carry no ASCII letters and are skipped.
func radicalCombination(doc *goquery.Document) []string {
	radicals := []string{}

	section := sectionAfterHeading(doc, labelRadicalCombination)
	if section == nil {
		return radicals
	}

	seen := map[string]bool{}
	section.Find("a").Each(func(_ int, link *goquery.Selection) {
		for _, line := range strings.Split(link.Text(), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || !hasASCIILetter(line) || seen[line] {
				continue
			}
			seen[line] = true
			radicals = append(radicals, line)
		}
	})
	return radicals
}

// kanjiMnemonics collects the meaning and reading mnemonic blocks. Each
// block joins its text and hint paragraphs with blank lines, markup
// preserved, and is classified by the enclosing section's reading marker
// class. A block with no enclosing section defaults to the meaning slot.
func kanjiMnemonics(doc *goquery.Document, character string) models.KanjiMnemonics {
	var m models.KanjiMnemonics

	doc.Find("h3." + classSectionSubtitle).Each(func(_ int, h *goquery.Selection) {
		if !strings.Contains(strings.TrimSpace(h.Text()), labelMnemonic) {
			return
		}
		subsection := h.Closest("section." + classSubsection)
		if subsection.Length() == 0 {
			return
		}

		parts := paragraphsHTML(subsection, "p."+classSectionText)
		parts = append(parts, paragraphsHTML(subsection, "p."+classHintText)...)
		block := strings.Join(parts, "\n\n")

		section := subsection.Closest("section." + classSection)
		switch {
		case section.Length() == 0:
			slog.Warn("mnemonic block without enclosing section, storing as meaning",
				slog.String("character", character))
			if m.Meaning == "" {
				m.Meaning = block
			}
		case section.HasClass(classSectionReading):
			m.Reading = block
		default:
			m.Meaning = block
		}
	})
	return m
}
