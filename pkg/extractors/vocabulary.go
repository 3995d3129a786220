package extractors

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/wanikani-scraper/models"
	"github.com/dtnitsch/wanikani-scraper/pkg/htmlutil"
)

// ExtractVocabulary builds the output record for one vocabulary page.
// Every field is optional.
func ExtractVocabulary(doc *goquery.Document, item models.InputItem) models.VocabularyRecord {
	primary, alternatives := vocabularyMeanings(doc)
	meaningExp, readingExp := vocabularyExplanations(doc, item.Character)

	return models.VocabularyRecord{
		Character:           item.Character,
		URL:                 item.URL,
		Meaning:             item.Meaning,
		PrimaryMeaning:      primary,
		AlternativeMeanings: alternatives,
		Reading:             vocabularyReading(doc),
		MeaningExplanation:  meaningExp,
		ReadingExplanation:  readingExp,
		KanjiComposition:    kanjiComposition(doc),
		Type:                item.Type,
	}
}

// vocabularyMeanings returns the primary meaning plus the alternatives
// from meaning blocks explicitly labeled "Alternative"/"Alternatives".
// Alternatives split on commas; one-character fragments are noise from
// glyph separators and are dropped.
func vocabularyMeanings(doc *goquery.Document) (string, []string) {
	primary := strings.TrimSpace(doc.Find("div." + classMeaningsPrimary).First().
		Find("p." + classMeaningsItems).First().Text())

	alternatives := []string{}
	doc.Find("div." + classMeanings).Each(func(_ int, section *goquery.Selection) {
		if section.HasClass(classMeaningsPrimary) {
			return
		}
		labeled := false
		section.Find("*").EachWithBreak(func(_ int, el *goquery.Selection) bool {
			text := strings.ToLower(strings.TrimSpace(el.Text()))
			if text == "alternative" || text == "alternatives" {
				labeled = true
				return false
			}
			return true
		})
		if !labeled {
			return
		}

		altText := strings.TrimSpace(section.Find("p." + classMeaningsItems).First().Text())
		if altText == "" {
			return
		}
		if strings.Contains(altText, ",") {
			for _, part := range strings.Split(altText, ",") {
				part = strings.TrimSpace(part)
				if part != "" && utf8.RuneCountInString(part) > 1 {
					alternatives = append(alternatives, part)
				}
			}
		} else {
			alternatives = append(alternatives, altText)
		}
	})
	return primary, alternatives
}

// vocabularyReading returns the reading text. The dedicated
// reading-with-audio element wins when present; otherwise the section is
// scanned for a short kana-bearing text, since readings are the only short
// kana runs in it.
func vocabularyReading(doc *goquery.Document) string {
	section := sectionAfterHeading(doc, labelReading)
	if section == nil {
		return ""
	}

	readingEl := section.Find("div." + classReadingWithAudio).First()
	if readingEl.Length() > 0 {
		return strings.TrimSpace(readingEl.Text())
	}

	found := ""
	section.Find("p, span, div").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		text := strings.TrimSpace(el.Text())
		if text != "" && htmlutil.ContainsKana(text) && utf8.RuneCountInString(text) < 20 {
			found = text
			return false
		}
		return true
	})
	return found
}

// vocabularyExplanations collects the meaning and reading explanation
// blocks, classified by the nearest h2 above each block. A block whose
// heading context names neither category defaults to the meaning slot
// instead of being dropped.
func vocabularyExplanations(doc *goquery.Document, character string) (meaning, reading string) {
	doc.Find("h3").Each(func(_ int, h *goquery.Selection) {
		if !strings.Contains(h.Text(), labelExplanation) {
			return
		}
		section := h.Closest("section." + classSection)
		if section.Length() == 0 {
			return
		}
		explanation := strings.Join(paragraphsHTML(section, "p."+classSectionText), " ")

		if prevH2 := htmlutil.PrevByTag(h.Nodes[0], "h2"); prevH2 != nil {
			context := strings.ToLower(strings.TrimSpace(htmlutil.Text(prevH2)))
			switch {
			case strings.Contains(context, "meaning") || strings.Contains(context, "word type"):
				meaning = explanation
				return
			case strings.Contains(context, "reading"):
				reading = explanation
				return
			}
		}

		slog.Warn("explanation block without meaning/reading context, storing as meaning",
			slog.String("character", character))
		if meaning == "" {
			meaning = explanation
		}
	})
	return meaning, reading
}

// kanjiComposition lists the kanji the word is built from. Grid entries
// with no character text are skipped.
func kanjiComposition(doc *goquery.Document) []models.KanjiComposition {
	components := []models.KanjiComposition{}

	section := sectionAfterHeading(doc, labelKanjiComposition)
	if section == nil {
		return components
	}

	section.Find("li."+classCharGridItem).Each(func(_ int, item *goquery.Selection) {
		kanji := strings.TrimSpace(item.Find("span." + classCharText).First().Text())
		if kanji == "" {
			return
		}
		components = append(components, models.KanjiComposition{
			Kanji:   kanji,
			Reading: strings.TrimSpace(item.Find("span." + classCharReading).First().Text()),
			Meaning: strings.TrimSpace(item.Find("span." + classCharMeaning).First().Text()),
			URL:     item.Find("a").First().AttrOr("href", ""),
		})
	})
	return components
}
