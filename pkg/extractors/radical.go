package extractors

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/wanikani-scraper/models"
)

// ExtractRadical builds the output record for one radical page. The
// mnemonic is mandatory: a radical page without one fails the item with a
// *MissingContentError. The mnemonic image is optional.
func ExtractRadical(doc *goquery.Document, item models.InputItem) (models.RadicalRecord, error) {
	mnemonic, ok := radicalMnemonic(doc)
	if !ok {
		return models.RadicalRecord{}, &MissingContentError{Character: item.Character, Field: "mnemonic"}
	}

	return models.RadicalRecord{
		Character:     item.Character,
		URL:           item.URL,
		Meaning:       item.Meaning,
		Mnemonic:      mnemonic,
		MnemonicImage: mnemonicImage(doc),
		Type:          item.Type,
	}, nil
}

// radicalMnemonic returns the first non-empty mnemonic section: paragraphs
// joined with single spaces, inline markup preserved.
func radicalMnemonic(doc *goquery.Document) (string, bool) {
	found := ""
	doc.Find("h3." + classSectionSubtitle).EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if !strings.Contains(h.Text(), labelMnemonic) {
			return true
		}
		section := h.Closest("section." + classSection)
		if section.Length() == 0 {
			return true
		}
		mnemonic := strings.TrimSpace(strings.Join(paragraphsHTML(section, "p."+classSectionText), " "))
		if mnemonic == "" {
			return true
		}
		found = mnemonic
		return false
	})
	return found, found != ""
}

// mnemonicImage returns the src of the wk-mnemonic-image element verbatim
// (trimmed), or "" — the URL is recorded, never fetched or validated.
func mnemonicImage(doc *goquery.Document) string {
	src, _ := doc.Find(elemMnemonicImage).First().Attr("src")
	return strings.TrimSpace(src)
}
