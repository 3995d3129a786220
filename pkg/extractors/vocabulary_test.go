package extractors

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/wanikani-scraper/models"
)

const vocabularyPage = `<html><body>
<section class="subject-section subject-section--meaning">
  <h2 class="subject-section__title">Meaning</h2>
  <div class="subject-section__meanings subject-section__meanings--primary">
    <h2 class="subject-section__meanings-title">Primary</h2>
    <p class="subject-section__meanings-items">Mt Fuji</p>
  </div>
  <div class="subject-section__meanings">
    <h2 class="subject-section__meanings-title">Alternatives</h2>
    <p class="subject-section__meanings-items">Mount Fuji, Fujiyama, X</p>
  </div>
  <div class="subject-section__meanings">
    <h2 class="subject-section__meanings-title">Word Type</h2>
    <p class="subject-section__meanings-items">noun, proper noun</p>
  </div>
  <section class="subject-section__subsection">
    <h3 class="subject-section__subtitle">Explanation</h3>
    <p class="subject-section__text">The famous <mark class="vocabulary-highlight">mountain</mark>.</p>
    <p class="subject-section__text">It is very tall.</p>
  </section>
</section>
<section class="subject-section subject-section--reading">
  <h2 class="subject-section__title">Reading</h2>
  <div class="subject-readings-with-audio">
    <div class="reading-with-audio">
      <div class="reading-with-audio__reading">ふじさん</div>
    </div>
  </div>
  <section class="subject-section__subsection">
    <h3 class="subject-section__subtitle">Explanation</h3>
    <p class="subject-section__text">Both kanji use their <mark class="reading-highlight">on</mark> readings.</p>
  </section>
</section>
<section class="subject-section">
  <h2 class="subject-section__title">Kanji Composition</h2>
  <div class="subject-composition">
    <ul class="subject-character-grid">
      <li class="subject-character-grid__item">
        <a href="https://www.wanikani.com/kanji/富">
          <span class="subject-character__characters-text">富</span>
          <span class="subject-character__reading">ふ</span>
          <span class="subject-character__meaning">Rich</span>
        </a>
      </li>
      <li class="subject-character-grid__item">
        <a href="https://www.wanikani.com/kanji/士">
          <span class="subject-character__characters-text">士</span>
          <span class="subject-character__reading">し</span>
          <span class="subject-character__meaning">Samurai</span>
        </a>
      </li>
      <li class="subject-character-grid__item">
        <span class="subject-character__characters-text"> </span>
      </li>
    </ul>
  </div>
</section>
</body></html>`

func vocabularyItem() models.InputItem {
	return models.InputItem{
		Character: "富士山",
		URL:       "https://www.wanikani.com/vocabulary/富士山",
		Meaning:   "Mt Fuji",
		Type:      "noun",
	}
}

func TestExtractVocabulary_FullPage(t *testing.T) {
	doc := parseDoc(t, vocabularyPage)

	rec := ExtractVocabulary(doc, vocabularyItem())

	require.Equal(t, "富士山", rec.Character)
	require.Equal(t, "noun", rec.Type)
	require.Equal(t, "Mt Fuji", rec.PrimaryMeaning)
	require.Equal(t, []string{"Mount Fuji", "Fujiyama"}, rec.AlternativeMeanings)
	require.Equal(t, "ふじさん", rec.Reading)
	require.Equal(t,
		`The famous <mark class="vocabulary-highlight">mountain</mark>. It is very tall.`,
		rec.MeaningExplanation)
	require.Equal(t,
		`Both kanji use their <mark class="reading-highlight">on</mark> readings.`,
		rec.ReadingExplanation)
	require.Equal(t, []models.KanjiComposition{
		{Kanji: "富", Reading: "ふ", Meaning: "Rich", URL: "https://www.wanikani.com/kanji/富"},
		{Kanji: "士", Reading: "し", Meaning: "Samurai", URL: "https://www.wanikani.com/kanji/士"},
	}, rec.KanjiComposition)
}

func TestExtractVocabulary_WordTypeBlockIsNotAlternatives(t *testing.T) {
	doc := parseDoc(t, vocabularyPage)

	rec := ExtractVocabulary(doc, vocabularyItem())
	require.NotContains(t, rec.AlternativeMeanings, "noun")
	require.NotContains(t, rec.AlternativeMeanings, "proper noun")
}

func TestExtractVocabulary_SingleAlternativeWithoutComma(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<div class="subject-section__meanings">
			<h2 class="subject-section__meanings-title">Alternative</h2>
			<p class="subject-section__meanings-items">Sun</p>
		</div>
	</body></html>`)

	rec := ExtractVocabulary(doc, vocabularyItem())
	require.Equal(t, []string{"Sun"}, rec.AlternativeMeanings)
}

func TestExtractVocabulary_ReadingFallbackScansKana(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<h2>Reading</h2>
		<div class="subject-readings">
			<p>This description of the reading section is long English text.</p>
			<p>とても長い説明がここにありますが、これは読みではありません。</p>
			<span>やま</span>
		</div>
	</body></html>`)

	rec := ExtractVocabulary(doc, vocabularyItem())
	require.Equal(t, "やま", rec.Reading)
}

func TestExtractVocabulary_NoReadingSection(t *testing.T) {
	doc := parseDoc(t, `<html><body><h2>Meaning</h2><div>only meanings</div></body></html>`)

	rec := ExtractVocabulary(doc, vocabularyItem())
	require.Equal(t, "", rec.Reading)
}

func TestExtractVocabulary_UnclassifiedExplanationDefaultsToMeaning(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<h2>Context</h2>
		<section class="subject-section">
			<h3>Explanation</h3>
			<p class="subject-section__text">Which slot am I in.</p>
		</section>
	</body></html>`)

	rec := ExtractVocabulary(doc, vocabularyItem())
	require.Equal(t, "Which slot am I in.", rec.MeaningExplanation)
	require.Equal(t, "", rec.ReadingExplanation)
}

func TestExtractVocabulary_EmptyFieldsStayEmpty(t *testing.T) {
	doc := parseDoc(t, `<html><body><p>bare page</p></body></html>`)

	rec := ExtractVocabulary(doc, vocabularyItem())
	require.Equal(t, "", rec.PrimaryMeaning)
	require.NotNil(t, rec.AlternativeMeanings)
	require.Empty(t, rec.AlternativeMeanings)
	require.NotNil(t, rec.KanjiComposition)
	require.Empty(t, rec.KanjiComposition)
}
