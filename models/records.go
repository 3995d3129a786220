package models

// RadicalRecord is the output shape for one radical. Mnemonic keeps its
// inline emphasis markup; MnemonicImage is the source URL verbatim or empty.
type RadicalRecord struct {
	Character     string `json:"character"`
	URL           string `json:"url"`
	Meaning       string `json:"meaning"`
	Mnemonic      string `json:"mnemonic"`
	MnemonicImage string `json:"mnemonic_image"`
	Type          string `json:"type"`
}

// Readings groups the three kanji reading categories. A category with no
// readings on the page is an empty list, never null.
type Readings struct {
	Onyomi  []string `json:"on'yomi"`
	Kunyomi []string `json:"kun'yomi"`
	Nanori  []string `json:"nanori"`
}

// KanjiMnemonics holds the meaning and reading mnemonic blocks with their
// markup preserved; either may be empty.
type KanjiMnemonics struct {
	Meaning string `json:"meaning"`
	Reading string `json:"reading"`
}

// KanjiRecord is the output shape for one kanji.
type KanjiRecord struct {
	Character          string         `json:"character"`
	URL                string         `json:"url"`
	Meaning            string         `json:"meaning"`
	Readings           Readings       `json:"readings"`
	RadicalCombination []string       `json:"radical_combination"`
	Mnemonics          KanjiMnemonics `json:"mnemonics"`
}

// KanjiComposition is one kanji the vocabulary word is built from.
type KanjiComposition struct {
	Kanji   string `json:"kanji"`
	Reading string `json:"reading"`
	Meaning string `json:"meaning"`
	URL     string `json:"url"`
}

// VocabularyRecord is the output shape for one vocabulary word.
type VocabularyRecord struct {
	Character           string             `json:"character"`
	URL                 string             `json:"url"`
	Meaning             string             `json:"meaning"`
	PrimaryMeaning      string             `json:"primary_meaning"`
	AlternativeMeanings []string           `json:"alternative_meanings"`
	Reading             string             `json:"reading"`
	MeaningExplanation  string             `json:"meaning_explanation"`
	ReadingExplanation  string             `json:"reading_explanation"`
	KanjiComposition    []KanjiComposition `json:"kanji_composition"`
	Type                string             `json:"type"`
}
