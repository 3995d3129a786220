package models

import "fmt"

// Subject identifies one of the three scrapable content types.
type Subject string

const (
	SubjectRadical    Subject = "radical"
	SubjectKanji      Subject = "kanji"
	SubjectVocabulary Subject = "vocabulary"
)

// ParseSubject resolves a command/config string into a Subject.
func ParseSubject(s string) (Subject, error) {
	switch s {
	case "radical", "radicals":
		return SubjectRadical, nil
	case "kanji":
		return SubjectKanji, nil
	case "vocabulary", "vocab":
		return SubjectVocabulary, nil
	}
	return "", fmt.Errorf("unknown subject %q (want radical, kanji, or vocabulary)", s)
}

func (s Subject) String() string {
	return string(s)
}

// DefaultInputFile is the conventional per-subject index file name.
func (s Subject) DefaultInputFile() string {
	switch s {
	case SubjectRadical:
		return "characters.json"
	case SubjectKanji:
		return "kanji.json"
	case SubjectVocabulary:
		return "vocabulary.json"
	}
	return ""
}

// DefaultOutputFile is the conventional per-subject results file name.
func (s Subject) DefaultOutputFile() string {
	switch s {
	case SubjectRadical:
		return "wanikani_radicals_complete.json"
	case SubjectKanji:
		return "wanikani_kanji_complete.json"
	case SubjectVocabulary:
		return "wanikani_vocabulary_complete.json"
	}
	return ""
}

// DefaultCheckpointFile is the conventional per-subject checkpoint file name.
func (s Subject) DefaultCheckpointFile() string {
	switch s {
	case SubjectRadical:
		return "radicals_scraper_checkpoint.json"
	case SubjectKanji:
		return "kanji_scraper_checkpoint.json"
	case SubjectVocabulary:
		return "vocab_scraper_checkpoint.json"
	}
	return ""
}

// LogFileName is the per-subject log file, opened in append mode so
// successive runs accumulate in one place.
func (s Subject) LogFileName() string {
	switch s {
	case SubjectRadical:
		return "radicals_scraper.log"
	case SubjectKanji:
		return "kanji_scraper.log"
	case SubjectVocabulary:
		return "vocab_scraper.log"
	}
	return "scraper.log"
}
