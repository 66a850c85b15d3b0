package testutil

import (
	"fmt"
	"time"

	"lingolearn/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestWord creates a test word with mastery 0 that was never reviewed
func NewTestWord(id, sourceWord, translatedWord string) domain.Word {
	return domain.Word{
		ID:              id,
		SourceWord:      sourceWord,
		TranslatedWord:  translatedWord,
		Definition:      "definition of " + sourceWord,
		ExampleSentence: "An example with " + sourceWord + ".",
	}
}

// NewReviewedWord creates a test word with the given mastery and review time
func NewReviewedWord(id string, mastery int, reviewed time.Time) domain.Word {
	w := NewTestWord(id, "word-"+id, "translation-"+id)
	w.MasteryLevel = mastery
	w.LastReviewed = &reviewed
	return w
}

// NewTestWords creates n words with distinct source words and translations
func NewTestWords(n int) []domain.Word {
	words := make([]domain.Word, n)
	for i := range words {
		words[i] = NewTestWord(fmt.Sprintf("w%d", i), fmt.Sprintf("word%d", i), fmt.Sprintf("slowo%d", i))
	}
	return words
}

// NewTestDictionary creates a Polish→English dictionary holding words
func NewTestDictionary(id string, words ...domain.Word) domain.Dictionary {
	if words == nil {
		words = []domain.Word{}
	}
	return domain.Dictionary{
		ID:             id,
		Name:           "Dictionary " + id,
		SourceLanguage: "Polish",
		TargetLanguage: "English",
		Words:          words,
	}
}
