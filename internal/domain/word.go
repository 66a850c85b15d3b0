package domain

import (
	"strings"
	"time"
)

const (
	// MaxMasteryLevel is the highest mastery a word can reach
	MaxMasteryLevel = 5
	// QuizSessionLength is the number of questions in one quiz and the
	// minimum number of words a dictionary needs before a quiz can start
	QuizSessionLength = 5
)

// Word is a single vocabulary entry owned by one dictionary
type Word struct {
	ID              string     `json:"id"`
	SourceWord      string     `json:"sourceWord"`
	TranslatedWord  string     `json:"translatedWord"`
	Definition      string     `json:"definition"`
	ExampleSentence string     `json:"exampleSentence"`
	MasteryLevel    int        `json:"masteryLevel"`
	LastReviewed    *time.Time `json:"lastReviewed"`
}

// WordDetails is the caller-supplied content of a new word
type WordDetails struct {
	SourceWord      string `json:"sourceWord" validate:"required"`
	TranslatedWord  string `json:"translatedWord"`
	Definition      string `json:"definition"`
	ExampleSentence string `json:"exampleSentence"`
}

// WordEdit holds the only fields that may change after creation
type WordEdit struct {
	TranslatedWord  string
	ExampleSentence string
}

// ClampMastery keeps a mastery level within [0, MaxMasteryLevel]
func ClampMastery(level int) int {
	if level < 0 {
		return 0
	}
	if level > MaxMasteryLevel {
		return MaxMasteryLevel
	}
	return level
}

// SameSourceWord reports whether two source words are equal ignoring case
func SameSourceWord(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// SourceKey returns the case-insensitive key used for duplicate detection
func SourceKey(sourceWord string) string {
	return strings.ToLower(strings.TrimSpace(sourceWord))
}
