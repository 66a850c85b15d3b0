package handler

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"lingolearn/internal/domain"
	"lingolearn/internal/service"
	"lingolearn/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDictionaryInput(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		expectedOK bool
		expected   [3]string
	}{
		{name: "valid", input: "Travel; English; Polish", expectedOK: true, expected: [3]string{"Travel", "English", "Polish"}},
		{name: "no spaces", input: "A;Norwegian;English", expectedOK: true, expected: [3]string{"A", "Norwegian", "English"}},
		{name: "empty parts are left to validation", input: ";;", expectedOK: true},
		{name: "too few parts", input: "Travel; English"},
		{name: "too many parts", input: "a;b;c;d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, source, target, ok := parseDictionaryInput(tt.input)

			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expected, [3]string{name, source, target})
		})
	}
}

func TestParseWordEdit(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		expected   domain.WordEdit
		expectedOK bool
	}{
		{name: "both parts", input: "cat; The cat sleeps.", expected: domain.WordEdit{TranslatedWord: "cat", ExampleSentence: "The cat sleeps."}, expectedOK: true},
		{name: "splits on first semicolon", input: " cat ;  One; two ", expected: domain.WordEdit{TranslatedWord: "cat", ExampleSentence: "One; two"}, expectedOK: true},
		{name: "empty example", input: "cat;", expected: domain.WordEdit{TranslatedWord: "cat"}, expectedOK: true},
		{name: "no separator", input: "cat"},
		{name: "empty translation", input: " ; example"},
		{name: "empty", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edit, ok := parseWordEdit(tt.input)

			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expected, edit)
		})
	}
}

func TestParseAnswerData(t *testing.T) {
	tests := []struct {
		name             string
		payload          string
		expectedQuestion int
		expectedOption   int
		expectedOK       bool
	}{
		{name: "valid", payload: "3_1", expectedQuestion: 3, expectedOption: 1, expectedOK: true},
		{name: "round trip", payload: strings.TrimPrefix(answerData(4, 2), prefixQuizAnswer), expectedQuestion: 4, expectedOption: 2, expectedOK: true},
		{name: "option only", payload: "2"},
		{name: "not a number", payload: "a_1"},
		{name: "negative", payload: "-1_0"},
		{name: "extra part", payload: "1_2_3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			question, option, ok := parseAnswerData(tt.payload)

			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expectedQuestion, question)
			assert.Equal(t, tt.expectedOption, option)
		})
	}
}

func TestPaginate(t *testing.T) {
	words := testutil.NewTestWords(23)

	tests := []struct {
		name          string
		page          int
		expectedLen   int
		expectedFirst string
	}{
		{name: "first page", page: 1, expectedLen: 10, expectedFirst: "w0"},
		{name: "middle page", page: 2, expectedLen: 10, expectedFirst: "w10"},
		{name: "last page", page: 3, expectedLen: 3, expectedFirst: "w20"},
		{name: "past the end", page: 4},
		{name: "zero page", page: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, totalPages := paginate(words, tt.page, 10)

			assert.Equal(t, 3, totalPages)
			assert.Len(t, got, tt.expectedLen)
			if tt.expectedLen > 0 {
				assert.Equal(t, tt.expectedFirst, got[0].ID)
			}
		})
	}

	got, totalPages := paginate(nil, 1, 10)
	assert.Empty(t, got)
	assert.Zero(t, totalPages)
}

func TestFormatWordList(t *testing.T) {
	now := time.Date(2024, 6, 20, 18, 0, 0, 0, time.UTC)
	reviewed := now.Add(-time.Hour)
	words := []domain.Word{
		testutil.NewReviewedWord("a", 3, reviewed),
		testutil.NewTestWord("b", "dom", "house"),
	}
	dict := testutil.NewTestDictionary("d", words...)

	text := formatWordList(dict, words, 1, 1, now)

	assert.Contains(t, text, "Dictionary d (2 words), page 1/1")
	assert.Contains(t, text, "word-a — translation-a\n●●●○○ 3/5 · reviewed today")
	assert.Contains(t, text, "dom — house\n○○○○○ 0/5 · reviewed never")
	assert.False(t, strings.HasSuffix(text, "\n"))

	empty := formatWordList(testutil.NewTestDictionary("e"), nil, 1, 0, now)
	assert.Contains(t, empty, "is empty")
}

func TestMasteryBar(t *testing.T) {
	assert.Equal(t, "○○○○○", masteryBar(0))
	assert.Equal(t, "●●○○○", masteryBar(2))
	assert.Equal(t, "●●●●●", masteryBar(5))
	assert.Equal(t, "●●●●●", masteryBar(9))
	assert.Equal(t, "○○○○○", masteryBar(-1))
}

func TestFormatReport(t *testing.T) {
	t.Run("no errors", func(t *testing.T) {
		text := formatReport(domain.BatchReport{Successful: 2})
		assert.Equal(t, "📥 Import finished\n\n✅ Added: 2\n❌ Failed: 0", text)
	})

	t.Run("errors are listed", func(t *testing.T) {
		var report domain.BatchReport
		report.Fail("Example 1: Must contain exactly 3 non-empty lines. Found 2.")

		text := formatReport(report)
		assert.Contains(t, text, "❌ Failed: 1")
		assert.Contains(t, text, "• Example 1: Must contain exactly 3 non-empty lines. Found 2.")
	})

	t.Run("long error lists are truncated", func(t *testing.T) {
		var report domain.BatchReport
		for i := 0; i < maxReportErrors+4; i++ {
			report.Fail(fmt.Sprintf("Row %d: Missing sourceWord.", i+2))
		}

		text := formatReport(report)
		assert.Equal(t, maxReportErrors, strings.Count(text, "• "))
		assert.Contains(t, text, "...and 4 more")
	})
}

func TestFormatProgress(t *testing.T) {
	assert.Equal(t, "⏳ Looking up 2 of 5: cat", formatProgress(domain.Progress{Current: 2, Total: 5, Word: "cat"}))
}

func TestFormatStats(t *testing.T) {
	ready := formatStats(domain.Stats{WordCount: 6, TotalMastery: 15, MaxPossibleMastery: 30}, 2, 9)
	assert.Contains(t, ready, "Mastery: 15 / 30 (50%)")
	assert.Contains(t, ready, "Ready for a quiz")
	assert.Contains(t, ready, "All dictionaries: 2, 9 words in total")

	notReady := formatStats(domain.Stats{WordCount: 3, MaxPossibleMastery: 15}, 1, 3)
	assert.Contains(t, notReady, "Add 2 more words")
}

func TestMenuText(t *testing.T) {
	dicts := []domain.Dictionary{testutil.NewTestDictionary("d1", testutil.NewTestWords(2)...)}

	assert.Contains(t, menuText(dicts, "d1"), "Active dictionary: Dictionary d1 (Polish → English, 2 words)")
	assert.Contains(t, menuText(dicts, ""), "No active dictionary yet")
	assert.Contains(t, menuText(nil, ""), "/quiz")
}

func TestFormatReveal(t *testing.T) {
	q := domain.QuizQuestion{
		Word:          testutil.NewTestWord("w1", "kot", "cat"),
		Options:       []string{"dog", "cat"},
		CorrectAnswer: "cat",
	}

	correct := formatReveal(q, 0, 5, service.AnswerResult{Accepted: true, Correct: true, Selected: "cat", CorrectAnswer: "cat"})
	assert.Contains(t, correct, "Question 1/5: kot")
	assert.Contains(t, correct, "✅ Correct! cat")
	assert.Contains(t, correct, "An example with kot.")

	wrong := formatReveal(q, 4, 5, service.AnswerResult{Accepted: true, Selected: "dog", CorrectAnswer: "cat"})
	assert.Contains(t, wrong, "❌ dog is wrong. Correct answer: cat")
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "no active dictionary", err: domain.ErrNoActiveDictionary, expected: "/dicts"},
		{name: "duplicate", err: fmt.Errorf("%w: %q", domain.ErrDuplicateWord, "cat"), expected: "already in your list"},
		{name: "not enough words", err: domain.ErrNotEnoughWords, expected: "at least 5 words"},
		{name: "lookup", err: fmt.Errorf("%w: timeout", domain.ErrLookupFailed), expected: "Could not fetch details"},
		{name: "persistence", err: fmt.Errorf("%w: disk full", domain.ErrPersistence), expected: "Changes may not be saved"},
		{
			name:     "validation detail",
			err:      fmt.Errorf("%w: source and target languages must be different", domain.ErrValidation),
			expected: "⚠️ Source and target languages must be different",
		},
		{name: "unknown", err: errors.New("boom"), expected: "Something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, userMessage(tt.err), tt.expected)
		})
	}
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "Travel_words.csv", exportFileName("Travel words"))
	assert.Equal(t, "Słówka.csv", exportFileName("Słówka"))
	assert.Equal(t, "ab.csv", exportFileName("a/b"))
	assert.Equal(t, "dictionary.csv", exportFileName("  "))
}

func TestModeForState(t *testing.T) {
	require.Len(t, modeForState, 3)
	assert.Equal(t, service.ModeLookup, modeForState[domain.StateWaitingWordList])
	assert.Equal(t, service.ModeExamples, modeForState[domain.StateWaitingExamples])
	assert.Equal(t, service.ModeCSV, modeForState[domain.StateWaitingCSV])
	for state := range modeForState {
		assert.NotEmpty(t, importInstructions[state])
	}
}
