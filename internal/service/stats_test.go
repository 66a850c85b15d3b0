package service

import (
	"context"
	"testing"
	"time"

	"lingolearn/internal/domain"
	"lingolearn/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionaryStats(t *testing.T) {
	reviewed := time.Now()

	tests := []struct {
		name            string
		words           []domain.Word
		expected        domain.Stats
		expectedPercent int
		canStartQuiz    bool
	}{
		{
			name:     "empty dictionary",
			expected: domain.Stats{},
		},
		{
			name: "partial mastery",
			words: []domain.Word{
				testutil.NewReviewedWord("a", 5, reviewed),
				testutil.NewReviewedWord("b", 2, reviewed),
				testutil.NewReviewedWord("c", 0, reviewed),
			},
			expected:        domain.Stats{WordCount: 3, TotalMastery: 7, MaxPossibleMastery: 15},
			expectedPercent: 46,
		},
		{
			name:            "full mastery with enough words",
			words:           fullyMastered(5, reviewed),
			expected:        domain.Stats{WordCount: 5, TotalMastery: 25, MaxPossibleMastery: 25},
			expectedPercent: 100,
			canStartQuiz:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := DictionaryStats(testutil.NewTestDictionary("d", tt.words...))

			assert.Equal(t, tt.expected, stats)
			assert.Equal(t, tt.expectedPercent, stats.Percent())
			assert.Equal(t, tt.canStartQuiz, stats.CanStartQuiz())
		})
	}
}

func fullyMastered(n int, reviewed time.Time) []domain.Word {
	words := testutil.NewTestWords(n)
	for i := range words {
		words[i].MasteryLevel = domain.MaxMasteryLevel
		words[i].LastReviewed = &reviewed
	}
	return words
}

func TestStatsService_Progress(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	svc := NewStatsService(testutil.NewTestLogger())

	_, err := svc.Progress(store)
	assert.ErrorIs(t, err, domain.ErrNoActiveDictionary)

	_, _ = store.CreateDictionary(ctx, "A", "Polish", "English")
	word, _ := store.AddWord(ctx, domain.WordDetails{SourceWord: "kot"})
	_, _ = store.AddWord(ctx, domain.WordDetails{SourceWord: "pies"})
	require.NoError(t, store.UpdateWordMastery(ctx, word.ID, true))

	stats, err := svc.Progress(store)
	require.NoError(t, err)
	assert.Equal(t, domain.Stats{WordCount: 2, TotalMastery: 1, MaxPossibleMastery: 10}, stats)
	assert.Equal(t, 10, stats.Percent())
}

func TestStatsService_Overview(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	svc := NewStatsService(testutil.NewTestLogger())

	dicts, words := svc.Overview(store)
	assert.Zero(t, dicts)
	assert.Zero(t, words)

	_, _ = store.CreateDictionary(ctx, "A", "Polish", "English")
	_, _ = store.AddWord(ctx, domain.WordDetails{SourceWord: "kot"})
	b, _ := store.CreateDictionary(ctx, "B", "English", "Polish")
	require.NoError(t, store.SetActiveDictionary(ctx, b.ID))
	_, _ = store.AddWord(ctx, domain.WordDetails{SourceWord: "cat"})
	_, _ = store.AddWord(ctx, domain.WordDetails{SourceWord: "dog"})

	dicts, words = svc.Overview(store)
	assert.Equal(t, 2, dicts)
	assert.Equal(t, 3, words)
}
