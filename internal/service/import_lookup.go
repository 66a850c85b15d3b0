package service

import (
	"context"
	"fmt"
	"strings"

	"lingolearn/internal/domain"
	"lingolearn/internal/lookup"
)

// lookupImport fetches details for each listed word, one request at a time
type lookupImport struct {
	lookup lookup.Service
}

func (m lookupImport) run(ctx context.Context, snap importSnapshot, input string, progress ProgressFunc) (domain.BatchReport, []domain.Word, error) {
	var report domain.BatchReport
	var words []domain.Word

	dict := snap.dictionary

	// words already in the dictionary are skipped before counting progress
	var pending []string
	for _, word := range uniqueWords(input) {
		if !snap.has(word) {
			pending = append(pending, word)
		}
	}

	for i, word := range pending {
		if err := ctx.Err(); err != nil {
			return report, nil, err
		}

		if progress != nil {
			progress(domain.Progress{Current: i + 1, Total: len(pending), Word: word})
		}

		details, err := m.lookup.Lookup(ctx, word, dict.SourceLanguage, dict.TargetLanguage)
		if err != nil {
			report.Fail(fmt.Sprintf("%q: %v", word, err))
			continue
		}

		words = append(words, domain.Word{
			SourceWord:      word,
			TranslatedWord:  details.TranslatedWord,
			Definition:      details.Definition,
			ExampleSentence: details.ExampleSentence,
		})
		report.Successful++
	}

	return report, words, nil
}

// uniqueWords trims, lowercases and deduplicates lines keeping first occurrence order
func uniqueWords(input string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, line := range strings.Split(input, "\n") {
		word := strings.ToLower(strings.TrimSpace(line))
		if word == "" {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}
	return out
}
