package service

import (
	"strconv"
	"strings"

	"lingolearn/internal/domain"
)

// ExportCSV renders words in the snapshot format accepted by ModeCSV.
// String fields are always quoted; mastery is a bare integer.
func ExportCSV(words []domain.Word) string {
	var b strings.Builder
	b.WriteString(strings.Join(csvColumns, ","))
	b.WriteByte('\n')

	for _, w := range words {
		lastReviewed := ""
		if w.LastReviewed != nil {
			lastReviewed = quoteCSV(domain.FormatTimestamp(*w.LastReviewed))
		}

		b.WriteString(strings.Join([]string{
			quoteCSV(w.SourceWord),
			quoteCSV(w.TranslatedWord),
			quoteCSV(w.Definition),
			quoteCSV(w.ExampleSentence),
			strconv.Itoa(w.MasteryLevel),
			lastReviewed,
		}, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
