package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"lingolearn/internal/domain"
)

const (
	colSourceWord      = "sourceword"
	colTranslatedWord  = "translatedword"
	colDefinition      = "definition"
	colExampleSentence = "examplesentence"
	colMasteryLevel    = "masterylevel"
	colLastReviewed    = "lastreviewed"
)

// csvColumns lists the header of the snapshot format in export order
var csvColumns = []string{
	"sourceWord", "translatedWord", "definition", "exampleSentence", "masteryLevel", "lastReviewed",
}

// csvImport reads the CSV snapshot format, header row first
type csvImport struct{}

func (csvImport) run(_ context.Context, snap importSnapshot, input string, _ ProgressFunc) (domain.BatchReport, []domain.Word, error) {
	var report domain.BatchReport

	r := csv.NewReader(strings.NewReader(input))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return report, nil, fmt.Errorf("%w: CSV is empty", domain.ErrValidation)
	}
	if err != nil {
		return report, nil, fmt.Errorf("%w: unreadable CSV header: %v", domain.ErrValidation, err)
	}

	columns, err := headerColumns(header)
	if err != nil {
		return report, nil, err
	}

	var words []domain.Word
	added := make(map[string]struct{})

	// the header is row 1
	for row := 2; ; row++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				report.Fail(fmt.Sprintf("Row %d: Malformed CSV (%v).", row, parseErr.Err))
				continue
			}
			return report, nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}

		if len(record) != len(header) {
			report.Fail(fmt.Sprintf("Row %d: Incorrect number of columns.", row))
			continue
		}

		word, problem := csvWord(record, columns)
		if problem != "" {
			report.Fail(fmt.Sprintf("Row %d: %s", row, problem))
			continue
		}

		key := domain.SourceKey(word.SourceWord)
		if _, dup := added[key]; dup || snap.has(word.SourceWord) {
			continue
		}
		added[key] = struct{}{}

		words = append(words, word)
		report.Successful++
	}

	return report, words, nil
}

// headerColumns maps required column names to their positions
func headerColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, ok := columns[name]; !ok {
			columns[name] = i
		}
	}

	var missing []string
	for _, name := range csvColumns {
		if _, ok := columns[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: CSV is missing required columns: %s", domain.ErrValidation, strings.Join(missing, ", "))
	}
	return columns, nil
}

// csvWord converts one record; a non-empty problem describes why the row failed
func csvWord(record []string, columns map[string]int) (word domain.Word, problem string) {
	// text fields are kept verbatim so an export reads back unchanged
	field := func(name string) string {
		return record[columns[name]]
	}

	word = domain.Word{
		SourceWord:      strings.TrimSpace(field(colSourceWord)),
		TranslatedWord:  field(colTranslatedWord),
		Definition:      field(colDefinition),
		ExampleSentence: field(colExampleSentence),
	}
	if word.SourceWord == "" {
		return domain.Word{}, "Missing sourceWord."
	}

	raw := strings.TrimSpace(field(colMasteryLevel))
	level, err := strconv.Atoi(raw)
	if err != nil || level < 0 || level > domain.MaxMasteryLevel {
		return domain.Word{}, fmt.Sprintf("Invalid masteryLevel %q, expected an integer from 0 to %d.", raw, domain.MaxMasteryLevel)
	}
	word.MasteryLevel = level

	word.LastReviewed = parseReviewed(strings.TrimSpace(field(colLastReviewed)))
	return word, ""
}

// parseReviewed accepts any recognizable date; anything else counts as never reviewed
func parseReviewed(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}
