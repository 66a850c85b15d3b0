package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"lingolearn/internal/domain"
)

const exampleBlockLines = 3

var blankLineSeparator = regexp.MustCompile(`\n\s*\n`)

// exampleBlockImport reads blocks of source word, translation and example sentence
type exampleBlockImport struct{}

func (exampleBlockImport) run(_ context.Context, snap importSnapshot, input string, _ ProgressFunc) (domain.BatchReport, []domain.Word, error) {
	var report domain.BatchReport
	var words []domain.Word
	added := make(map[string]struct{})

	for i, block := range splitBlocks(input) {
		lines := nonEmptyLines(block)
		if len(lines) != exampleBlockLines {
			report.Fail(fmt.Sprintf("Example %d: Must contain exactly %d non-empty lines. Found %d.", i+1, exampleBlockLines, len(lines)))
			continue
		}

		key := domain.SourceKey(lines[0])
		if _, dup := added[key]; dup || snap.has(lines[0]) {
			continue
		}
		added[key] = struct{}{}

		words = append(words, domain.Word{
			SourceWord:      lines[0],
			TranslatedWord:  lines[1],
			ExampleSentence: lines[2],
		})
		report.Successful++
	}

	return report, words, nil
}

// splitBlocks splits on one or more blank lines and drops empty blocks
func splitBlocks(input string) []string {
	input = strings.TrimSpace(strings.ReplaceAll(input, "\r\n", "\n"))
	if input == "" {
		return nil
	}

	var blocks []string
	for _, b := range blankLineSeparator.Split(input, -1) {
		if strings.TrimSpace(b) != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func nonEmptyLines(block string) []string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
