package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal string",
			input:    "test_data",
			expected: "test_data",
		},
		{
			name:     "string with whitespace",
			input:    "  test_data  ",
			expected: "test_data",
		},
		{
			name:     "string with newline",
			input:    "test\ndata",
			expected: "testdata",
		},
		{
			name:     "string with tab",
			input:    "test\tdata",
			expected: "testdata",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: "",
		},
		{
			name:     "string with unprintable characters",
			input:    "test\x00data\x01",
			expected: "testdata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanCallbackData(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestMatchCallback(t *testing.T) {
	tests := []struct {
		name            string
		data            string
		expectedPrefix  string
		expectedPayload string
		expectedOK      bool
	}{
		{name: "select dictionary", data: "dict_0b7c", expectedPrefix: prefixSelectDictionary, expectedPayload: "0b7c", expectedOK: true},
		{name: "delete dictionary", data: "deldict_0b7c", expectedPrefix: prefixDeleteDictionary, expectedPayload: "0b7c", expectedOK: true},
		{name: "delete word", data: "delword_w1", expectedPrefix: prefixDeleteWord, expectedPayload: "w1", expectedOK: true},
		{name: "edit word", data: "editword_w1", expectedPrefix: prefixEditWord, expectedPayload: "w1", expectedOK: true},
		{name: "quiz answer", data: "ans_0_2", expectedPrefix: prefixQuizAnswer, expectedPayload: "0_2", expectedOK: true},
		{name: "words page", data: "page_3", expectedPrefix: prefixWordsPage, expectedPayload: "3", expectedOK: true},
		{name: "prefix without payload", data: "dict_"},
		{name: "unknown", data: "day_2024-01-01"},
		{name: "empty", data: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, payload, ok := matchCallback(cleanCallbackData("\f" + tt.data))

			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expectedPrefix, route.prefix)
			assert.Equal(t, tt.expectedPayload, payload)
		})
	}
}
