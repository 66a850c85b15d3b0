package handler

import (
	"errors"
	"strings"

	"lingolearn/internal/domain"
)

// userMessage maps a service error to the text shown to the user
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoActiveDictionary):
		return "📚 Select or create a dictionary first: /dicts"
	case errors.Is(err, domain.ErrDictionaryNotFound):
		return "This dictionary no longer exists."
	case errors.Is(err, domain.ErrDuplicateWord):
		return "This word is already in your list."
	case errors.Is(err, domain.ErrNotEnoughWords):
		return "You need at least 5 words in the dictionary to start a quiz."
	case errors.Is(err, domain.ErrLookupFailed):
		return "Could not fetch details for the word. Please try again."
	case errors.Is(err, domain.ErrPersistence):
		return "⚠️ Changes may not be saved."
	case errors.Is(err, domain.ErrValidation):
		return "⚠️ " + capitalize(strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": "))
	default:
		return "Something went wrong. Please try again later."
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
