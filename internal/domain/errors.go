package domain

import "errors"

var (
	// ErrValidation is returned for bad input shape or violated constraints
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateWord is returned when a source word already exists in the dictionary
	ErrDuplicateWord = errors.New("word is already in your list")

	// ErrLookupFailed is returned when word details cannot be fetched
	ErrLookupFailed = errors.New("could not fetch details for the word, the service may be unavailable or the word is invalid")

	// ErrPersistence is returned when the blob store cannot be read or written.
	// On write the in-memory state already holds the change.
	ErrPersistence = errors.New("changes may not be saved")

	ErrNoActiveDictionary = errors.New("no active dictionary")
	ErrDictionaryNotFound = errors.New("dictionary not found")

	// ErrNotEnoughWords is returned when a quiz is requested for a dictionary
	// with fewer than QuizSessionLength words
	ErrNotEnoughWords = errors.New("not enough words to start a quiz")
)
