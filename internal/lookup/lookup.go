// Package lookup defines the remote word-detail collaborator.
package lookup

import (
	"context"

	"lingolearn/internal/domain"
)

// Service fetches translation, definition and example sentence for a word.
// Failures wrap domain.ErrLookupFailed.
type Service interface {
	Lookup(ctx context.Context, word, sourceLanguage, targetLanguage string) (domain.WordDetails, error)
}
