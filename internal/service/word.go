package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"lingolearn/internal/domain"
	"lingolearn/internal/lookup"
)

// WordService handles interactive word additions backed by the lookup service
type WordService struct {
	lookup lookup.Service
	logger *zap.Logger
}

// NewWordService creates a new word service
func NewWordService(lookup lookup.Service, logger *zap.Logger) *WordService {
	return &WordService{lookup: lookup, logger: logger}
}

// AddWord fetches details for word and adds it to the active dictionary.
// Duplicates are rejected before the lookup is made.
func (s *WordService) AddWord(ctx context.Context, bank WordBank, word string) (domain.Word, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return domain.Word{}, fmt.Errorf("%w: word cannot be empty", domain.ErrValidation)
	}

	dict, err := bank.ResolveActive()
	if err != nil {
		return domain.Word{}, err
	}
	if dict.HasSourceWord(word) {
		return domain.Word{}, fmt.Errorf("%w: %q", domain.ErrDuplicateWord, word)
	}

	details, err := s.lookup.Lookup(ctx, word, dict.SourceLanguage, dict.TargetLanguage)
	if err != nil {
		s.logger.Warn("Word lookup failed",
			zap.String("word", word),
			zap.Error(err),
		)
		if !errors.Is(err, domain.ErrLookupFailed) {
			err = fmt.Errorf("%w: %v", domain.ErrLookupFailed, err)
		}
		return domain.Word{}, err
	}
	details.SourceWord = word

	return bank.AddWord(ctx, details)
}
