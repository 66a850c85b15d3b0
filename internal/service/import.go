package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"lingolearn/internal/domain"
	"lingolearn/internal/lookup"
)

// ImportMode selects the input format of a bulk import
type ImportMode string

const (
	// ModeLookup imports newline-separated words through the lookup service
	ModeLookup ImportMode = "words"
	// ModeExamples imports 3-line blocks: source word, translation, example sentence
	ModeExamples ImportMode = "examples"
	// ModeCSV imports the CSV snapshot produced by ExportCSV
	ModeCSV ImportMode = "csv"
)

// ProgressFunc is notified synchronously before each lookup
type ProgressFunc func(domain.Progress)

// importSnapshot is the active dictionary as of pipeline start
type importSnapshot struct {
	dictionary domain.Dictionary
	existing   map[string]struct{}
}

func (s importSnapshot) has(sourceWord string) bool {
	_, ok := s.existing[domain.SourceKey(sourceWord)]
	return ok
}

// importStrategy parses one input format into new words
type importStrategy interface {
	run(ctx context.Context, snap importSnapshot, input string, progress ProgressFunc) (domain.BatchReport, []domain.Word, error)
}

// ImportService dispatches bulk imports to the strategy of the requested mode
type ImportService struct {
	strategies map[ImportMode]importStrategy
	logger     *zap.Logger
}

// NewImportService creates an import service with all three modes
func NewImportService(lookup lookup.Service, logger *zap.Logger) *ImportService {
	return &ImportService{
		strategies: map[ImportMode]importStrategy{
			ModeLookup:   lookupImport{lookup: lookup},
			ModeExamples: exampleBlockImport{},
			ModeCSV:      csvImport{},
		},
		logger: logger,
	}
}

// Import parses input in the given mode and prepends the resulting words to the
// dictionary that was active when the import started, in one persisted write.
// Per-item failures are collected in the report; a returned error means the
// import as a whole failed.
func (s *ImportService) Import(ctx context.Context, bank WordBank, mode ImportMode, input string, progress ProgressFunc) (domain.BatchReport, error) {
	strategy, ok := s.strategies[mode]
	if !ok {
		return domain.BatchReport{}, fmt.Errorf("%w: unknown import mode %q", domain.ErrValidation, mode)
	}

	dict, err := bank.ResolveActive()
	if err != nil {
		return domain.BatchReport{}, err
	}
	snap := importSnapshot{dictionary: dict, existing: dict.SourceKeys()}

	report, words, err := strategy.run(ctx, snap, input, progress)
	if err != nil {
		s.logger.Warn("Import aborted",
			zap.String("mode", string(mode)),
			zap.String("dictionary_id", dict.ID),
			zap.Error(err),
		)
		return report, err
	}

	if len(words) > 0 {
		dropped, err := bank.PrependWords(ctx, dict.ID, words)
		report.Successful -= len(dropped)
		if len(dropped) > 0 {
			s.logger.Info("Skipped words added during import", zap.Int("count", len(dropped)))
		}
		if err != nil {
			return report, err
		}
	}

	s.logger.Info("Import completed",
		zap.String("mode", string(mode)),
		zap.String("dictionary_id", dict.ID),
		zap.Int("successful", report.Successful),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}
