package service

import (
	"go.uber.org/zap"

	"lingolearn/internal/domain"
)

// StatsService computes learning progress
type StatsService struct {
	logger *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(logger *zap.Logger) *StatsService {
	return &StatsService{logger: logger}
}

// Progress returns mastery totals of the active dictionary
func (s *StatsService) Progress(bank WordBank) (domain.Stats, error) {
	dict, err := bank.ResolveActive()
	if err != nil {
		return domain.Stats{}, err
	}
	return DictionaryStats(dict), nil
}

// Overview returns the number of dictionaries and words owned by the user
func (s *StatsService) Overview(bank WordBank) (dictionaries, words int) {
	all := bank.Dictionaries()
	for _, d := range all {
		words += len(d.Words)
	}

	s.logger.Debug("Computed overview",
		zap.Int("dictionaries", len(all)),
		zap.Int("words", words),
	)
	return len(all), words
}

// DictionaryStats sums mastery over a dictionary's words
func DictionaryStats(dict domain.Dictionary) domain.Stats {
	stats := domain.Stats{
		WordCount:          len(dict.Words),
		MaxPossibleMastery: len(dict.Words) * domain.MaxMasteryLevel,
	}
	for _, w := range dict.Words {
		stats.TotalMastery += w.MasteryLevel
	}
	return stats
}
