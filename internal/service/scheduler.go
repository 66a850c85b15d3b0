package service

import (
	"cmp"
	"slices"

	"lingolearn/internal/domain"
)

// SelectForReview returns up to n words ordered by review priority: lowest
// mastery first, then never-reviewed words, then the oldest review.
// The input slice is not modified and equal keys keep their input order.
func SelectForReview(words []domain.Word, n int) []domain.Word {
	if n <= 0 {
		return []domain.Word{}
	}

	sorted := slices.Clone(words)
	slices.SortStableFunc(sorted, compareReviewPriority)

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func compareReviewPriority(a, b domain.Word) int {
	if c := cmp.Compare(a.MasteryLevel, b.MasteryLevel); c != 0 {
		return c
	}

	switch {
	case a.LastReviewed == nil && b.LastReviewed == nil:
		return 0
	case a.LastReviewed == nil:
		return -1
	case b.LastReviewed == nil:
		return 1
	}
	return a.LastReviewed.Compare(*b.LastReviewed)
}
