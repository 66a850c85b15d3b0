package domain

// QuizQuestion asks for the translation of Word among Options
type QuizQuestion struct {
	Word          Word
	Options       []string
	CorrectAnswer string
}

// Stats describes learning progress for one dictionary
type Stats struct {
	WordCount          int
	TotalMastery       int
	MaxPossibleMastery int
}

// Percent returns the mastery ratio in [0, 100]
func (s Stats) Percent() int {
	if s.MaxPossibleMastery == 0 {
		return 0
	}
	return s.TotalMastery * 100 / s.MaxPossibleMastery
}

// CanStartQuiz reports whether the dictionary has enough words for a quiz
func (s Stats) CanStartQuiz() bool {
	return s.WordCount >= QuizSessionLength
}
