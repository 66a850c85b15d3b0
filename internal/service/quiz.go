package service

import (
	"context"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"lingolearn/internal/domain"
)

// maxDistractors is the number of wrong options offered per question
const maxDistractors = 3

// QuizComposer turns selected words into multiple-choice questions
type QuizComposer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewQuizComposer creates a composer; a nil source uses a randomly seeded PCG
func NewQuizComposer(src rand.Source) *QuizComposer {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &QuizComposer{rng: rand.New(src)}
}

// Compose builds one question per candidate. Distractors are translations of
// the other words in all; a dictionary smaller than four words yields fewer options.
func (c *QuizComposer) Compose(candidates, all []domain.Word) []domain.QuizQuestion {
	c.mu.Lock()
	defer c.mu.Unlock()

	questions := make([]domain.QuizQuestion, 0, len(candidates))
	for _, word := range candidates {
		options := append([]string{word.TranslatedWord}, c.distractors(word, all)...)
		c.shuffle(options)

		questions = append(questions, domain.QuizQuestion{
			Word:          word,
			Options:       options,
			CorrectAnswer: word.TranslatedWord,
		})
	}
	return questions
}

func (c *QuizComposer) distractors(word domain.Word, all []domain.Word) []string {
	seen := map[string]struct{}{word.TranslatedWord: {}}
	pool := make([]string, 0, len(all))
	for _, other := range all {
		if other.ID == word.ID {
			continue
		}
		// identical translations would make the correct answer ambiguous
		if _, dup := seen[other.TranslatedWord]; dup {
			continue
		}
		seen[other.TranslatedWord] = struct{}{}
		pool = append(pool, other.TranslatedWord)
	}

	c.shuffle(pool)
	if len(pool) > maxDistractors {
		pool = pool[:maxDistractors]
	}
	return pool
}

func (c *QuizComposer) shuffle(s []string) {
	c.rng.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

// QuizPhase is the state of a quiz session
type QuizPhase int

const (
	PhasePresenting QuizPhase = iota
	PhaseReveal
	PhaseFinished
)

// MasteryRecorder receives the outcome of each answered question
type MasteryRecorder interface {
	UpdateWordMastery(ctx context.Context, wordID string, isCorrect bool) error
}

// AnswerResult describes the reveal of one answered question
type AnswerResult struct {
	// Accepted is false when the question was already answered
	Accepted      bool
	Correct       bool
	Selected      string
	CorrectAnswer string
}

// QuizSession walks a fixed list of questions forward only:
// Presenting(i) -> Reveal(i) -> Presenting(i+1) ... -> Finished.
type QuizSession struct {
	mu        sync.Mutex
	questions []domain.QuizQuestion
	recorder  MasteryRecorder

	index   int
	phase   QuizPhase
	correct int
}

// NewQuizSession starts presenting the first question
func NewQuizSession(questions []domain.QuizQuestion, recorder MasteryRecorder) *QuizSession {
	s := &QuizSession{questions: questions, recorder: recorder}
	if len(questions) == 0 {
		s.phase = PhaseFinished
	}
	return s
}

// Current returns the question being presented or revealed and its index
func (s *QuizSession) Current() (domain.QuizQuestion, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseFinished {
		return domain.QuizQuestion{}, s.index, false
	}
	return s.questions[s.index], s.index, true
}

// Answer accepts the first answer to the current question and records mastery.
// Answers outside the presenting phase are ignored.
func (s *QuizSession) Answer(ctx context.Context, option string) (AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhasePresenting {
		return AnswerResult{}, nil
	}

	q := s.questions[s.index]
	result := AnswerResult{
		Accepted:      true,
		Correct:       option == q.CorrectAnswer,
		Selected:      option,
		CorrectAnswer: q.CorrectAnswer,
	}
	if result.Correct {
		s.correct++
	}
	s.phase = PhaseReveal

	return result, s.recorder.UpdateWordMastery(ctx, q.Word.ID, result.Correct)
}

// Next leaves the reveal phase and returns the new phase
func (s *QuizSession) Next() QuizPhase {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseReveal {
		return s.phase
	}
	if s.index+1 >= len(s.questions) {
		s.phase = PhaseFinished
		return s.phase
	}
	s.index++
	s.phase = PhasePresenting
	return s.phase
}

// Phase returns the current phase
func (s *QuizSession) Phase() QuizPhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Score returns correct answers so far and the number of questions
func (s *QuizSession) Score() (correct, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.correct, len(s.questions)
}

// QuizService starts quizzes over the active dictionary
type QuizService struct {
	composer *QuizComposer
	logger   *zap.Logger
}

// NewQuizService creates a new quiz service
func NewQuizService(composer *QuizComposer, logger *zap.Logger) *QuizService {
	return &QuizService{composer: composer, logger: logger}
}

// Start selects the weakest words of the active dictionary and composes a session
func (s *QuizService) Start(bank WordBank) (*QuizSession, error) {
	dict, err := bank.ResolveActive()
	if err != nil {
		return nil, err
	}
	if len(dict.Words) < domain.QuizSessionLength {
		return nil, domain.ErrNotEnoughWords
	}

	candidates := SelectForReview(dict.Words, domain.QuizSessionLength)
	questions := s.composer.Compose(candidates, dict.Words)

	s.logger.Info("Quiz started",
		zap.String("dictionary_id", dict.ID),
		zap.Int("questions", len(questions)),
	)
	return NewQuizSession(questions, bank), nil
}
