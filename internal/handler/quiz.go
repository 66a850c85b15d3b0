package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"lingolearn/internal/domain"
	"lingolearn/internal/middleware"
	"lingolearn/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const prefixQuizAnswer = "ans_"

// handleQuiz starts a new quiz over the active dictionary
func (h *Handler) handleQuiz(c tele.Context) error {
	userID := c.Sender().ID

	session, err := h.quizService.Start(middleware.Store(c))
	if err != nil {
		return h.reply(c, userMessage(err), mainMenuMarkup())
	}

	h.quizMux.Lock()
	h.quizzes[userID] = session
	h.quizMux.Unlock()

	h.ResetState(userID)
	return h.showQuestion(c, session)
}

func (h *Handler) quizFor(userID int64) *service.QuizSession {
	h.quizMux.Lock()
	defer h.quizMux.Unlock()
	return h.quizzes[userID]
}

// dropQuiz discards a running quiz; its questions may reference another dictionary
func (h *Handler) dropQuiz(userID int64) {
	h.quizMux.Lock()
	defer h.quizMux.Unlock()
	delete(h.quizzes, userID)
}

func (h *Handler) showQuestion(c tele.Context, session *service.QuizSession) error {
	q, idx, ok := session.Current()
	if !ok {
		return h.finishQuiz(c, session)
	}
	_, total := session.Score()

	markup := &tele.ReplyMarkup{}
	rows := make([]tele.Row, 0, len(q.Options)+1)
	for i, option := range q.Options {
		rows = append(rows, markup.Row(markup.Data(option, answerData(idx, i))))
	}
	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)

	return h.reply(c, formatQuestion(q, idx, total), markup)
}

func formatQuestion(q domain.QuizQuestion, idx, total int) string {
	return fmt.Sprintf("🎯 Question %d/%d\n\nWhat is the translation of\n\n%s", idx+1, total, q.Word.SourceWord)
}

// answerData encodes the question index with the option so a stale button can be told apart
func answerData(question, option int) string {
	return fmt.Sprintf("%s%d_%d", prefixQuizAnswer, question, option)
}

// parseAnswerData reads the "<question>_<option>" payload of an answer button
func parseAnswerData(payload string) (question, option int, ok bool) {
	q, o, found := strings.Cut(payload, "_")
	if !found {
		return 0, 0, false
	}
	question, qErr := strconv.Atoi(q)
	option, oErr := strconv.Atoi(o)
	if qErr != nil || oErr != nil || question < 0 || option < 0 {
		return 0, 0, false
	}
	return question, option, true
}

// handleQuizAnswer records the option picked for the current question
func (h *Handler) handleQuizAnswer(c tele.Context, payload string) error {
	userID := c.Sender().ID

	session := h.quizFor(userID)
	if session == nil {
		return c.Respond(&tele.CallbackResponse{Text: "This quiz has ended. Start a new one with /quiz"})
	}

	questionIdx, optionIdx, valid := parseAnswerData(payload)
	q, idx, ok := session.Current()
	if !valid || !ok || optionIdx >= len(q.Options) {
		return c.Respond()
	}
	if questionIdx != idx {
		return c.Respond(&tele.CallbackResponse{Text: "This question is no longer active"})
	}

	result, err := session.Answer(context.Background(), q.Options[optionIdx])
	if !result.Accepted {
		// already answered, e.g. a double tap
		return c.Respond()
	}
	if err != nil {
		h.logger.Error("Failed to record answer",
			zap.Int64("user_id", userID),
			zap.String("word_id", q.Word.ID),
			zap.Error(err),
		)
	}

	_, total := session.Score()
	text := formatReveal(q, idx, total, result)
	if err != nil {
		text += "\n\n" + userMessage(err)
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnQuizNext), markup.Row(btnMainMenu))
	return h.reply(c, text, markup)
}

func formatReveal(q domain.QuizQuestion, idx, total int, result service.AnswerResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎯 Question %d/%d: %s\n\n", idx+1, total, q.Word.SourceWord)
	if result.Correct {
		fmt.Fprintf(&b, "✅ Correct! %s", result.CorrectAnswer)
	} else {
		fmt.Fprintf(&b, "❌ %s is wrong. Correct answer: %s", result.Selected, result.CorrectAnswer)
	}
	if q.Word.ExampleSentence != "" {
		fmt.Fprintf(&b, "\n\n💬 %s", q.Word.ExampleSentence)
	}
	return b.String()
}

// handleQuizNext moves to the next question or shows the score
func (h *Handler) handleQuizNext(c tele.Context) error {
	session := h.quizFor(c.Sender().ID)
	if session == nil {
		return c.Respond(&tele.CallbackResponse{Text: "This quiz has ended. Start a new one with /quiz"})
	}

	if session.Next() == service.PhaseFinished {
		return h.finishQuiz(c, session)
	}
	return h.showQuestion(c, session)
}

func (h *Handler) finishQuiz(c tele.Context, session *service.QuizSession) error {
	userID := c.Sender().ID
	h.dropQuiz(userID)

	correct, total := session.Score()
	h.logger.Info("Quiz finished",
		zap.Int64("user_id", userID),
		zap.Int("correct", correct),
		zap.Int("total", total),
	)

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnQuiz), markup.Row(btnMainMenu))
	return h.reply(c, fmt.Sprintf("🏁 Quiz finished! Score: %d/%d", correct, total), markup)
}
