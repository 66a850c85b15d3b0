package handler

import (
	"context"
	"fmt"
	"strings"

	"lingolearn/internal/domain"
	"lingolearn/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const helpText = `Commands:
/dicts - your dictionaries
/newdict - create a dictionary
/add - add a word
/words - words of the active dictionary
/quiz - practice the weakest words
/import_words - import a word list
/import_examples - import word, translation and example blocks
/import_csv - import a CSV export
/export - download the active dictionary as CSV
/stats - learning progress
/reset - delete all data`

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	h.ResetState(userID)
	store := middleware.Store(c)
	return h.reply(c, menuText(store.Dictionaries(), store.ActiveID()), mainMenuMarkup())
}

// menuText greets the user and names the active dictionary
func menuText(dicts []domain.Dictionary, activeID string) string {
	var b strings.Builder
	b.WriteString("🏠 Main menu\n\n")

	active := ""
	for _, d := range dicts {
		if d.ID == activeID {
			active = fmt.Sprintf("%s (%s → %s, %d words)", d.Name, d.SourceLanguage, d.TargetLanguage, len(d.Words))
		}
	}
	if active == "" {
		b.WriteString("No active dictionary yet. Create one with /newdict.\n\n")
	} else {
		b.WriteString("Active dictionary: " + active + "\n\n")
	}

	b.WriteString(helpText)
	return b.String()
}

// handleStats shows the progress of the active dictionary
func (h *Handler) handleStats(c tele.Context) error {
	store := middleware.Store(c)

	stats, err := h.statsService.Progress(store)
	if err != nil {
		return h.reply(c, userMessage(err), mainMenuMarkup())
	}
	dicts, words := h.statsService.Overview(store)

	return h.reply(c, formatStats(stats, dicts, words), mainMenuMarkup())
}

func formatStats(stats domain.Stats, dicts, words int) string {
	var b strings.Builder
	b.WriteString("📊 Progress\n\n")
	fmt.Fprintf(&b, "Words: %d\n", stats.WordCount)
	fmt.Fprintf(&b, "Mastery: %d / %d (%d%%)\n", stats.TotalMastery, stats.MaxPossibleMastery, stats.Percent())
	if stats.CanStartQuiz() {
		b.WriteString("Ready for a quiz: /quiz\n")
	} else {
		fmt.Fprintf(&b, "Add %d more words to unlock the quiz\n", domain.QuizSessionLength-stats.WordCount)
	}
	fmt.Fprintf(&b, "\nAll dictionaries: %d, %d words in total", dicts, words)
	return b.String()
}

// handleReset asks for confirmation before wiping all data
func (h *Handler) handleReset(c tele.Context) error {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnResetConfirm), markup.Row(btnCancel))
	return c.Send("⚠️ This deletes all dictionaries and words. Continue?", markup)
}

func (h *Handler) handleResetConfirm(c tele.Context) error {
	userID := c.Sender().ID
	h.dropQuiz(userID)
	h.ResetState(userID)

	if err := middleware.Store(c).DeleteAllData(context.Background()); err != nil {
		h.logger.Error("Failed to delete all data", zap.Int64("user_id", userID), zap.Error(err))
		return h.reply(c, userMessage(err), mainMenuMarkup())
	}

	h.logger.Info("User data deleted", zap.Int64("user_id", userID))
	return h.reply(c, "🗑 All data deleted.", mainMenuMarkup())
}

// handleCancel cancels current operation and resets state
func (h *Handler) handleCancel(c tele.Context) error {
	h.ResetState(c.Sender().ID)
	return h.handleStart(c)
}
