package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lingolearn/internal/domain"
	"lingolearn/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	wordsPageSize    = 10
	prefixWordsPage  = "page_"
	prefixDeleteWord = "delword_"
	prefixEditWord   = "editword_"
	lookupTimeout    = 30 * time.Second
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	state := h.GetState(userID)

	switch state.State {
	case domain.StateWaitingDictInput:
		return h.createDictionary(c, text)
	case domain.StateWaitingWordEdit:
		return h.updateWord(c, state.WordID, text)
	case domain.StateWaitingWordList, domain.StateWaitingExamples, domain.StateWaitingCSV:
		return h.runImport(c, modeForState[state.State], c.Text())
	default:
		// Idle and waiting-for-word both add the text as a new word
		return h.addWord(c, text)
	}
}

// handleAddWord asks for a word to look up
func (h *Handler) handleAddWord(c tele.Context) error {
	if _, err := middleware.Store(c).ResolveActive(); err != nil {
		return c.Send(userMessage(err))
	}
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingNewWord})
	return c.Send("Send a word to add", cancelMarkup())
}

func (h *Handler) addWord(c tele.Context, text string) error {
	userID := c.Sender().ID

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	_ = c.Notify(tele.Typing)
	word, err := h.wordService.AddWord(ctx, middleware.Store(c), text)
	if err != nil && word.ID == "" {
		h.logger.Info("Word not added",
			zap.Int64("user_id", userID),
			zap.String("word", text),
			zap.Error(err),
		)
		return c.Send(userMessage(err))
	}

	h.logger.Info("Word added",
		zap.Int64("user_id", userID),
		zap.String("word", word.SourceWord),
	)

	status := "✅ Saved! Send the next word or go back to /start"
	if err != nil {
		// added in memory, the write failed
		status = userMessage(err)
	}

	// Stay in word input mode for the next word
	h.SetState(userID, &domain.StateData{State: domain.StateWaitingNewWord})
	return c.Send(formatWord(word)+"\n\n"+status, cancelMarkup())
}

func formatWord(w domain.Word) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📝 %s — %s", w.SourceWord, w.TranslatedWord)
	if w.Definition != "" {
		fmt.Fprintf(&b, "\n📖 %s", w.Definition)
	}
	if w.ExampleSentence != "" {
		fmt.Fprintf(&b, "\n💬 %s", w.ExampleSentence)
	}
	return b.String()
}

// handleWords shows the first page of the active dictionary
func (h *Handler) handleWords(c tele.Context) error {
	return h.showWordsPage(c, 1)
}

// handlePagination handles page navigation
func (h *Handler) handlePagination(c tele.Context, pageStr string) error {
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
	}
	return h.showWordsPage(c, page)
}

func (h *Handler) showWordsPage(c tele.Context, page int) error {
	dict, err := middleware.Store(c).ResolveActive()
	if err != nil {
		return h.reply(c, userMessage(err), mainMenuMarkup())
	}

	words, totalPages := paginate(dict.Words, page, wordsPageSize)
	if totalPages > 0 && page > totalPages {
		page = totalPages
		words, _ = paginate(dict.Words, page, wordsPageSize)
	}

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	for _, w := range words {
		rows = append(rows, markup.Row(
			markup.Data("✏️ "+w.SourceWord, prefixEditWord+w.ID),
			markup.Data("🗑", prefixDeleteWord+w.ID),
		))
	}

	// Add pagination buttons
	if totalPages > 1 {
		navRow := tele.Row{}
		if page > 1 {
			navRow = append(navRow, markup.Data("⬅️", fmt.Sprintf("%s%d", prefixWordsPage, page-1)))
		}
		if page < totalPages {
			navRow = append(navRow, markup.Data("➡️", fmt.Sprintf("%s%d", prefixWordsPage, page+1)))
		}
		rows = append(rows, navRow)
	}
	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)

	return h.reply(c, formatWordList(dict, words, page, totalPages, time.Now()), markup)
}

// paginate returns the words of a 1-based page and the page count
func paginate(words []domain.Word, page, size int) ([]domain.Word, int) {
	totalPages := (len(words) + size - 1) / size
	if page < 1 || page > totalPages {
		return nil, totalPages
	}
	start := (page - 1) * size
	end := min(start+size, len(words))
	return words[start:end], totalPages
}

func formatWordList(dict domain.Dictionary, words []domain.Word, page, totalPages int, now time.Time) string {
	if len(dict.Words) == 0 {
		return fmt.Sprintf("📝 %s is empty. Add words with /add or /import_words.", dict.Name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📝 %s (%d words), page %d/%d\n\n", dict.Name, len(dict.Words), page, totalPages)
	for _, w := range words {
		fmt.Fprintf(&b, "%s — %s\n", w.SourceWord, w.TranslatedWord)
		fmt.Fprintf(&b, "%s %d/%d · reviewed %s\n\n",
			masteryBar(w.MasteryLevel), w.MasteryLevel, domain.MaxMasteryLevel,
			domain.DisplayReviewed(w.LastReviewed, now))
	}
	return strings.TrimRight(b.String(), "\n")
}

func masteryBar(level int) string {
	level = domain.ClampMastery(level)
	return strings.Repeat("●", level) + strings.Repeat("○", domain.MaxMasteryLevel-level)
}

func (h *Handler) handleDeleteWord(c tele.Context, wordID string) error {
	if err := middleware.Store(c).DeleteWord(context.Background(), wordID); err != nil {
		h.logger.Error("Failed to delete word", zap.String("word_id", wordID), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: userMessage(err)})
	}
	return h.showWordsPage(c, 1)
}

// handleEditWord asks for the new translation and example of a word
func (h *Handler) handleEditWord(c tele.Context, wordID string) error {
	dict, err := middleware.Store(c).ResolveActive()
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: userMessage(err)})
	}
	word, ok := findWord(dict.Words, wordID)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "This word no longer exists."})
	}

	_ = c.Respond()
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingWordEdit, WordID: wordID})
	return c.Send(formatWord(word)+"\n\nSend: translation; example sentence", cancelMarkup())
}

func (h *Handler) updateWord(c tele.Context, wordID, text string) error {
	userID := c.Sender().ID

	edit, ok := parseWordEdit(text)
	if !ok {
		return c.Send("❌ Use the format: translation; example sentence", cancelMarkup())
	}

	store := middleware.Store(c)
	h.ResetState(userID)

	status := "✅ Updated"
	if err := store.UpdateWord(context.Background(), wordID, edit); err != nil {
		h.logger.Error("Failed to update word",
			zap.Int64("user_id", userID),
			zap.String("word_id", wordID),
			zap.Error(err),
		)
		// updated in memory, the write failed
		status = userMessage(err)
	}

	dict, err := store.ResolveActive()
	if err != nil {
		return c.Send(userMessage(err), mainMenuMarkup())
	}
	word, ok := findWord(dict.Words, wordID)
	if !ok {
		return c.Send("This word no longer exists.", mainMenuMarkup())
	}
	h.logger.Info("Word updated", zap.Int64("user_id", userID), zap.String("word", word.SourceWord))
	return c.Send(formatWord(word)+"\n\n"+status, mainMenuMarkup())
}

// parseWordEdit splits "translation; example sentence" on the first semicolon
func parseWordEdit(text string) (domain.WordEdit, bool) {
	translation, example, found := strings.Cut(text, ";")
	if !found {
		return domain.WordEdit{}, false
	}
	translation = strings.TrimSpace(translation)
	if translation == "" {
		return domain.WordEdit{}, false
	}
	return domain.WordEdit{
		TranslatedWord:  translation,
		ExampleSentence: strings.TrimSpace(example),
	}, true
}

func findWord(words []domain.Word, id string) (domain.Word, bool) {
	for _, w := range words {
		if w.ID == id {
			return w, true
		}
	}
	return domain.Word{}, false
}
