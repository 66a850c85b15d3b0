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

const (
	prefixSelectDictionary = "dict_"
	prefixDeleteDictionary = "deldict_"
)

// handleDictionaries lists dictionaries with select and delete buttons
func (h *Handler) handleDictionaries(c tele.Context) error {
	store := middleware.Store(c)
	dicts := store.Dictionaries()
	activeID := store.ActiveID()

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	for _, d := range dicts {
		label := fmt.Sprintf("%s (%s → %s, %d)", d.Name, d.SourceLanguage, d.TargetLanguage, len(d.Words))
		if d.ID == activeID {
			label = "✅ " + label
		}
		rows = append(rows, markup.Row(
			markup.Data(label, prefixSelectDictionary+d.ID),
			markup.Data("🗑", prefixDeleteDictionary+d.ID),
		))
	}
	rows = append(rows, markup.Row(btnNewDictionary), markup.Row(btnMainMenu))
	markup.Inline(rows...)

	text := "📚 Your dictionaries:"
	if len(dicts) == 0 {
		text = "📚 You have no dictionaries yet."
	}
	return h.reply(c, text, markup)
}

// handleNewDictionary asks for the new dictionary's name and languages
func (h *Handler) handleNewDictionary(c tele.Context) error {
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingDictInput})
	return h.reply(c, "Send the dictionary as: name; source language; target language\nExample: Travel; English; Polish", cancelMarkup())
}

// createDictionary handles the text sent in StateWaitingDictInput
func (h *Handler) createDictionary(c tele.Context, text string) error {
	userID := c.Sender().ID

	name, source, target, ok := parseDictionaryInput(text)
	if !ok {
		return c.Send("Please use the format: name; source language; target language", cancelMarkup())
	}

	dict, err := middleware.Store(c).CreateDictionary(context.Background(), name, source, target)
	if err != nil && dict.ID == "" {
		return c.Send(userMessage(err), cancelMarkup())
	}
	if err != nil {
		h.logger.Error("Dictionary created but not persisted", zap.Int64("user_id", userID), zap.Error(err))
	}

	h.ResetState(userID)
	return c.Send(fmt.Sprintf("✅ Dictionary %q created.", dict.Name), mainMenuMarkup())
}

// parseDictionaryInput splits "name; source; target"
func parseDictionaryInput(text string) (name, source, target string, ok bool) {
	parts := strings.Split(text, ";")
	if len(parts) != 3 {
		return "", "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2]), true
}

func (h *Handler) handleSelectDictionary(c tele.Context, id string) error {
	if err := middleware.Store(c).SetActiveDictionary(context.Background(), id); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: userMessage(err)})
	}
	h.dropQuiz(c.Sender().ID)
	return h.handleDictionaries(c)
}

func (h *Handler) handleDeleteDictionary(c tele.Context, id string) error {
	userID := c.Sender().ID

	if err := middleware.Store(c).DeleteDictionary(context.Background(), id); err != nil {
		h.logger.Warn("Failed to delete dictionary",
			zap.Int64("user_id", userID),
			zap.String("dictionary_id", id),
			zap.Error(err),
		)
		return c.Respond(&tele.CallbackResponse{Text: userMessage(err), ShowAlert: true})
	}

	h.dropQuiz(userID)
	h.logger.Info("Dictionary deleted", zap.Int64("user_id", userID), zap.String("dictionary_id", id))
	return h.handleDictionaries(c)
}
