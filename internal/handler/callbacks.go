package handler

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// If message is not modified, it means it was already edited by another callback
	// Just acknowledge and return nil - don't send new message
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// callbackRoute is a dynamic button family recognized by its data prefix
type callbackRoute struct {
	prefix string
	handle func(h *Handler, c tele.Context, payload string) error
}

var callbackRoutes = []callbackRoute{
	{prefixSelectDictionary, (*Handler).handleSelectDictionary},
	{prefixDeleteDictionary, (*Handler).handleDeleteDictionary},
	{prefixDeleteWord, (*Handler).handleDeleteWord},
	{prefixEditWord, (*Handler).handleEditWord},
	{prefixQuizAnswer, (*Handler).handleQuizAnswer},
	{prefixWordsPage, (*Handler).handlePagination},
}

// matchCallback finds the route of cleaned callback data and its payload
func matchCallback(data string) (callbackRoute, string, bool) {
	for _, route := range callbackRoutes {
		if payload, ok := strings.CutPrefix(data, route.prefix); ok && payload != "" {
			return route, payload, true
		}
	}
	return callbackRoute{}, "", false
}

// handleCallback handles callbacks of dynamic buttons
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.String("unique", callback.Unique),
		zap.Int64("user_id", c.Sender().ID),
	)

	if route, payload, ok := matchCallback(data); ok {
		return route.handle(h, c, payload)
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}
