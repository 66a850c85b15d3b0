package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"lingolearn/internal/domain"
	"lingolearn/internal/middleware"
	"lingolearn/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	importTimeout        = 30 * time.Minute
	progressEditInterval = 2 * time.Second
	maxReportErrors      = 10
	maxUploadSize        = 5 << 20
)

var modeForState = map[domain.UserState]service.ImportMode{
	domain.StateWaitingWordList: service.ModeLookup,
	domain.StateWaitingExamples: service.ModeExamples,
	domain.StateWaitingCSV:      service.ModeCSV,
}

var importInstructions = map[domain.UserState]string{
	domain.StateWaitingWordList: "Send a list of words, one per line. Details are looked up for each word.",
	domain.StateWaitingExamples: "Send blocks of three lines separated by a blank line:\nword\ntranslation\nexample sentence",
	domain.StateWaitingCSV: "Send a CSV file or paste its content. Required columns:\n" +
		"sourceWord, translatedWord, definition, exampleSentence, masteryLevel, lastReviewed",
}

// importPrompt switches the user into the input state of one import mode
func (h *Handler) importPrompt(state domain.UserState) tele.HandlerFunc {
	return func(c tele.Context) error {
		if _, err := middleware.Store(c).ResolveActive(); err != nil {
			return c.Send(userMessage(err))
		}
		h.SetState(c.Sender().ID, &domain.StateData{State: state})
		return c.Send("📥 "+importInstructions[state], cancelMarkup())
	}
}

// handleDocument accepts an uploaded CSV file while waiting for CSV input
func (h *Handler) handleDocument(c tele.Context) error {
	userID := c.Sender().ID
	if h.GetState(userID).State != domain.StateWaitingCSV {
		return c.Send("To import a file, start with /import_csv")
	}

	doc := c.Message().Document
	if doc.FileSize > maxUploadSize {
		return c.Send("⚠️ The file is too large.")
	}

	reader, err := h.bot.File(&doc.File)
	if err != nil {
		h.logger.Error("Failed to download document", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send("Could not download the file. Please try again.")
	}
	defer reader.Close()

	content, err := io.ReadAll(io.LimitReader(reader, maxUploadSize))
	if err != nil {
		h.logger.Error("Failed to read document", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send("Could not read the file. Please try again.")
	}

	return h.runImport(c, service.ModeCSV, string(content))
}

// runImport runs one import with a live progress message that offers cancellation
func (h *Handler) runImport(c tele.Context, mode service.ImportMode, input string) error {
	userID := c.Sender().ID

	ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
	defer cancel()
	if !h.startImport(userID, cancel) {
		return c.Send("An import is already running.")
	}
	defer h.finishImport(userID)

	stopMarkup := &tele.ReplyMarkup{}
	stopMarkup.Inline(stopMarkup.Row(btnCancelImport))

	status, err := h.bot.Send(c.Recipient(), "⏳ Importing...", stopMarkup)
	if err != nil {
		return err
	}
	h.SetState(userID, &domain.StateData{State: domain.StateIdle, MessageID: status.ID})

	var lastEdit time.Time
	progress := func(p domain.Progress) {
		if time.Since(lastEdit) < progressEditInterval {
			return
		}
		lastEdit = time.Now()
		if _, err := h.bot.Edit(status, formatProgress(p), stopMarkup); err != nil {
			h.logger.Debug("Failed to update import progress", zap.Error(err))
		}
	}

	report, err := h.importService.Import(ctx, middleware.Store(c), mode, input, progress)

	var text string
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		text = "⏹ Import stopped. Nothing was saved."
	case errors.Is(err, domain.ErrPersistence):
		text = formatReport(report) + "\n\n" + userMessage(err)
	case err != nil:
		text = userMessage(err)
	default:
		text = formatReport(report)
	}

	h.logger.Info("Import finished",
		zap.Int64("user_id", userID),
		zap.String("mode", string(mode)),
		zap.Int("successful", report.Successful),
		zap.Int("failed", report.Failed),
		zap.Error(err),
	)

	if _, editErr := h.bot.Edit(status, text, mainMenuMarkup()); editErr != nil {
		return c.Send(text, mainMenuMarkup())
	}
	return nil
}

func (h *Handler) startImport(userID int64, cancel context.CancelFunc) bool {
	h.importMux.Lock()
	defer h.importMux.Unlock()
	if _, running := h.imports[userID]; running {
		return false
	}
	h.imports[userID] = cancel
	return true
}

func (h *Handler) finishImport(userID int64) {
	h.importMux.Lock()
	defer h.importMux.Unlock()
	delete(h.imports, userID)
}

// handleCancelImport stops the user's running import
func (h *Handler) handleCancelImport(c tele.Context) error {
	h.importMux.Lock()
	cancel, running := h.imports[c.Sender().ID]
	h.importMux.Unlock()

	if !running {
		return c.Respond(&tele.CallbackResponse{Text: "No import is running"})
	}
	cancel()
	return c.Respond(&tele.CallbackResponse{Text: "Stopping..."})
}

func formatProgress(p domain.Progress) string {
	return fmt.Sprintf("⏳ Looking up %d of %d: %s", p.Current, p.Total, p.Word)
}

// formatReport summarizes an import, listing at most maxReportErrors failures
func formatReport(r domain.BatchReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📥 Import finished\n\n✅ Added: %d\n❌ Failed: %d", r.Successful, r.Failed)

	if len(r.Errors) > 0 {
		b.WriteString("\n")
		for i, msg := range r.Errors {
			if i == maxReportErrors {
				fmt.Fprintf(&b, "\n...and %d more", len(r.Errors)-maxReportErrors)
				break
			}
			b.WriteString("\n• " + msg)
		}
	}
	return b.String()
}

// handleExport sends the active dictionary as a CSV document
func (h *Handler) handleExport(c tele.Context) error {
	dict, err := middleware.Store(c).ResolveActive()
	if err != nil {
		return h.reply(c, userMessage(err), mainMenuMarkup())
	}

	doc := &tele.Document{
		File:     tele.FromReader(strings.NewReader(service.ExportCSV(dict.Words))),
		FileName: exportFileName(dict.Name),
		Caption:  fmt.Sprintf("📤 %s: %d words", dict.Name, len(dict.Words)),
		MIME:     "text/csv",
	}

	h.logger.Info("Dictionary exported",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("dictionary_id", dict.ID),
		zap.Int("words", len(dict.Words)),
	)
	return c.Send(doc)
}

// exportFileName turns a dictionary name into a safe file name
func exportFileName(name string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r == ' ' || r == '-' || r == '_':
			return '_'
		case r < 128 && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'):
			return r
		case r >= 128:
			return r
		default:
			return -1
		}
	}, strings.TrimSpace(name))
	if safe == "" {
		safe = "dictionary"
	}
	return safe + ".csv"
}
