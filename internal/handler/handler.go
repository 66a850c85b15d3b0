package handler

import (
	"context"
	"sync"

	"lingolearn/internal/domain"
	"lingolearn/internal/middleware"
	"lingolearn/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot           *tele.Bot
	stores        middleware.StoreProvider
	wordService   *service.WordService
	importService *service.ImportService
	quizService   *service.QuizService
	statsService  *service.StatsService
	logger        *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Running quiz per user
	quizzes map[int64]*service.QuizSession
	quizMux sync.Mutex

	// Cancel functions of running imports per user
	imports   map[int64]context.CancelFunc
	importMux sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	stores middleware.StoreProvider,
	wordService *service.WordService,
	importService *service.ImportService,
	quizService *service.QuizService,
	statsService *service.StatsService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:           bot,
		stores:        stores,
		wordService:   wordService,
		importService: importService,
		quizService:   quizService,
		statsService:  statsService,
		logger:        logger,
		states:        make(map[int64]*domain.StateData),
		quizzes:       make(map[int64]*service.QuizSession),
		imports:       make(map[int64]context.CancelFunc),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Use(middleware.LoadStore(h.stores, h.logger))

	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/help", h.handleStart)
	h.bot.Handle("/dicts", h.handleDictionaries)
	h.bot.Handle("/newdict", h.handleNewDictionary)
	h.bot.Handle("/add", h.handleAddWord)
	h.bot.Handle("/words", h.handleWords)
	h.bot.Handle("/quiz", h.handleQuiz)
	h.bot.Handle("/import_words", h.importPrompt(domain.StateWaitingWordList))
	h.bot.Handle("/import_examples", h.importPrompt(domain.StateWaitingExamples))
	h.bot.Handle("/import_csv", h.importPrompt(domain.StateWaitingCSV))
	h.bot.Handle("/export", h.handleExport)
	h.bot.Handle("/stats", h.handleStats)
	h.bot.Handle("/reset", h.handleReset)

	// Text messages and uploaded files
	h.bot.Handle(tele.OnText, h.handleText)
	h.bot.Handle(tele.OnDocument, h.handleDocument)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnDictionaries, h.handleDictionaries)
	h.bot.Handle(&btnNewDictionary, h.handleNewDictionary)
	h.bot.Handle(&btnWords, h.handleWords)
	h.bot.Handle(&btnQuiz, h.handleQuiz)
	h.bot.Handle(&btnStats, h.handleStats)
	h.bot.Handle(&btnQuizNext, h.handleQuizNext)
	h.bot.Handle(&btnCancel, h.handleCancel)
	h.bot.Handle(&btnCancelImport, h.handleCancelImport)
	h.bot.Handle(&btnResetConfirm, h.handleResetConfirm)
	h.bot.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// Inline keyboard buttons
var (
	btnDictionaries = tele.Btn{
		Unique: "dictionaries",
		Text:   "📚 Dictionaries",
	}
	btnNewDictionary = tele.Btn{
		Unique: "new_dictionary",
		Text:   "➕ New dictionary",
	}
	btnWords = tele.Btn{
		Unique: "words",
		Text:   "📝 Words",
	}
	btnQuiz = tele.Btn{
		Unique: "quiz",
		Text:   "🎯 Quiz",
	}
	btnStats = tele.Btn{
		Unique: "stats",
		Text:   "📊 Progress",
	}
	btnQuizNext = tele.Btn{
		Unique: "quiz_next",
		Text:   "➡️ Next",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnCancelImport = tele.Btn{
		Unique: "cancel_import",
		Text:   "⏹ Stop import",
	}
	btnResetConfirm = tele.Btn{
		Unique: "reset_confirm",
		Text:   "🗑 Yes, delete everything",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnDictionaries, btnWords),
		menu.Row(btnQuiz, btnStats),
	)
	return menu
}

func cancelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return markup
}

// reply edits the message behind a callback or sends a new one for commands
func (h *Handler) reply(c tele.Context, text string, opts ...interface{}) error {
	if c.Callback() == nil {
		return c.Send(text, opts...)
	}
	if err := c.Edit(text, opts...); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return c.Send(text, opts...)
	}
	return c.Respond()
}
