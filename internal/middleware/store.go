package middleware

import (
	"context"
	"strconv"
	"time"

	"lingolearn/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	storeKey         = "store"
	storeLoadTimeout = 10 * time.Second
)

// StoreProvider returns the loaded dictionary store of one user
type StoreProvider interface {
	StoreFor(ctx context.Context, namespace string) (*service.DictionaryStore, error)
}

// LoadStore attaches the sender's dictionary store to the context before the handler runs
func LoadStore(provider StoreProvider, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return nil
			}

			ctx, cancel := context.WithTimeout(context.Background(), storeLoadTimeout)
			defer cancel()

			store, err := provider.StoreFor(ctx, strconv.FormatInt(sender.ID, 10))
			if err != nil {
				logger.Error("Failed to load user store",
					zap.Int64("user_id", sender.ID),
					zap.Error(err),
				)
				if c.Callback() != nil {
					return c.Respond(&tele.CallbackResponse{Text: "Could not load your dictionaries"})
				}
				return c.Send("⚠️ Could not load your dictionaries. Please try again later.")
			}

			c.Set(storeKey, store)
			return next(c)
		}
	}
}

// Store returns the store attached by LoadStore, or nil
func Store(c tele.Context) *service.DictionaryStore {
	store, _ := c.Get(storeKey).(*service.DictionaryStore)
	return store
}
