package middleware

import (
	"context"
	"errors"
	"testing"

	"lingolearn/internal/repository/memory"
	"lingolearn/internal/service"
	"lingolearn/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	tele "gopkg.in/telebot.v3"
)

// fakeContext implements the parts of tele.Context the middleware touches
type fakeContext struct {
	tele.Context
	sender   *tele.User
	callback *tele.Callback
	values   map[string]interface{}
	sent     []interface{}
}

func newFakeContext(userID int64) *fakeContext {
	return &fakeContext{sender: &tele.User{ID: userID}, values: make(map[string]interface{})}
}

func (c *fakeContext) Sender() *tele.User            { return c.sender }
func (c *fakeContext) Callback() *tele.Callback      { return c.callback }
func (c *fakeContext) Set(key string, v interface{}) { c.values[key] = v }
func (c *fakeContext) Get(key string) interface{}    { return c.values[key] }

func (c *fakeContext) Send(what interface{}, _ ...interface{}) error {
	c.sent = append(c.sent, what)
	return nil
}

func (c *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	for _, r := range resp {
		c.sent = append(c.sent, r.Text)
	}
	return nil
}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) StoreFor(ctx context.Context, namespace string) (*service.DictionaryStore, error) {
	args := m.Called(ctx, namespace)
	store, _ := args.Get(0).(*service.DictionaryStore)
	return store, args.Error(1)
}

func TestLoadStore(t *testing.T) {
	logger := testutil.NewTestLogger()
	store := service.NewDictionaryStore(memory.NewBlobStore(), service.KeysFor("42"), logger)

	tests := []struct {
		name       string
		callback   bool
		storeErr   error
		expectNext bool
		expectSent int
	}{
		{name: "store attached", expectNext: true},
		{name: "load failure on message", storeErr: errors.New("down"), expectSent: 1},
		{name: "load failure on callback", callback: true, storeErr: errors.New("down"), expectSent: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := new(mockProvider)
			if tt.storeErr != nil {
				provider.On("StoreFor", mock.Anything, "42").Return(nil, tt.storeErr)
			} else {
				provider.On("StoreFor", mock.Anything, "42").Return(store, nil)
			}

			c := newFakeContext(42)
			if tt.callback {
				c.callback = &tele.Callback{ID: "cb"}
			}

			called := false
			next := func(c tele.Context) error {
				called = true
				assert.Same(t, store, Store(c))
				return nil
			}

			err := LoadStore(provider, logger)(next)(c)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectNext, called)
			assert.Len(t, c.sent, tt.expectSent)
			provider.AssertExpectations(t)
		})
	}
}

func TestStore_Missing(t *testing.T) {
	assert.Nil(t, Store(newFakeContext(1)))
}

func TestLoadStore_NoSender(t *testing.T) {
	provider := new(mockProvider)
	c := newFakeContext(0)
	c.sender = nil

	err := LoadStore(provider, testutil.NewTestLogger())(func(tele.Context) error {
		t.Fatal("next must not run without a sender")
		return nil
	})(c)

	assert.NoError(t, err)
	provider.AssertNotCalled(t, "StoreFor", mock.Anything, mock.Anything)
}
