package testutil

import (
	"context"

	"lingolearn/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockBlobStore is a mock for repository.BlobStore
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockBlobStore) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockLookupService is a mock for lookup.Service
type MockLookupService struct {
	mock.Mock
}

func (m *MockLookupService) Lookup(ctx context.Context, word, sourceLanguage, targetLanguage string) (domain.WordDetails, error) {
	args := m.Called(ctx, word, sourceLanguage, targetLanguage)
	return args.Get(0).(domain.WordDetails), args.Error(1)
}

// MockMasteryRecorder is a mock for service.MasteryRecorder
type MockMasteryRecorder struct {
	mock.Mock
}

func (m *MockMasteryRecorder) UpdateWordMastery(ctx context.Context, wordID string, isCorrect bool) error {
	args := m.Called(ctx, wordID, isCorrect)
	return args.Error(0)
}
