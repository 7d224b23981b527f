package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"carehub/internal/auth"
	"carehub/internal/events"
)

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) StoreRefreshToken(ctx context.Context, tokenID string, p auth.Principal, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, p, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) GetRefreshToken(ctx context.Context, tokenID string) (auth.Principal, error) {
	args := m.Called(ctx, tokenID)
	return args.Get(0).(auth.Principal), args.Error(1)
}

func (m *MockTokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	args := m.Called(ctx, tokenID)
	return args.Error(0)
}

// MockPublisher is a mock implementation of events.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// eventOfType matches an event envelope by type.
func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e events.Event) bool { return e.Type == eventType })
}

// MockPhotoStore is a mock implementation of storage.PhotoStore.
type MockPhotoStore struct {
	mock.Mock
}

func (m *MockPhotoStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	args := m.Called(ctx, filename, r)
	return args.String(0), args.Error(1)
}

func (m *MockPhotoStore) Delete(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}
