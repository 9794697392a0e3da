package storage

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockBackend mocks the interfaces.UploadBackend interface.
type MockBackend struct {
	mock.Mock
}

// Upload mocks the Upload method.
func (m *MockBackend) Upload(ctx context.Context, data []byte, wallet []byte, tag string) (string, error) {
	args := m.Called(ctx, data, wallet, tag)
	return args.String(0), args.Error(1)
}

// Fetch mocks the Fetch method.
func (m *MockBackend) Fetch(ctx context.Context, txID string) ([]byte, error) {
	args := m.Called(ctx, txID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Available mocks the Available method.
func (m *MockBackend) Available(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

// Name mocks the Name method.
func (m *MockBackend) Name() string {
	return "mock"
}

// LocationURI mocks the LocationURI method.
func (m *MockBackend) LocationURI() string {
	return "mock:"
}
