package ao

import (
	"context"

	"github.com/padolabs/pado-go-sdk/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockMessenger mocks the interfaces.ProcessMessenger interface.
type MockMessenger struct {
	mock.Mock
}

// Send mocks the Send method.
func (m *MockMessenger) Send(ctx context.Context, msg interfaces.ProcessMessage) ([]byte, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// DryRun mocks the DryRun method.
func (m *MockMessenger) DryRun(ctx context.Context, msg interfaces.ProcessMessage) ([]byte, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockSigner mocks the interfaces.DataItemSigner interface.
type MockSigner struct {
	mock.Mock
}

// SignDataItem mocks the SignDataItem method.
func (m *MockSigner) SignDataItem(ctx context.Context, target string, tags []interfaces.Tag, data []byte) (*interfaces.SignedDataItem, error) {
	args := m.Called(ctx, target, tags, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.SignedDataItem), args.Error(1)
}
