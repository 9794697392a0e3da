package noderegistry

import (
	"context"

	"github.com/padolabs/pado-go-sdk/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockDiscovery mocks the interfaces.NodeDiscovery interface.
type MockDiscovery struct {
	mock.Mock
}

// SelectNodes mocks the SelectNodes method.
func (m *MockDiscovery) SelectNodes(ctx context.Context, n int) ([]interfaces.NodeInfo, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]interfaces.NodeInfo), args.Error(1)
}
