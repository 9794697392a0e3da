package dataregistry

import (
	"github.com/padolabs/pado-go-sdk/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockEncryptor mocks the interfaces.Encryptor interface.
type MockEncryptor struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method.
func (m *MockEncryptor) Encrypt(publicKeys []string, data []byte, policy interfaces.PolicyInfo) (*interfaces.EncryptedPayload, error) {
	args := m.Called(publicKeys, data, policy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.EncryptedPayload), args.Error(1)
}
