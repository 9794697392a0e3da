package cryptoutils

import (
	"crypto/ecdsa"
	"testing"

	"github.com/padolabs/pado-go-sdk/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateQuorum(t *testing.T, n int) ([]*ecdsa.PrivateKey, []string) {
	t.Helper()

	privateKeys := make([]*ecdsa.PrivateKey, 0, n)
	publicKeys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		privateKey, publicKeyHex, err := GenerateNodeKey()
		require.NoError(t, err)
		privateKeys = append(privateKeys, privateKey)
		publicKeys = append(publicKeys, publicKeyHex)
	}

	return privateKeys, publicKeys
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	privateKeys, publicKeys := generateQuorum(t, 3)
	policy := interfaces.PolicyInfo{T: 2, N: 3, Indices: []int{1, 2, 3}, Names: []string{"a", "b", "c"}}
	plaintext := []byte("confidential dataset")

	encryptor := NewThresholdEncryptor()

	encrypted, err := encryptor.Encrypt(publicKeys, plaintext, policy)
	require.NoError(t, err)
	require.Len(t, encrypted.EncryptedShares, 3)
	assert.NotEqual(t, plaintext, encrypted.Ciphertext)
	assert.Equal(t, policy, encrypted.Policy)

	// Recover with shares 0 and 2, a minimal quorum.
	share0, err := DecryptShare(privateKeys[0], encrypted.EncryptedShares[0])
	require.NoError(t, err)
	share2, err := DecryptShare(privateKeys[2], encrypted.EncryptedShares[2])
	require.NoError(t, err)

	recovered, err := Decrypt([][]byte{share0, share2}, encrypted.Ciphertext, encrypted.Nonce)
	require.NoError(t, err)
	assert.Equal(t, plaintext, recovered)
}

func TestEncryptRejectsEmptyPayload(t *testing.T) {
	_, publicKeys := generateQuorum(t, 3)

	encryptor := NewThresholdEncryptor()

	_, err := encryptor.Encrypt(publicKeys, nil, interfaces.PolicyInfo{T: 2, N: 3})
	assert.ErrorIs(t, err, interfaces.ErrEmptyPayload)
}

func TestEncryptRejectsKeyCountMismatch(t *testing.T) {
	_, publicKeys := generateQuorum(t, 2)

	encryptor := NewThresholdEncryptor()

	_, err := encryptor.Encrypt(publicKeys, []byte("data"), interfaces.PolicyInfo{T: 2, N: 3})
	assert.ErrorIs(t, err, ErrKeyCountMismatch)
}

func TestEncryptRejectsInvalidThreshold(t *testing.T) {
	_, publicKeys := generateQuorum(t, 3)

	encryptor := NewThresholdEncryptor()

	for _, threshold := range []int{0, 1, 4} {
		_, err := encryptor.Encrypt(publicKeys, []byte("data"), interfaces.PolicyInfo{T: threshold, N: 3})
		assert.ErrorIs(t, err, ErrInvalidThreshold)
	}
}

func TestEncryptRejectsMalformedPublicKey(t *testing.T) {
	encryptor := NewThresholdEncryptor()

	_, err := encryptor.Encrypt([]string{"zz", "zz"}, []byte("data"), interfaces.PolicyInfo{T: 2, N: 2})
	assert.Error(t, err)
}

func TestDecryptShareWrongKey(t *testing.T) {
	privateKeys, publicKeys := generateQuorum(t, 3)

	encryptor := NewThresholdEncryptor()

	encrypted, err := encryptor.Encrypt(publicKeys, []byte("data"), interfaces.PolicyInfo{T: 2, N: 3})
	require.NoError(t, err)

	// Share 0 was wrapped for node 0; node 1's key must not open it.
	_, err = DecryptShare(privateKeys[1], encrypted.EncryptedShares[0])
	assert.Error(t, err)
}

func TestDecryptBelowThresholdFails(t *testing.T) {
	privateKeys, publicKeys := generateQuorum(t, 3)

	encryptor := NewThresholdEncryptor()

	plaintext := []byte("data")
	encrypted, err := encryptor.Encrypt(publicKeys, plaintext, interfaces.PolicyInfo{T: 2, N: 3})
	require.NoError(t, err)

	share0, err := DecryptShare(privateKeys[0], encrypted.EncryptedShares[0])
	require.NoError(t, err)

	recovered, err := Decrypt([][]byte{share0}, encrypted.Ciphertext, encrypted.Nonce)
	if err == nil {
		assert.NotEqual(t, plaintext, recovered)
	}
}

func TestParsePublicKeyEncodings(t *testing.T) {
	privateKey, publicKeyHex, err := GenerateNodeKey()
	require.NoError(t, err)

	parsed, err := ParsePublicKey(publicKeyHex)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(&privateKey.PublicKey))

	parsed, err = ParsePublicKey("0x" + publicKeyHex)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(&privateKey.PublicKey))

	_, err = ParsePublicKey("deadbeef")
	assert.Error(t, err)
}
