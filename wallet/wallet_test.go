package wallet

import (
	"context"
	"sync"
	"testing"

	"github.com/everFinance/goar/utils"
	"github.com/padolabs/pado-go-sdk/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testJWKOnce sync.Once
	testJWK     []byte
	testJWKErr  error
)

// walletJWK returns a process-wide wallet keyfile; 4096-bit RSA generation is
// slow enough to share across tests.
func walletJWK(t *testing.T) []byte {
	t.Helper()
	testJWKOnce.Do(func() {
		testJWK, testJWKErr = GenerateJWK()
	})
	require.NoError(t, testJWKErr)
	return testJWK
}

func TestNewArweaveSigner(t *testing.T) {
	signer, err := NewArweaveSigner(walletJWK(t))
	require.NoError(t, err)
	assert.NotEmpty(t, signer.Address())
}

func TestNewArweaveSignerRejectsGarbage(t *testing.T) {
	_, err := NewArweaveSigner([]byte("not a keyfile"))
	assert.Error(t, err)
}

func TestSignDataItem(t *testing.T) {
	signer, err := NewArweaveSigner(walletJWK(t))
	require.NoError(t, err)

	target := utils.Base64Encode(make([]byte, 32))
	tags := []interfaces.Tag{
		{Name: "Action", Value: "Register"},
		{Name: "Name", Value: "node-1"},
	}

	item, err := signer.SignDataItem(context.Background(), target, tags, []byte("payload"))
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.NotEmpty(t, item.Raw)

	// The serialized item must decode back to the same target, tags and
	// payload.
	decoded, err := utils.DecodeBundleItem(item.Raw)
	require.NoError(t, err)
	assert.Equal(t, target, decoded.Target)
	assert.Equal(t, item.ID, decoded.Id)

	data, err := utils.Base64Decode(decoded.Data)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)

	require.Len(t, decoded.Tags, 2)
	assert.Equal(t, "Action", decoded.Tags[0].Name)
	assert.Equal(t, "Register", decoded.Tags[0].Value)
}

func TestSignerFromJWK(t *testing.T) {
	signer, err := SignerFromJWK(walletJWK(t))
	require.NoError(t, err)
	assert.Implements(t, (*interfaces.DataItemSigner)(nil), signer)
}
