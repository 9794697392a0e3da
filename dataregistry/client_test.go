package dataregistry

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/padolabs/pado-go-sdk/ao"
	"github.com/padolabs/pado-go-sdk/interfaces"
	"github.com/padolabs/pado-go-sdk/noderegistry"
	"github.com/padolabs/pado-go-sdk/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testProcessID = "data-registry-process"

var testNodes = []interfaces.NodeInfo{
	{Index: 1, Name: "a", PublicKey: "pkA"},
	{Index: 2, Name: "b", PublicKey: "pkB"},
	{Index: 3, Name: "c", PublicKey: "pkC"},
}

func TestFormatPolicy(t *testing.T) {
	schema := interfaces.EncryptionSchema{T: 2, N: 3}

	policy, publicKeys := formatPolicy(schema, testNodes)

	assert.Equal(t, interfaces.PolicyInfo{
		T:       2,
		N:       3,
		Indices: []int{1, 2, 3},
		Names:   []string{"a", "b", "c"},
	}, policy)
	assert.Equal(t, []string{"pkA", "pkB", "pkC"}, publicKeys)
}

func TestFormatPolicyKeepsDuplicates(t *testing.T) {
	nodes := []interfaces.NodeInfo{testNodes[0], testNodes[0]}

	policy, publicKeys := formatPolicy(interfaces.EncryptionSchema{T: 2, N: 2}, nodes)

	assert.Equal(t, []int{1, 1}, policy.Indices)
	assert.Equal(t, []string{"a", "a"}, policy.Names)
	assert.Equal(t, []string{"pkA", "pkA"}, publicKeys)
}

func TestPrepareRegistry(t *testing.T) {
	discovery := new(noderegistry.MockDiscovery)
	discovery.On("SelectNodes", mock.Anything, 3).Return(testNodes, nil)

	client := NewClient(&Config{Discovery: discovery})

	policy, publicKeys, err := client.PrepareRegistry(context.Background(), interfaces.EncryptionSchema{T: 2, N: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, policy.Names)
	assert.Len(t, publicKeys, 3)

	discovery.AssertExpectations(t)
}

func TestEncryptDataRejectsEmptyPayload(t *testing.T) {
	encryptor := new(MockEncryptor)
	client := NewClient(&Config{Encryptor: encryptor})

	for _, publicKeys := range [][]string{nil, {"pkA", "pkB"}} {
		_, err := client.EncryptData(nil, interfaces.PolicyInfo{T: 2, N: 3}, publicKeys)
		assert.ErrorIs(t, err, interfaces.ErrEmptyPayload)

		_, err = client.EncryptData([]byte{}, interfaces.PolicyInfo{}, publicKeys)
		assert.ErrorIs(t, err, interfaces.ErrEmptyPayload)
	}

	encryptor.AssertNotCalled(t, "Encrypt")
}

func TestEncryptDataAttachesPolicy(t *testing.T) {
	policy := interfaces.PolicyInfo{T: 2, N: 3, Indices: []int{1, 2, 3}, Names: []string{"a", "b", "c"}}
	publicKeys := []string{"pkA", "pkB", "pkC"}

	encryptor := new(MockEncryptor)
	encryptor.On("Encrypt", publicKeys, []byte("secret"), policy).Return(&interfaces.EncryptedPayload{
		Ciphertext:      []byte("ct"),
		Nonce:           "n1",
		EncryptedShares: []string{"s1", "s2", "s3"},
	}, nil)

	client := NewClient(&Config{Encryptor: encryptor})

	encrypted, err := client.EncryptData([]byte("secret"), policy, publicKeys)
	require.NoError(t, err)
	assert.Equal(t, policy, encrypted.Policy)

	encryptor.AssertExpectations(t)
}

func TestEncryptDataPropagatesEncryptorError(t *testing.T) {
	encryptor := new(MockEncryptor)
	encryptor.On("Encrypt", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("bad public key"))

	client := NewClient(&Config{Encryptor: encryptor})

	_, err := client.EncryptData([]byte("secret"), interfaces.PolicyInfo{}, []string{"junk"})
	assert.EqualError(t, err, "bad public key")
}

func TestRegister(t *testing.T) {
	signer := new(ao.MockSigner)

	messenger := new(ao.MockMessenger)
	messenger.On("Send", mock.Anything, interfaces.ProcessMessage{
		ProcessID: testProcessID,
		Action:    "Register",
		Attributes: []interfaces.Tag{
			{Name: "DataTag", Value: `{"name":"x"}`},
			{Name: "Price", Value: `{"amount":"10"}`},
			{Name: "ComputeNodes", Value: `["a","b","c"]`},
		},
		Payload: []byte("extra"),
		Signer:  signer,
	}).Return([]byte("data-id-1"), nil)

	client := NewClient(&Config{ProcessID: testProcessID, Messenger: messenger})

	resp, err := client.Register(context.Background(), `{"name":"x"}`, `{"amount":"10"}`, "extra", []string{"a", "b", "c"}, signer)
	require.NoError(t, err)
	assert.Equal(t, []byte("data-id-1"), resp)

	messenger.AssertExpectations(t)
}

func TestAllDataDefaultsToValid(t *testing.T) {
	messenger := new(ao.MockMessenger)
	messenger.On("DryRun", mock.Anything, interfaces.ProcessMessage{
		ProcessID: testProcessID,
		Action:    "AllData",
		Attributes: []interfaces.Tag{
			{Name: "DataStatus", Value: "Valid"},
		},
	}).Return([]byte("[]"), nil)

	client := NewClient(&Config{ProcessID: testProcessID, Messenger: messenger})

	_, err := client.AllData(context.Background(), "")
	require.NoError(t, err)

	messenger.AssertExpectations(t)
}

func TestGetDataByID(t *testing.T) {
	messenger := new(ao.MockMessenger)
	messenger.On("DryRun", mock.Anything, interfaces.ProcessMessage{
		ProcessID: testProcessID,
		Action:    "GetDataById",
		Attributes: []interfaces.Tag{
			{Name: "DataId", Value: "data-id-1"},
		},
	}).Return([]byte(`{"id":"data-id-1"}`), nil)

	client := NewClient(&Config{ProcessID: testProcessID, Messenger: messenger})

	record, err := client.GetDataByID(context.Background(), "data-id-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"data-id-1"}`, string(record))

	messenger.AssertExpectations(t)
}

func submitFixture() (*interfaces.EncryptedPayload, interfaces.DataTag, interfaces.PriceInfo) {
	encrypted := &interfaces.EncryptedPayload{
		Ciphertext:      []byte("enc_msg"),
		Nonce:           "n1",
		EncryptedShares: []string{"s1"},
		Policy: interfaces.PolicyInfo{
			T:       2,
			N:       3,
			Indices: []int{1, 2, 3},
			Names:   []string{"a", "b", "c"},
		},
	}
	return encrypted, interfaces.DataTag{Name: "x"}, interfaces.PriceInfo{Amount: "10"}
}

func staticSignerFactory(signer interfaces.DataItemSigner) interfaces.SignerFactory {
	return func(wallet []byte) (interfaces.DataItemSigner, error) {
		return signer, nil
	}
}

func TestSubmitDataDefaultsToArweave(t *testing.T) {
	encrypted, dataTag, priceInfo := submitFixture()
	wallet := []byte("wallet-jwk")
	signer := new(ao.MockSigner)

	arweave := new(storage.MockBackend)
	arweave.On("Upload", mock.Anything, []byte("enc_msg"), wallet, "").Return("tx-1", nil).Once()

	messenger := new(ao.MockMessenger)
	messenger.On("Send", mock.Anything, mock.MatchedBy(func(msg interfaces.ProcessMessage) bool {
		return msg.Action == "Register"
	})).Return([]byte("data-id-1"), nil).Once()

	client := NewClient(&Config{
		ProcessID:      testProcessID,
		Messenger:      messenger,
		ArweaveBackend: arweave,
		SignerFor:      staticSignerFactory(signer),
	})

	dataID, err := client.SubmitData(context.Background(), encrypted, dataTag, priceInfo, wallet, nil)
	require.NoError(t, err)
	assert.Equal(t, "data-id-1", dataID)

	arweave.AssertExpectations(t)
	messenger.AssertExpectations(t)

	sent := messenger.Calls[0].Arguments.Get(1).(interfaces.ProcessMessage)

	var sentTag interfaces.DataTag
	require.NoError(t, json.Unmarshal([]byte(sent.Attributes[0].Value), &sentTag))
	assert.Equal(t, "x", sentTag.Name)
	assert.Equal(t, interfaces.StorageTypeArweave, sentTag.StorageType)

	assert.JSONEq(t, `["a","b","c"]`, sent.Attributes[2].Value)

	var extra interfaces.ExtraData
	require.NoError(t, json.Unmarshal(sent.Payload, &extra))
	assert.Equal(t, "tx-1", extra.TransactionID)
	assert.Equal(t, "n1", extra.Nonce)
	assert.Equal(t, []string{"s1"}, extra.EncryptedShares)
	assert.Equal(t, encrypted.Policy, extra.Policy)
}

func TestSubmitDataArseedingRoute(t *testing.T) {
	encrypted, dataTag, priceInfo := submitFixture()
	wallet := []byte("wallet-jwk")

	arseeding := new(storage.MockBackend)
	arseeding.On("Upload", mock.Anything, []byte("enc_msg"), wallet, "AR").Return("item-1", nil).Once()

	messenger := new(ao.MockMessenger)
	messenger.On("Send", mock.Anything, mock.Anything).Return([]byte("data-id-2"), nil).Once()

	client := NewClient(&Config{
		ProcessID:        testProcessID,
		Messenger:        messenger,
		ArseedingBackend: arseeding,
		SignerFor:        staticSignerFactory(new(ao.MockSigner)),
	})

	dataID, err := client.SubmitData(context.Background(), encrypted, dataTag, priceInfo, wallet, &interfaces.UploadParam{
		StorageType: interfaces.StorageTypeArseeding,
		Symbol:      "AR",
	})
	require.NoError(t, err)
	assert.Equal(t, "data-id-2", dataID)

	arseeding.AssertExpectations(t)

	sent := messenger.Calls[0].Arguments.Get(1).(interfaces.ProcessMessage)

	var sentTag interfaces.DataTag
	require.NoError(t, json.Unmarshal([]byte(sent.Attributes[0].Value), &sentTag))
	assert.Equal(t, interfaces.StorageTypeArseeding, sentTag.StorageType)

	var extra interfaces.ExtraData
	require.NoError(t, json.Unmarshal(sent.Payload, &extra))
	assert.Equal(t, "item-1", extra.TransactionID)
}

func TestSubmitDataUploadFailureSkipsRegistration(t *testing.T) {
	encrypted, dataTag, priceInfo := submitFixture()

	arweave := new(storage.MockBackend)
	arweave.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", fmt.Errorf("ledger unreachable"))

	messenger := new(ao.MockMessenger)

	client := NewClient(&Config{
		ProcessID:      testProcessID,
		Messenger:      messenger,
		ArweaveBackend: arweave,
		SignerFor:      staticSignerFactory(new(ao.MockSigner)),
	})

	_, err := client.SubmitData(context.Background(), encrypted, dataTag, priceInfo, []byte("w"), nil)
	assert.EqualError(t, err, "ledger unreachable")

	messenger.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSubmitDataRegistrationFailureSurfaces(t *testing.T) {
	encrypted, dataTag, priceInfo := submitFixture()

	arweave := new(storage.MockBackend)
	arweave.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("tx-1", nil).Once()

	messenger := new(ao.MockMessenger)
	messenger.On("Send", mock.Anything, mock.Anything).Return(nil, interfaces.ErrEmptyResult)

	client := NewClient(&Config{
		ProcessID:      testProcessID,
		Messenger:      messenger,
		ArweaveBackend: arweave,
		SignerFor:      staticSignerFactory(new(ao.MockSigner)),
	})

	// The upload is not rolled back; the orphaned artifact is accepted.
	_, err := client.SubmitData(context.Background(), encrypted, dataTag, priceInfo, []byte("w"), nil)
	assert.ErrorIs(t, err, interfaces.ErrEmptyResult)

	arweave.AssertExpectations(t)
}
