package noderegistry

import (
	"context"
	"testing"

	"github.com/padolabs/pado-go-sdk/ao"
	"github.com/padolabs/pado-go-sdk/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testProcessID = "node-registry-process"

func TestClientRegister(t *testing.T) {
	signer := new(ao.MockSigner)

	messenger := new(ao.MockMessenger)
	messenger.On("Send", mock.Anything, interfaces.ProcessMessage{
		ProcessID: testProcessID,
		Action:    "Register",
		Attributes: []interfaces.Tag{
			{Name: "Name", Value: "node-1"},
			{Name: "Desc", Value: "first node"},
		},
		Payload: []byte("pk-1"),
		Signer:  signer,
	}).Return([]byte("registered"), nil)

	client := NewClient(&Config{ProcessID: testProcessID, Messenger: messenger})

	resp, err := client.Register(context.Background(), "node-1", "pk-1", "first node", signer)
	require.NoError(t, err)
	assert.Equal(t, []byte("registered"), resp)

	messenger.AssertExpectations(t)
}

func TestClientUpdate(t *testing.T) {
	signer := new(ao.MockSigner)

	messenger := new(ao.MockMessenger)
	messenger.On("Send", mock.Anything, mock.MatchedBy(func(msg interfaces.ProcessMessage) bool {
		return msg.Action == "Update" && string(msg.Payload) == "pk-2"
	})).Return([]byte("updated"), nil)

	client := NewClient(&Config{ProcessID: testProcessID, Messenger: messenger})

	resp, err := client.Update(context.Background(), "node-1", "pk-2", "rotated key", signer)
	require.NoError(t, err)
	assert.Equal(t, []byte("updated"), resp)

	messenger.AssertExpectations(t)
}

func TestClientNodes(t *testing.T) {
	listing := `[{"index":1,"name":"a","publicKey":"pkA"},{"index":2,"name":"b","publicKey":"pkB"}]`

	messenger := new(ao.MockMessenger)
	messenger.On("DryRun", mock.Anything, interfaces.ProcessMessage{
		ProcessID: testProcessID,
		Action:    "Nodes",
	}).Return([]byte(listing), nil)

	client := NewClient(&Config{ProcessID: testProcessID, Messenger: messenger})

	raw, err := client.Nodes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte(listing), raw)

	nodes, err := client.NodeList(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, interfaces.NodeInfo{Index: 1, Name: "a", PublicKey: "pkA"}, nodes[0])
}

func TestClientSelectNodes(t *testing.T) {
	listing := `[{"index":1,"name":"a","publicKey":"pkA"},{"index":2,"name":"b","publicKey":"pkB"},{"index":3,"name":"c","publicKey":"pkC"}]`

	messenger := new(ao.MockMessenger)
	messenger.On("DryRun", mock.Anything, mock.Anything).Return([]byte(listing), nil)

	client := NewClient(&Config{ProcessID: testProcessID, Messenger: messenger})

	nodes, err := client.SelectNodes(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "a", nodes[0].Name)
	assert.Equal(t, "b", nodes[1].Name)

	_, err = client.SelectNodes(context.Background(), 4)
	assert.Error(t, err)
}

func TestClientEmptyResultPassthrough(t *testing.T) {
	messenger := new(ao.MockMessenger)
	messenger.On("Send", mock.Anything, mock.Anything).Return(nil, interfaces.ErrEmptyResult)

	client := NewClient(&Config{ProcessID: testProcessID, Messenger: messenger})

	_, err := client.Register(context.Background(), "node-1", "pk-1", "", new(ao.MockSigner))
	assert.ErrorIs(t, err, interfaces.ErrEmptyResult)
}
