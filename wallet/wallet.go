// Package wallet constructs data item signers from Arweave JWK wallet
// credentials. The rest of the SDK treats signers as opaque capabilities;
// this package is the only place wallet material is interpreted.
package wallet

import (
	"context"
	"os"

	"github.com/everFinance/goar"
	"github.com/everFinance/goar/types"

	"github.com/padolabs/pado-go-sdk/interfaces"
)

// ArweaveSigner signs ANS-104 data items with an Arweave RSA wallet.
type ArweaveSigner struct {
	itemSigner *goar.ItemSigner
	address    string
}

// NewArweaveSigner creates a signer from a JWK wallet keyfile.
func NewArweaveSigner(jwk []byte) (*ArweaveSigner, error) {
	signer, err := goar.NewSigner(jwk)
	if err != nil {
		return nil, err
	}

	itemSigner, err := goar.NewItemSigner(signer)
	if err != nil {
		return nil, err
	}

	return &ArweaveSigner{itemSigner: itemSigner, address: signer.Address}, nil
}

// NewArweaveSignerFromPath creates a signer from a JWK wallet file on disk.
func NewArweaveSignerFromPath(path string) (*ArweaveSigner, error) {
	jwk, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewArweaveSigner(jwk)
}

// Address returns the wallet's Arweave address.
func (s *ArweaveSigner) Address() string {
	return s.address
}

// SignDataItem signs data addressed to the target process with the given
// tags, returning the serialized item and its ID.
func (s *ArweaveSigner) SignDataItem(ctx context.Context, target string, tags []interfaces.Tag, data []byte) (*interfaces.SignedDataItem, error) {
	goarTags := make([]types.Tag, 0, len(tags))
	for _, tag := range tags {
		goarTags = append(goarTags, types.Tag{Name: tag.Name, Value: tag.Value})
	}

	item, err := s.itemSigner.CreateAndSignItem(data, target, "", goarTags)
	if err != nil {
		return nil, err
	}

	return &interfaces.SignedDataItem{ID: item.Id, Raw: item.ItemBinary}, nil
}

// SignerFromJWK is the default interfaces.SignerFactory: it interprets the
// wallet credential as an Arweave JWK keyfile.
func SignerFromJWK(jwk []byte) (interfaces.DataItemSigner, error) {
	return NewArweaveSigner(jwk)
}
