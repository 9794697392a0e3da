package cryptoutils

import (
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/crypto/ecies"
	"github.com/hashicorp/vault/shamir"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/padolabs/pado-go-sdk/interfaces"
)

const dataKeySize = chacha20poly1305.KeySize

var (
	// ErrKeyCountMismatch is returned when the number of public keys does
	// not match the policy's share count.
	ErrKeyCountMismatch = errors.New("public key count does not match policy share count")

	// ErrInvalidThreshold is returned for thresholds outside 2..N.
	// Shamir splitting requires at least two shares to reconstruct.
	ErrInvalidThreshold = errors.New("threshold must be between 2 and the share count")
)

// ThresholdEncryptor implements interfaces.Encryptor with Shamir key
// splitting and ECIES share wrapping. The zero value is ready to use.
type ThresholdEncryptor struct{}

// NewThresholdEncryptor creates the default encryption capability.
func NewThresholdEncryptor() *ThresholdEncryptor {
	return &ThresholdEncryptor{}
}

// Encrypt seals data under a fresh data key and wraps one key share per
// public key. publicKeys must align positionally with the policy's node
// order: share i is wrapped for publicKeys[i].
func (e *ThresholdEncryptor) Encrypt(publicKeys []string, data []byte, policy interfaces.PolicyInfo) (*interfaces.EncryptedPayload, error) {
	if len(data) == 0 {
		return nil, interfaces.ErrEmptyPayload
	}
	if len(publicKeys) != policy.N {
		return nil, fmt.Errorf("%w: %d keys for n=%d", ErrKeyCountMismatch, len(publicKeys), policy.N)
	}
	if policy.T < 2 || policy.T > policy.N {
		return nil, fmt.Errorf("%w: t=%d, n=%d", ErrInvalidThreshold, policy.T, policy.N)
	}

	key := make([]byte, dataKeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("could not generate data key: %w", err)
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("could not generate nonce: %w", err)
	}

	ciphertext := aead.Seal(nil, nonce, data, nil)

	shares, err := shamir.Split(key, policy.N, policy.T)
	if err != nil {
		return nil, fmt.Errorf("could not split data key: %w", err)
	}

	encryptedShares := make([]string, 0, len(shares))
	for i, share := range shares {
		wrapped, err := wrapShare(publicKeys[i], share)
		if err != nil {
			return nil, fmt.Errorf("could not wrap share %d: %w", i, err)
		}
		encryptedShares = append(encryptedShares, base64.StdEncoding.EncodeToString(wrapped))
	}

	return &interfaces.EncryptedPayload{
		Ciphertext:      ciphertext,
		Nonce:           base64.StdEncoding.EncodeToString(nonce),
		EncryptedShares: encryptedShares,
		Policy:          policy,
	}, nil
}

// wrapShare encrypts a key share with ECIES to a hex-encoded secp256k1
// public key, compressed or uncompressed.
func wrapShare(publicKeyHex string, share []byte) ([]byte, error) {
	publicKey, err := ParsePublicKey(publicKeyHex)
	if err != nil {
		return nil, err
	}

	return ecies.Encrypt(rand.Reader, ecies.ImportECDSAPublic(publicKey), share, nil, nil)
}

// DecryptShare unwraps one base64-encoded encrypted share with a node's
// private key. This is the per-node half of the consumer-side recovery.
func DecryptShare(privateKey *ecdsa.PrivateKey, encryptedShare string) ([]byte, error) {
	wrapped, err := base64.StdEncoding.DecodeString(encryptedShare)
	if err != nil {
		return nil, fmt.Errorf("invalid share encoding: %w", err)
	}

	share, err := ecies.ImportECDSA(privateKey).Decrypt(wrapped, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("could not decrypt share: %w", err)
	}

	return share, nil
}

// Decrypt combines at least T unwrapped shares, reconstructs the data key
// and opens the ciphertext.
func Decrypt(shares [][]byte, ciphertext []byte, nonceB64 string) ([]byte, error) {
	key, err := shamir.Combine(shares)
	if err != nil {
		return nil, fmt.Errorf("could not combine shares: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(nonceB64)
	if err != nil {
		return nil, fmt.Errorf("invalid nonce encoding: %w", err)
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}

	data, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("could not open ciphertext: %w", err)
	}

	return data, nil
}

// ParsePublicKey decodes a hex-encoded secp256k1 public key, accepting
// compressed (33 byte) and uncompressed (65 byte) encodings with an
// optional 0x prefix.
func ParsePublicKey(publicKeyHex string) (*ecdsa.PublicKey, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(publicKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid public key hex: %w", err)
	}

	switch len(raw) {
	case 33:
		return crypto.DecompressPubkey(raw)
	case 65:
		return crypto.UnmarshalPubkey(raw)
	default:
		return nil, fmt.Errorf("invalid public key length: %d bytes", len(raw))
	}
}

// GenerateNodeKey creates a fresh secp256k1 node key pair, returning the
// private key and the hex-encoded uncompressed public key as it would be
// published in the node registry.
func GenerateNodeKey() (*ecdsa.PrivateKey, string, error) {
	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, "", err
	}

	publicKeyHex := hex.EncodeToString(crypto.FromECDSAPub(&privateKey.PublicKey))
	return privateKey, publicKeyHex, nil
}
