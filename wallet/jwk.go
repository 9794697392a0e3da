package wallet

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
)

// WalletKeySize is the RSA modulus size Arweave requires for wallets.
const WalletKeySize = 4096

// GenerateJWK creates a fresh Arweave wallet keyfile in JWK form. Intended
// for local development and the devnet; production wallets come from the
// user's keyfile.
func GenerateJWK() ([]byte, error) {
	key, err := rsa.GenerateKey(rand.Reader, WalletKeySize)
	if err != nil {
		return nil, fmt.Errorf("could not generate wallet key: %w", err)
	}

	key.Precompute()

	encode := func(i *big.Int) string {
		return base64.RawURLEncoding.EncodeToString(i.Bytes())
	}

	jwk := map[string]string{
		"kty": "RSA",
		"n":   encode(key.N),
		"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		"d":   encode(key.D),
		"p":   encode(key.Primes[0]),
		"q":   encode(key.Primes[1]),
		"dp":  encode(key.Precomputed.Dp),
		"dq":  encode(key.Precomputed.Dq),
		"qi":  encode(key.Precomputed.Qinv),
	}

	return json.Marshal(jwk)
}
