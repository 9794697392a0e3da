// Package cryptoutils implements the SDK's default threshold encryption
// capability.
//
// A payload is encrypted once under a fresh 256-bit data key with
// ChaCha20-Poly1305. The data key is split with Shamir's Secret Sharing into
// one share per quorum node, and each share is wrapped with ECIES to the
// node's secp256k1 public key. Any T of the N shares recover the data key;
// fewer reveal nothing.
//
// The package also provides the consumer-side counterparts: unwrapping a
// share with a node private key, and combining shares to open the
// ciphertext.
package cryptoutils
