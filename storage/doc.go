// Package storage provides the ciphertext upload backends for the
// marketplace SDK and a factory creating them from location URIs.
//
// Two backends are the marketplace's storage routes proper: arweave stores
// data as a native Arweave transaction paid for by the caller's wallet, and
// arseeding stores data as an ANS-104 bundle item through an Arseeding
// gateway. The ipfs, s3 and file backends serve private deployments,
// development and tests; they ignore the wallet credential.
//
// Supported location URIs:
//   - arweave://[gateway-host]
//   - arseeding://[gateway-host]
//   - ipfs://host:port
//   - s3://bucket/prefix?region=...&endpoint=...&access_key=...&secret_key=...
//   - file:///base/dir
package storage
