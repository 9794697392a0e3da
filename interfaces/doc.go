// Package interfaces defines the core types and capability interfaces for the
// PADO data marketplace SDK, separating interface definitions from
// implementations.
//
// The package provides the contracts between the SDK's components:
//
// # Messaging
//
// ProcessMessenger: uniform request/response exchange with a remote AO
// process. Committed sends are signed ANS-104 data items correlated to a
// result by message ID; dry-run queries execute speculatively against current
// process state and return synchronously.
//
// DataItemSigner: an opaque signing capability attached to committed
// messages. The messenger never inspects or generates signatures itself.
//
// # Marketplace types
//
// NodeInfo, EncryptionSchema and PolicyInfo describe a threshold encryption
// quorum. EncryptedPayload carries the ciphertext, nonce and wrapped key
// shares produced by an Encryptor. DataTag, PriceInfo and ExtraData are the
// records serialized into a data registration.
//
// # Storage
//
// UploadBackend: durable ciphertext storage addressed by transaction ID,
// implemented for Arweave, Arseeding bundles, IPFS, S3 and the local
// filesystem.
//
// # Errors
//
// The sentinel errors ErrEmptyPayload, ErrEmptyResult and ErrSubmission make
// up the SDK error taxonomy; errors from delegated capabilities (encryption,
// upload, signer construction) propagate to callers unwrapped.
package interfaces
