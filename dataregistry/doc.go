// Package dataregistry provides a client for the data registry process of
// the marketplace: preparing a threshold encryption policy from a quorum of
// compute nodes, encrypting a payload, uploading the ciphertext to a storage
// ledger, and registering the resulting pointer and metadata.
//
// SubmitData is the full write path. Its side effect ordering is strict: the
// ciphertext upload must complete and its transaction ID be embedded in the
// registration metadata before the registration message fires, since the
// registry record's validity depends on the referenced storage pointer
// already existing. If registration fails after a successful upload the
// uploaded ciphertext is left behind as an orphaned, unregistered artifact;
// the SDK does not attempt rollback.
package dataregistry
