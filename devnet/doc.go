// Package devnet provides a local simulator of the marketplace's remote
// processes for development and end-to-end tests.
//
// The simulator exposes the same HTTP surface the SDK's messenger speaks: a
// messenger unit endpoint accepting signed ANS-104 data items, a result
// endpoint correlating message IDs to results, and a dry-run endpoint
// executing read-only queries. Behind it sit in-memory renditions of the
// node registry and data registry process semantics: node registration and
// listing, data registration with assigned identifiers, status filtering and
// lookup by ID.
//
// State is process-local and lost on restart; the devnet is not a ledger.
package devnet
