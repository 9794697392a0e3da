// Package ao implements the ProcessMessenger contract over the AO HTTP
// units: committed messages are signed ANS-104 data items submitted to a
// messenger unit and correlated to their result on a compute unit by data
// item ID, while dry-run queries execute synchronously on the compute unit
// without committing state.
//
// The messenger makes exactly one attempt per call and applies no local
// retry policy. Only the first result message's data is returned; a result
// with zero messages fails with interfaces.ErrEmptyResult.
package ao
