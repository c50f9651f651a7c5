// Package upload is the client for the remote dataset service: it opens a
// dataset wrapper, sends local files as chunks, polls the per-chunk
// processing jobs to a terminal state and finalizes the wrapper.
//
// The sequence is strictly ordered: initiate, then every chunk, then
// polling, then finalize. The client never retries a failed call; retry
// policy belongs to the caller around the whole pipeline.
package upload
