// Package mockservice is an in-memory stand-in for the remote dataset
// service, speaking the same wire protocol the upload client uses. It
// exists for local development and integration tests: statuses advance a
// configurable number of query steps before turning terminal, and
// failures can be injected by file name.
package mockservice
