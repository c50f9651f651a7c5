// Package pkgerror defines shared error types and sentinel errors used across
// the library.
//
// It helps keep error handling consistent by:
//   - Providing sentinel errors that can be checked with errors.Is.
//   - Providing a structured Error type that carries a message, type, and code.
//     The type separates local validation, transport, remote-job and timeout
//     failures so callers can branch on the failure class rather than on
//     message strings. The code maps to HTTP status codes at the edge for the
//     mock service handlers.
package pkgerror
