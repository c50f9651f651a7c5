// Package pkgrouter wraps HTTP routing and common middleware used by the
// mock dataset service.
//
// It provides a small router abstraction over httprouter plus shared concerns
// like JSON encoding, error mapping, logging, recovery, and correlation ID
// propagation. Handlers return plain values that are encoded verbatim, since
// the dataset wire protocol fixes exact response body shapes.
package pkgrouter
