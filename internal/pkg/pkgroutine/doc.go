// Package pkgroutine contains helpers for running goroutines safely.
//
// The Manager type limits concurrency, collects returned errors, and logs
// panics. The dataset package uses it as the bounded worker pool for per-row
// archive processing; the mock service uses it for background job work.
package pkgroutine
