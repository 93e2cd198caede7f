// Package errors provides the classified errors used across rf24docs.
//
// Failures that cross a package boundary carry a category. The category
// decides the default severity, whether a retry may help and the exit code
// the CLI reports, so callers never match on message strings.
//
//	err := errors.InventoryError("fetch failed").
//		WithContext("target", target.Name).
//		WithCause(originalErr).
//		Build()
package errors
