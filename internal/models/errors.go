// ABOUTME: Error taxonomy shared by the stores, core services, and surfaces
// ABOUTME: Typed errors usable with errors.As across package boundaries
package models

import "fmt"

// ValidationError means a required field was missing or malformed.
// The operation was aborted before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError means a referenced entity id does not exist
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// StoreError wraps a datastore failure on a primary write or read.
// Never swallowed: these always surface to the caller.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// RemoteUnavailableError means the cloud peer could not be reached or
// returned garbage. Callers always recover with local data; this error is
// logged, never shown as a failure of the primary operation.
type RemoteUnavailableError struct {
	Op  string
	Err error
}

func (e *RemoteUnavailableError) Error() string {
	return fmt.Sprintf("remote unavailable: %s: %v", e.Op, e.Err)
}

func (e *RemoteUnavailableError) Unwrap() error { return e.Err }
