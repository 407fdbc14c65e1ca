// internal/crud/errors.go
//
// Error taxonomy for the generic repository.
//
// Context
// -------
// Callers need to tell four conditions apart: the payload is wrong
// (schema.ValidationError), a filter named a column the entity does not
// have (InvalidFilterError), the addressed record does not exist
// (NotFoundError), or the backend could not complete the operation
// (StorageError, transient and retryable).  Each is an exported struct so
// the calling layer can match with errors.As and pick its own transport
// code; the engine itself formats no user-facing text.
//
// Notes
// -----
// • StorageError wraps the driver error, so errors.Is still reaches the
//   underlying condition (context.DeadlineExceeded, driver sentinels).
// • Oxford commas, two spaces after periods.
package crud

import "fmt"

// NotFoundError reports an identifier that matched no record, active or
// inactive.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: record %d not found", e.Entity, e.ID)
}

// InvalidFilterError reports a filter key outside the entity's column set.
type InvalidFilterError struct {
	Entity string
	Key    string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("%s: unknown filter column %q", e.Entity, e.Key)
}

// StorageError reports a persistence backend failure.  It is transient from
// the caller's point of view and may be retried with backoff.
type StorageError struct {
	Entity string
	Op     string
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: storage failure during %s: %v", e.Entity, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
