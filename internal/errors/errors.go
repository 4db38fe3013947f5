package errors

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is returned by analytics operations when the stored
// history cannot support the requested computation. Callers are expected to
// render a placeholder result, not an error page.
var ErrInsufficientData = errors.New("insufficient price history")

// ErrStoreUnavailable indicates the database could not be reached on the read
// path. Handlers map it to an explicit "data unavailable" response.
var ErrStoreUnavailable = errors.New("price store unavailable")

// SourceError reports a transport or parse failure at one price source.
// Any SourceError aborts the whole ingestion cycle.
type SourceError struct {
	Source string
	Cause  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Cause)
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}

// NewSourceError wraps cause with the identity of the failing source.
func NewSourceError(source string, cause error) *SourceError {
	return &SourceError{Source: source, Cause: cause}
}

// DataQualityError reports a value that was fetched successfully but is not a
// usable price (non-numeric after cleaning, zero or negative). At the adapter
// boundary it is carried inside a SourceError.
type DataQualityError struct {
	Value   string
	Message string
}

func (e *DataQualityError) Error() string {
	return fmt.Sprintf("bad price value %q: %s", e.Value, e.Message)
}

// PersistenceError reports a failed write to the price store. The affected
// cycle is rolled back; the scheduler keeps running.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// ErrValidation reports invalid input on the API surface.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return e.Field + ": " + e.Message
}
