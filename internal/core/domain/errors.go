package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedCredential = errors.New("malformed credential")
	ErrSnapshotNotFound    = errors.New("no data found")
	ErrInvalidUserID       = errors.New("invalid userid")
	ErrForbidden           = errors.New("access forbidden")
)

// PartialIngestionError reports that pagination stopped on a failing page.
// Records gathered before the failure are still committed.
type PartialIngestionError struct {
	Page      int // zero-based index of the page that failed
	Retrieved int // orders retained before the failure
	Cause     error
}

func (e *PartialIngestionError) Error() string {
	return fmt.Sprintf("partial ingestion: page %d failed after %d orders: %v", e.Page, e.Retrieved, e.Cause)
}

func (e *PartialIngestionError) Unwrap() error {
	return e.Cause
}
