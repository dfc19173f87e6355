package fiscal

import (
	"fmt"

	"github.com/google/uuid"
)

// Error codes surfaced to the HTTP layer. The dto package maps these to
// status codes, so callers can tell a bad request from an upstream failure.
const (
	ErrCodeInvalidPeriod       = "INVALID_PERIOD"
	ErrCodeSourceFetch         = "SOURCE_FETCH_FAILED"
	ErrCodeMissingBook         = "MISSING_BOOK"
	ErrCodeIncompleteOwnership = "INCOMPLETE_OWNERSHIP"
)

// InvalidPeriodError indicates a bad year/quarter/month combination.
type InvalidPeriodError struct {
	Year    int
	Quarter *int
	Month   *int
	Reason  string
}

// Error implements the error interface
func (e *InvalidPeriodError) Error() string {
	return fmt.Sprintf("invalid period year=%d quarter=%s month=%s: %s",
		e.Year, optionalInt(e.Quarter), optionalInt(e.Month), e.Reason)
}

// Code returns the stable error code for this error
func (e *InvalidPeriodError) Code() string { return ErrCodeInvalidPeriod }

// SourceFetchError wraps a collaborator failure while fetching one of the
// fiscal entry sources. The book generation that triggered the fetch is
// abandoned as a whole; no partial book is ever surfaced.
type SourceFetchError struct {
	Source SourceType
	Period Period
	Err    error
}

// Error implements the error interface
func (e *SourceFetchError) Error() string {
	return fmt.Sprintf("fetching %s entries for %s: %v", e.Source, e.Period.Label(), e.Err)
}

// Unwrap returns the underlying collaborator error
func (e *SourceFetchError) Unwrap() error { return e.Err }

// Code returns the stable error code for this error
func (e *SourceFetchError) Code() string { return ErrCodeSourceFetch }

// MissingBookError indicates a liquidation was requested without both
// constituent books.
type MissingBookError struct {
	Book   BookType
	Period Period
}

// Error implements the error interface
func (e *MissingBookError) Error() string {
	return fmt.Sprintf("liquidation for %s requires the %s book", e.Period.Label(), e.Book)
}

// Code returns the stable error code for this error
func (e *MissingBookError) Code() string { return ErrCodeMissingBook }

// IncompleteOwnershipError indicates an owner allocation was requested for
// an estate whose ownership shares are missing or sum to zero.
type IncompleteOwnershipError struct {
	EstateID uuid.UUID
	EntryID  uuid.UUID
}

// Error implements the error interface
func (e *IncompleteOwnershipError) Error() string {
	return fmt.Sprintf("estate %s referenced by entry %s has no ownership shares", e.EstateID, e.EntryID)
}

// Code returns the stable error code for this error
func (e *IncompleteOwnershipError) Code() string { return ErrCodeIncompleteOwnership }

func optionalInt(v *int) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%d", *v)
}
