package domain

import (
	"errors"
	"fmt"
)

// ErrStorageUnavailable signals that the persistence medium could not
// be read or written. The store wraps every driver failure with it;
// callers must treat the affected operation as failed, not retryable.
var ErrStorageUnavailable = errors.New("storage unavailable")

// NotFoundError is returned when a referenced identifier does not
// resolve to an existing record.
type NotFoundError struct {
	Kind Kind
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// EmailConflictError is returned when a registration email is already
// taken.
type EmailConflictError struct {
	Email string
}

func (e *EmailConflictError) Error() string {
	return fmt.Sprintf("email %q is already registered", e.Email)
}

// OccupiedError is returned when a tenancy would be created on a
// listing that already carries an active tenancy.
type OccupiedError struct {
	ListingID string
}

func (e *OccupiedError) Error() string {
	return fmt.Sprintf("listing %q already has an active tenancy", e.ListingID)
}

// AlreadyTerminatedError is returned on a second termination of the
// same tenancy.
type AlreadyTerminatedError struct {
	TenancyID string
}

func (e *AlreadyTerminatedError) Error() string {
	return fmt.Sprintf("tenancy %q is already terminated", e.TenancyID)
}

// InvalidAmountError is returned when a transaction amount is not
// strictly positive.
type InvalidAmountError struct {
	Amount int64
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("transaction amount must be positive, got %d", e.Amount)
}

// TransitionError is returned when a lifecycle event is not valid from
// the current state.
type TransitionError struct {
	Event   TenancyEvent
	Current TenancyState
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("event %q is not valid from state %q", e.Event, e.Current)
}
