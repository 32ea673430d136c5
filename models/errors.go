package models

import "fmt"

// The error types below form the engine's full failure taxonomy. All are
// recoverable conditions the caller can branch on; none abort the process.

// NotFoundError indicates a referenced record does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// InvalidTransitionError indicates a status change not permitted from the
// booking's current state.
type InvalidTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid booking status transition %s -> %s", e.From, e.To)
}

// CapacityExceededError indicates the provider is at its concurrent active
// booking limit. The caller must retry later or pick another provider.
type CapacityExceededError struct {
	ProviderID string
	Limit      int
}

func (e CapacityExceededError) Error() string {
	return fmt.Sprintf("provider %s is at its active booking limit of %d", e.ProviderID, e.Limit)
}

// ValidationError indicates malformed input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError indicates a uniqueness conflict, such as a duplicate review
// for a booking or a booking number collision.
type ConflictError struct {
	Reason string
}

func (e ConflictError) Error() string {
	return e.Reason
}
