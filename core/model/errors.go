package model

import "errors"

// Every failure in the core is a caller invariant violation, not a
// transient condition. Errors are returned wrapped with context and are
// expected to abort the enclosing tick.
var (
	// ErrInvalidTransition indicates a task or mission request incompatible
	// with the current state.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrCapacityExceeded indicates a load would push the carried weight
	// past the drone's limit.
	ErrCapacityExceeded = errors.New("capacity exceeded")
	// ErrInsufficientInventory indicates a removal of more units than are
	// present in a ledger.
	ErrInsufficientInventory = errors.New("insufficient inventory")
	// ErrNegativeQuantity indicates an append of a negative amount.
	ErrNegativeQuantity = errors.New("negative quantity")
	// ErrBookingExceedsAvailability indicates a reservation beyond what the
	// node can still promise.
	ErrBookingExceedsAvailability = errors.New("booking exceeds availability")
	// ErrBookingViolation indicates consumption of more than was reserved.
	ErrBookingViolation = errors.New("booking violation")
	// ErrTemporalOrder indicates a component was resolved at a tick earlier
	// than one it already advanced past.
	ErrTemporalOrder = errors.New("temporal order violation")
)
