package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrCustomerNotFound = &notFoundError{what: "customer"}
	ErrRoomNotFound     = &notFoundError{what: "room"}

	ErrBookingTooSoon     = errors.New("booking too soon after the previous one")
	ErrInsufficientPoints = errors.New("not enough loyalty points")
	ErrInvalidDateRange   = errors.New("check-out must be after check-in")
	ErrNoSuitableRoom     = errors.New("no suitable room available")
	ErrDuplicateRoom      = errors.New("room number already exists")
	ErrInvalidCustomer    = errors.New("invalid customer")
)

// notFoundError matches ErrNotFound with errors.Is.
type notFoundError struct{ what string }

func (e *notFoundError) Error() string        { return e.what + " not found" }
func (e *notFoundError) Is(target error) bool { return target == ErrNotFound }
