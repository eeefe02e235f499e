package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	// Entity-specific variants below wrap it so callers can match either.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a
	// uniqueness constraint.
	ErrDuplicate = errors.New("entity already exists")

	// ErrAlreadyValidated is returned when a ticket validation is
	// attempted on a ticket that has already been validated.
	ErrAlreadyValidated = errors.New("ticket already validated")

	// Entity-specific "not found" errors.

	ErrUserNotFound    = fmt.Errorf("%w: user", ErrNotFound)
	ErrStationNotFound = fmt.Errorf("%w: station", ErrNotFound)
	ErrTrainNotFound   = fmt.Errorf("%w: train", ErrNotFound)
	ErrTicketNotFound  = fmt.Errorf("%w: ticket", ErrNotFound)

	// Entity-specific "duplicate" errors.

	// ErrUsernameExists indicates a user with the given username already
	// exists.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)

	// ErrEmailExists indicates a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
