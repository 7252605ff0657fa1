package shop

import (
	"errors"

	"github.com/micaelyMelo/OficinaMecanica/internal/schema"
)

// Errors returned by repository operations.
//
// Check them with errors.Is:
//
//	if errors.Is(err, shop.ErrDuplicateKey) {
//	    // ask for another tax id
//	}
var (
	// ErrInvalidField is returned when a field fails its syntax check.
	// The concrete error is a *schema.FieldError naming the field.
	ErrInvalidField = schema.ErrInvalidField

	// ErrDuplicateKey is returned when registering a tax id or plate that
	// is already taken. Load reports repeated keys in a file with it too.
	ErrDuplicateKey = schema.ErrDuplicateKey

	// ErrNotFound is returned by update and delete when no record has the
	// given key.
	ErrNotFound = errors.New("not found")

	// ErrOwnerNotFound is returned when registering a vehicle whose owner
	// tax id matches no client.
	ErrOwnerNotFound = errors.New("owner not found")

	// ErrVehicleNotFound is returned when opening an order for a plate that
	// matches no vehicle.
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrInvalidDate is returned when an entry date is not a valid dd/mm/yyyy
	// calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidStatus is returned when a status is outside the four known
	// values.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrPersistence is returned when a collection file cannot be written.
	// The in-memory change that triggered the write has already been applied.
	ErrPersistence = errors.New("persistence failure")
)

// IsUserError returns true if err was caused by the input of the operation,
// meaning the caller can correct the input and retry.
func IsUserError(err error) bool {
	if err == nil {
		return false
	}

	for _, target := range []error{
		ErrInvalidField,
		ErrDuplicateKey,
		ErrNotFound,
		ErrOwnerNotFound,
		ErrVehicleNotFound,
		ErrInvalidDate,
		ErrInvalidStatus,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsPersistenceError returns true if the operation changed the in-memory
// collections but could not write them back to disk.
func IsPersistenceError(err error) bool {
	return errors.Is(err, ErrPersistence)
}
