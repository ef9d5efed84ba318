package roster

import "errors"

var (
	// ErrInvalidWeight indicates a zero-weight registration.
	ErrInvalidWeight = errors.New("roster: entry weight must be positive")

	// ErrInvalidDenom indicates a bucket denom outside the configured range.
	ErrInvalidDenom = errors.New("roster: denom outside configured range")

	// ErrDuplicateEntry indicates the owner already registered in this window.
	ErrDuplicateEntry = errors.New("roster: owner already registered for window")

	// ErrWindowNotFound indicates the window record does not exist.
	ErrWindowNotFound = errors.New("roster: window not found")

	// ErrWindowExists indicates a window with this ID was already created.
	ErrWindowExists = errors.New("roster: window already exists")

	// ErrEntryNotFound indicates the referenced entry does not exist.
	ErrEntryNotFound = errors.New("roster: entry not found")

	// ErrOwnerNotFound indicates the owner has no entry in the window.
	ErrOwnerNotFound = errors.New("roster: owner not registered for window")

	// ErrInvalidRecord indicates a stored record fails deserialization.
	ErrInvalidRecord = errors.New("roster: invalid stored record")
)
