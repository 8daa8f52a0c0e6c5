package sky

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the storage engine. Callers classify
// failures with errors.Is; anything else is a wrapped filesystem error.
var (
	// ErrCorrupt indicates an on-disk structure that violates the file
	// format: a truncated record, an inconsistent count, or a length
	// prefix overrunning its buffer.
	ErrCorrupt = errors.New("sky: corrupt file")

	// ErrLockHeld indicates another live process holds the object file's
	// exclusive lock.
	ErrLockHeld = errors.New("sky: object file locked")

	// ErrUnknownReference indicates an event cites an action or property
	// id absent from its registry. This is invalid input, not corruption.
	ErrUnknownReference = errors.New("sky: unknown registry id")

	// ErrTooLarge indicates a value the wire format cannot represent: a
	// string payload or registry name over 64 KiB, or more properties on
	// one event than a 16-bit count can hold. This is invalid input, not
	// corruption.
	ErrTooLarge = errors.New("sky: value too large for wire format")
)

func corruptf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(format, args...))
}
