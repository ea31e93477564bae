package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the entity or relationship does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a write collided with existing state, such as a
	// taken identifier or a duplicate one-to-one relationship.
	ErrConflict = errors.New("conflict")

	// ErrIdentifierMismatch indicates the identifier in the request path
	// differs from the identifier carried in the body.
	ErrIdentifierMismatch = fmt.Errorf("%w: identifier mismatch", ErrConflict)

	// ErrInvalidKeyType indicates an allocator was asked to issue identifiers
	// for a non-integer key space.
	ErrInvalidKeyType = errors.New("invalid key type")

	// ErrPartialWrite indicates a multi-store operation failed after at least
	// one store had already been written.
	ErrPartialWrite = errors.New("partial write")
)

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err is or wraps ErrConflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// CheckID rejects a body id that differs from the path id. A zero body id
// means the caller left it out and is accepted.
func CheckID(pathID, bodyID int) error {
	if bodyID != 0 && bodyID != pathID {
		return fmt.Errorf("%w: path id %d, body id %d", ErrIdentifierMismatch, pathID, bodyID)
	}
	return nil
}

// CheckPatchID is CheckID for partial objects, where a nil id is unset.
func CheckPatchID(pathID int, bodyID *int) error {
	if bodyID != nil && *bodyID != pathID {
		return fmt.Errorf("%w: path id %d, body id %d", ErrIdentifierMismatch, pathID, *bodyID)
	}
	return nil
}
