// Package apperr defines the domain error taxonomy shared by services and
// repositories. Handlers map these onto HTTP status codes; nothing below the
// handler layer knows about HTTP.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned for unknown usernames AND wrong
	// passwords — the two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrPermissionDenied is returned when the session role does not permit
	// the attempted operation. The repository is never called in that case.
	ErrPermissionDenied = errors.New("permission denied")
)

// ValidationError reports the first failing field check on a candidate
// record. One error, one field, one reason.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// DuplicateKeyError reports an insert that collides with a live item_id.
type DuplicateKeyError struct {
	ItemID string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("item %q already exists", e.ItemID)
}

// NotFoundError reports an update/delete/read against an absent item_id.
type NotFoundError struct {
	ItemID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item %q not found", e.ItemID)
}

// StorageError wraps any underlying persistence failure so callers can
// distinguish "the store broke" from domain outcomes.
type StorageError struct {
	Op    string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error { return e.Cause }

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsDuplicateKey reports whether err is (or wraps) a DuplicateKeyError.
func IsDuplicateKey(err error) bool {
	var dk *DuplicateKeyError
	return errors.As(err, &dk)
}
