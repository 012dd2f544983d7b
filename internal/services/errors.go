package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ValidationError reports missing or out-of-range input. Field is the JSON
// field name the message refers to.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConflictError reports a social action invalid in the current state, such as
// a duplicate friend request.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// AuthorizationError reports an action the caller is not permitted to take.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

// PersistenceError wraps a storage failure. Its message is safe to surface;
// the underlying error is for logs only.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return "storage failure during " + e.Op }

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsDuplicateKey reports whether err is a unique-index violation. The string
// checks cover the postgres and sqlite drivers, which do not always translate
// to gorm.ErrDuplicatedKey.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
