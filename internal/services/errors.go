package services

import (
	"errors"
	"fmt"

	"github.com/sjperalta/billing-api/internal/repository"
	"gorm.io/gorm"
)

// Common service errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidState       = errors.New("invalid status transition")
	ErrDuplicate          = errors.New("duplicate record")
)

// Error carries a client-facing message for one of the error kinds above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// lookupError turns a missing row into ErrNotFound for entity.
func lookupError(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newError(ErrNotFound, "%s not found", entity)
	}
	return err
}

// createError turns a unique violation into ErrDuplicate with message.
func createError(err error, message string) error {
	if errors.Is(err, repository.ErrDuplicateKey) {
		return newError(ErrDuplicate, "%s", message)
	}
	return err
}
