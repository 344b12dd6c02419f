package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/anonto42/book-hearts/backend/internal/validators"
)

// Kind classifies a service error
type Kind string

const (
	KindValidation Kind = "VALIDATION_ERROR"
	KindForbidden  Kind = "FORBIDDEN"
	KindNotFound   Kind = "NOT_FOUND"
)

// Reasons carried by forbidden errors
const (
	ReasonUserHaveNotLikedBook    = "user_have_not_liked_book"
	ReasonPartnerHaveNotLikedBook = "partner_have_not_liked_book"
	ReasonHaveNotLikedUser        = "have_not_liked_user"
)

// Error is a rule violation reported to the caller. It is never fatal.
type Error struct {
	Kind    Kind
	Reason  string                 // machine readable, set on forbidden errors
	Message string                 // human readable
	Fields  validators.FieldErrors // set on validation errors
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any *Error of the same kind and reason
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && (t.Reason == "" || e.Reason == t.Reason)
}

// HTTPStatus returns the status code the error maps to
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrForbidden  = &Error{Kind: KindForbidden}
	ErrNotFound   = &Error{Kind: KindNotFound}

	ErrUserHaveNotLikedBook    = Forbidden(ReasonUserHaveNotLikedBook)
	ErrPartnerHaveNotLikedBook = Forbidden(ReasonPartnerHaveNotLikedBook)
	ErrHaveNotLikedUser        = Forbidden(ReasonHaveNotLikedUser)
)

// Validation creates a validation error from per-field messages
func Validation(fields validators.FieldErrors) *Error {
	return &Error{Kind: KindValidation, Message: "The given data was invalid.", Fields: fields}
}

// Forbidden creates a forbidden error with a machine readable reason
func Forbidden(reason string) *Error {
	return &Error{Kind: KindForbidden, Reason: reason, Message: reason}
}

// NotFound creates a not found error
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}
