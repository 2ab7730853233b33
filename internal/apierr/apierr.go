// Package apierr carries validation and access failures from the service
// layer out to the HTTP edge as field-keyed, status-coded errors.
package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// Messages reused from the public API contract.
const (
	MsgNotAllowed        = "NOT_ALLOWED"
	MsgForbiddenName     = "FORBIDDEN_NAME"
	MsgIncorrectYear     = "INCORRECT_RELEASE_YEAR"
	MsgIncorrectGenre    = "INCORRECT_GENRE"
	MsgIncorrectCategory = "INCORRECT_CATEGORY"
	MsgMissingEmail      = "MISSING_EMAIL"
	MsgMissingUsername   = "MISSING_USERNAME"
	MsgMissingCode       = "MISSING_CODE"
	MsgUsernameExists    = "USERNAME_EXISTS"
	MsgEmailExists       = "EMAIL_EXISTS"
)

// Error is a request failure with an HTTP status and, for 400-class
// failures, the field the message belongs to.
type Error struct {
	Status  int
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Validation reports a malformed or disallowed field value.
func Validation(field, message string) *Error {
	return &Error{Status: http.StatusBadRequest, Field: field, Message: message}
}

// Conflict reports a duplicate-identity failure. The contract keeps these
// in the 400 class rather than 409.
func Conflict(field, message string) *Error {
	return &Error{Status: http.StatusBadRequest, Field: field, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// BadRequest reports a non-field failure such as a confirmation code mismatch.
func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// IsUniqueViolation reports whether err is a postgres unique-constraint
// violation (SQLSTATE 23505), the atomic backstop for races on
// username/email/slug and the one-review-per-author-per-title rule.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ViolatedConstraint returns the name of the constraint a unique violation
// fired on, or "" when err is not one. Callers use it to pick the field
// the conflict message belongs to.
func ViolatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName
	}
	return ""
}

// IsForeignKeyViolation reports whether err is a postgres foreign-key
// violation (SQLSTATE 23503), raised when deleting a row other rows still
// reference.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
