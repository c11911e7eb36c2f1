// Package apperr defines the error taxonomy shared by repositories, services
// and the HTTP boundary. Handlers never surface raw driver messages; every
// failure is classified here first.
package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Kind partitions failures by who is at fault and what the caller can do.
type Kind int

const (
	// KindInternal is the fallback for unclassified failures.
	KindInternal Kind = iota
	// KindValidation covers bad or missing input, including unknown columns.
	KindValidation
	// KindNotFound covers lookups that matched no row.
	KindNotFound
	// KindConflict covers uniqueness and foreign-key violations.
	KindConflict
	// KindUnauthorized covers missing, invalid or revoked credentials.
	KindUnauthorized
	// KindUnavailable covers an unreachable or failing store.
	KindUnavailable
)

// Error carries a kind, a client-safe message and the wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with the given kind and message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf builds an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a classified error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the kind from err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Message returns the client-safe message for err.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Msg
	}
	return "internal error"
}

// HTTPStatus maps a classified error onto a response status.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FromStore classifies a database/sql error. Constraint violations become
// conflicts, missing rows become not-found, everything else is treated as
// the store being unavailable.
func FromStore(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return Wrap(KindNotFound, "record not found", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return Wrap(KindConflict, "record already exists", err)
		case pgerrcode.ForeignKeyViolation:
			return Wrap(KindConflict, "referenced record does not exist", err)
		}
		if pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			return Wrap(KindConflict, "constraint violation", err)
		}
		if pgerrcode.IsDataException(pgErr.Code) {
			return Wrap(KindValidation, "invalid value for column", err)
		}
	}

	return Wrap(KindUnavailable, "storage unavailable", err)
}
