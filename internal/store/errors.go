package store

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes store failures.
type ErrorCode string

const (
	// ErrCodeUnavailable indicates the database could not be opened or
	// initialized at all.
	ErrCodeUnavailable ErrorCode = "STORE_UNAVAILABLE"

	// ErrCodeNotReady indicates an operation on a store that is not open.
	ErrCodeNotReady ErrorCode = "STORE_NOT_READY"

	// ErrCodeWrite indicates an I/O or quota failure while writing.
	ErrCodeWrite ErrorCode = "STORE_WRITE"

	// ErrCodeRead indicates an I/O failure or corrupt data while reading.
	ErrCodeRead ErrorCode = "STORE_READ"

	// ErrCodeInvalid indicates a draft that cannot become a record.
	ErrCodeInvalid ErrorCode = "INVALID_RECORD"
)

// Error is returned by every Store operation that fails for a reason other
// than a missing record.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Op names the failed operation ("open", "add", "get", ...).
	Op string

	// ID is the record identity involved, or 0.
	ID int64

	// Err is the underlying cause, if any.
	Err error
}

// Sentinels for errors.Is. Matching compares only the Code.
var (
	ErrUnavailable = &Error{Code: ErrCodeUnavailable}
	ErrNotReady    = &Error{Code: ErrCodeNotReady}
)

// ErrNotFound is returned by Get when no record has the requested identity.
var ErrNotFound = errors.New("record not found")

func (e *Error) Error() string {
	msg := string(e.Code)
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.ID != 0 {
		msg += fmt.Sprintf(" (id=%d)", e.ID)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsUnavailable returns true if err is a store-unavailable error.
func IsUnavailable(err error) bool { return hasCode(err, ErrCodeUnavailable) }

// IsNotReady returns true if err is a store-not-ready error.
func IsNotReady(err error) bool { return hasCode(err, ErrCodeNotReady) }

// IsWriteError returns true if err is a store write error.
func IsWriteError(err error) bool { return hasCode(err, ErrCodeWrite) }

// IsReadError returns true if err is a store read error.
func IsReadError(err error) bool { return hasCode(err, ErrCodeRead) }

// IsInvalid returns true if err reports an invalid draft.
func IsInvalid(err error) bool { return hasCode(err, ErrCodeInvalid) }
