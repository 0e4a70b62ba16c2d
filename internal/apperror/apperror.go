package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindUnauthorized
	KindNotFound
	KindValidation
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Reason narrows KindUnauthorized down to what the guard rejected.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNoToken
	ReasonTokenInvalid
	ReasonInsufficientPrivilege
)

type Error struct {
	Kind    Kind
	Reason  Reason
	Status  int
	Message string
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap attaches the underlying cause, keeping Kind, Status and Message.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

func NoToken() *Error {
	return &Error{Kind: KindUnauthorized, Reason: ReasonNoToken, Status: http.StatusUnauthorized,
		Message: "Not authorized, No token"}
}

func TokenInvalid(cause error) *Error {
	return &Error{Kind: KindUnauthorized, Reason: ReasonTokenInvalid, Status: http.StatusUnauthorized,
		Message: "Not authorized, Token failed", Err: cause}
}

// NotAdmin answers 401, not 403. Existing clients rely on that status.
func NotAdmin() *Error {
	return &Error{Kind: KindUnauthorized, Reason: ReasonInsufficientPrivilege, Status: http.StatusUnauthorized,
		Message: "Not authorized as an admin"}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: message}
}

func Validation(message string, details map[string]string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: message, Details: details}
}

func Conflict(message string, cause error) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusBadRequest, Message: message, Err: cause}
}

func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError,
		Message: "An internal server error occurred.", Err: cause}
}

// From returns err as an *Error, treating anything untyped as internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
