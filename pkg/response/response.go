package response

import (
	"errors"
)

const (
	KindInvalidInput    = "INVALID_INPUT"
	KindNotFound        = "NOT_FOUND"
	KindUpstreamFailure = "UPSTREAM_FAILURE"
)

type Error struct {
	Code  int
	Kind  string
	Err   error
	cause error
}

// Error reports the wrapped cause when there is one, so callers see the
// upstream message rather than the generic sentinel text.
func (e *Error) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Kind == t.Kind && e.Err.Error() == t.Err.Error()
}

func NewError(code int, err string) error {
	return &Error{Code: code, Err: errors.New(err)}
}

func NewKindError(code int, kind string, err string) error {
	return &Error{Code: code, Kind: kind, Err: errors.New(err)}
}

// Wrap attaches cause to the sentinel base. The result still matches base
// with errors.Is and unwraps to cause.
func Wrap(base error, cause error) error {
	var b *Error
	if !errors.As(base, &b) {
		return cause
	}
	if cause == nil {
		return base
	}
	return &Error{Code: b.Code, Kind: b.Kind, Err: b.Err, cause: cause}
}
