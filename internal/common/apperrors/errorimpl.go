package apperrors

import (
	"errors"
	"strings"
)

// appError is the single implementation of Error. The zero statuscode means
// "unset"; derived errors inherit the template's code unless overridden.
type appError struct {
	msg         string
	base        error   // template this error was derived from
	wrapped     []error // attached errors, oldest first
	statuscode  int
	expandError bool
}

// New creates a root-level error. Packages declare their sentinel errors with
// this and derive everything else from them.
func New(msg string) Error {
	return &appError{msg: msg}
}

func (e *appError) Error() string {
	return e.msg
}

// ErrorAll returns the message followed by every wrapped error when expansion
// is enabled, otherwise just the message.
func (e *appError) ErrorAll() string {
	if !e.expandError {
		return e.msg
	}
	var b strings.Builder
	b.WriteString(e.msg)
	for _, err := range e.wrapped {
		b.WriteString("; ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *appError) Unwrap() error {
	return e.base
}

func (e *appError) UnwrapAll() []error {
	return e.wrapped
}

func (e *appError) New(msg string) Error {
	return &appError{
		msg:         msg,
		base:        e,
		statuscode:  e.statuscode,
		expandError: e.expandError,
	}
}

func (e *appError) Msg(msg string) Error {
	return &appError{
		msg:         msg,
		base:        e,
		wrapped:     append([]error{e}, e.wrapped...),
		statuscode:  e.statuscode,
		expandError: e.expandError,
	}
}

func (e *appError) MsgErr(msg string, errs ...error) Error {
	return &appError{
		msg:         msg,
		base:        e,
		wrapped:     append([]error{e}, errs...),
		statuscode:  e.statuscode,
		expandError: e.expandError,
	}
}

func (e *appError) Err(errs ...error) Error {
	return &appError{
		msg:         e.msg,
		base:        e,
		wrapped:     append([]error{e}, errs...),
		statuscode:  e.statuscode,
		expandError: e.expandError,
	}
}

func (e *appError) SetExpandError(flag bool) Error {
	cp := *e
	cp.expandError = flag
	return &cp
}

func (e *appError) SetStatusCode(code int) Error {
	cp := *e
	cp.statuscode = code
	return &cp
}

func (e *appError) StatusCode() int {
	return e.statuscode
}

// Is reports whether target matches this error, its template chain, or any
// wrapped error.
func (e *appError) Is(target error) bool {
	if target == nil {
		return false
	}
	if errors.Is(e.base, target) {
		return true
	}
	for _, err := range e.wrapped {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
