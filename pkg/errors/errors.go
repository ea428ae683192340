package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// Error carries the call trace, an i18n message key for the user-facing
// message and the http status code to respond with.
type Error struct {
	trace      []string
	messageKey string
	code       int
	raw        error
}

func New(trace, messageKey string, raw error) *Error {
	return &Error{
		trace:      []string{trace},
		messageKey: messageKey,
		code:       http.StatusInternalServerError,
		raw:        raw,
	}
}

// Trace prepends a call location to an existing error. Non *Error values
// get wrapped as internal errors.
func Trace(trace string, err error) *Error {
	if err == nil {
		return nil
	}
	e, ok := err.(*Error)
	if !ok {
		e = New(trace, "error.internal", err)
		return e
	}
	e.trace = append([]string{trace}, e.trace...)
	return e
}

func (e *Error) Code(code int) *Error {
	e.code = code
	return e
}

func (e *Error) StatusCode() int {
	return e.code
}

func (e *Error) MessageKey() string {
	return e.messageKey
}

func (e *Error) Unwrap() error {
	return e.raw
}

func (e *Error) Error() string {
	if e.raw == nil {
		return fmt.Sprintf("%s: %s", strings.Join(e.trace, "."), e.messageKey)
	}
	return fmt.Sprintf("%s: %s: %s", strings.Join(e.trace, "."), e.messageKey, e.raw.Error())
}
