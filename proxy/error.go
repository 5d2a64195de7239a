package proxy

import (
	"errors"
	"fmt"
)

var (
	// ErrMethod is returned when a Call names a method outside
	// GET/POST/PUT/PATCH/DELETE.
	ErrMethod = errors.New("unsupported http method")
	// ErrStatus is the sentinel error wrapped by [StatusError].
	ErrStatus = errors.New("unexpected status code")
	// ErrAuthFailure is joined with [ErrStatus] when the server
	// responds with 401 Unauthorized or 403 Forbidden.
	ErrAuthFailure = errors.New("auth failure")
	// ErrTransport wraps connectivity and timeout failures forwarded
	// from the underlying transport.
	ErrTransport = errors.New("transport failed")
	// ErrCancelled wraps the failure delivered for a cancelled call.
	ErrCancelled = errors.New("call cancelled")
	// ErrDecode wraps failures decoding a 2xx response body. A decode
	// failure downgrades the whole call; there is no partial success.
	ErrDecode = errors.New("decoding response body")
)

// StatusError is delivered when the HTTP response status code falls
// outside the 2xx range. Message holds the response body for text
// content types, otherwise the standard reason phrase for the code,
// and may be empty when the code has none.
type StatusError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v: %d", e.Err, e.StatusCode)
	}
	return fmt.Sprintf("%v: %d: %s", e.Err, e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	return e.Err
}
