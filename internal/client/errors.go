package client

import (
	"errors"
	"fmt"
)

// ErrRequestFailed is the single failure kind of the client. Transport
// failures and non-2xx responses both match it.
var ErrRequestFailed = errors.New("request failed")

type RequestError struct {
	Method     string
	Path       string
	StatusCode int    // zero when no response was received
	Message    string // server error message, if the body carried one
	Err        error
}

func (e *RequestError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	default:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, ErrRequestFailed)
	}
}

func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
