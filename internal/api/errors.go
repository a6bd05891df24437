// ABOUTME: Error taxonomy for Record Store calls and their display strings.
// ABOUTME: Server errors, unreachable backend, and client-side faults.
package api

import (
	"context"
	"errors"
	"fmt"
)

// NoResponseMessage is shown when a request got no answer at all.
const NoResponseMessage = "No response from server - is the backend running?"

// StatusError is a response with a non-success status.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api: %s %s returned %d", e.Method, e.Path, e.Status)
}

// NoResponseError is a request that was sent but never answered: the
// backend is down, unreachable, or too slow.
type NoResponseError struct {
	Method string
	Path   string
	Err    error
}

func (e *NoResponseError) Error() string {
	return fmt.Sprintf("api: %s %s: no response: %v", e.Method, e.Path, e.Err)
}

func (e *NoResponseError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a 404 from the store.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == 404
}

// Describe converts any error into the message shown to the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var se *StatusError
	if errors.As(err, &se) {
		return fmt.Sprintf("Server Error: %d", se.Status)
	}
	var nr *NoResponseError
	if errors.As(err, &nr) {
		return NoResponseMessage
	}
	return "Error: " + err.Error()
}

// classify wraps a transport error from http.Client.Do. Every transport
// failure counts as "no response" except a caller-side cancellation.
func classify(method, path string, err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	return &NoResponseError{Method: method, Path: path, Err: err}
}
