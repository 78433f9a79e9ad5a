package client

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// NetworkError reports a transport-level failure: the request never reached
// the server or the response could not be read.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error on %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// TimeoutError reports a request that exceeded the client timeout.
type TimeoutError struct {
	Method  string
	Path    string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s %s timed out after %v", e.Method, e.Path, e.Timeout)
}

// APIError carries the status code and error message of a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsTimeout reports whether err is a client-side timeout.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// IsNetwork reports whether err is a transport failure, as opposed to an
// error response the server actually sent.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
