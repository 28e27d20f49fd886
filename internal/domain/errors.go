package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// NetworkError covers unreachable hosts, timeouts and anything else the
// transport failed on before a status code came back.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error on %s: %v", e.Op, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a 4xx/5xx rejection from the server.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %d", e.Status)
	}
	return fmt.Sprintf("http %d: %s", e.Status, e.Body)
}

// DecodeError means the server answered 2xx but the body was not what we expected.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode %s: %v", e.Op, e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// ValidationError is a client-side form/field check failure; nothing was sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Reason) }

func IsUnauthorized(err error) bool { return hasStatus(err, http.StatusUnauthorized) }
func IsNotFound(err error) bool     { return hasStatus(err, http.StatusNotFound) }

func hasStatus(err error, status int) bool {
	var he *HTTPError
	return errors.As(err, &he) && he.Status == status
}
