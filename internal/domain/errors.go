package domain

import "fmt"

// NetworkError wraps a transport-level failure, i.e. no HTTP response was
// received at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RequestError carries the status of a non-2xx upstream response.
type RequestError struct {
	Status int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// NotFoundError signals a detail lookup for an identifier the upstream does
// not know. Status carries the upstream code verbatim.
type NotFoundError struct {
	ID     string
	Status int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("coin %q not found (status %d)", e.ID, e.Status)
}

// ParseError signals a malformed or unexpectedly shaped payload, including
// an empty price series.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("parse error: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }
