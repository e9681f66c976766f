package api

import "fmt"

// StatusError is a non-success response from the server, carrying the
// server-supplied message when one was present in the body.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// DecodeError is a response payload that failed schema validation. The
// containers never consume unvalidated shapes; a payload that decodes but
// violates the contract is surfaced as this error kind.
type DecodeError struct {
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid response payload: %s: %s", e.Field, e.Reason)
}
