package kobis

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid kobis configuration")
	// ErrNetwork indicates that no response was obtained from the provider
	ErrNetwork = errors.New("kobis: network error")
	// ErrTimeout indicates that no response arrived within the request deadline
	ErrTimeout = errors.New("kobis: request timed out")
	// ErrRequestFailed indicates a non-success status or an unusable body
	ErrRequestFailed = errors.New("kobis: request failed")
	// ErrNotFound indicates the provider returned an empty movie record
	ErrNotFound = errors.New("kobis: movie not found")
	// ErrInvalidDate indicates a target date that is not a YYYYMMDD calendar date
	ErrInvalidDate = errors.New("kobis: invalid date")
	// ErrInvalidMovieCode indicates a blank movie code
	ErrInvalidMovieCode = errors.New("kobis: invalid movie code")
)

// invalidKeyFaultCode is the faultInfo errorCode KOBIS sends for a bad key
const invalidKeyFaultCode = "320010"

// RequestFailedError is returned when the provider answered but the answer
// cannot be used: a non-2xx status, a malformed JSON body, or an in-band
// faultInfo envelope.
type RequestFailedError struct {
	Endpoint   string
	StatusCode int
	Body       string
	Code       string
	Message    string
	Err        error
}

// Error implements the error interface
func (e *RequestFailedError) Error() string {
	msg := fmt.Sprintf("kobis request %s failed: status %d", e.Endpoint, e.StatusCode)
	if e.Code != "" {
		msg += fmt.Sprintf(" (code %s)", e.Code)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the decoding error, if any
func (e *RequestFailedError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrRequestFailed
func (e *RequestFailedError) Is(target error) bool {
	return target == ErrRequestFailed
}

// IsUnauthorized checks if the error indicates a rejected API key. KOBIS
// reports a bad key in a faultInfo envelope with status 200.
func (e *RequestFailedError) IsUnauthorized() bool {
	return e.StatusCode == 401 || e.StatusCode == 403 || e.Code == invalidKeyFaultCode
}

// IsServerError checks if the provider failed on its side
func (e *RequestFailedError) IsServerError() bool {
	return e.StatusCode >= 500
}

// IsFault checks if the provider reported the failure inside a faultInfo envelope
func (e *RequestFailedError) IsFault() bool {
	return e.Code != ""
}

// NetworkError is returned when the request never produced a response.
type NetworkError struct {
	Endpoint string
	Err      error
}

// Error implements the error interface
func (e *NetworkError) Error() string {
	return fmt.Sprintf("kobis: network error calling %s: %v", e.Endpoint, e.Err)
}

// Unwrap returns the transport error
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrNetwork
func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}
