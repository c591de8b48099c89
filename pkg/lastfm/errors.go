package lastfm

import (
	"errors"
	"fmt"
)

// Error represents a Last.fm API error.
//
// Last.fm reports most API failures as a JSON body of the form
// {"error": 6, "message": "The artist you supplied could not be found"}.
type Error struct {
	Code    int    // Last.fm error code
	Message string // Error message from Last.fm
}

// Error returns the error message.
func (e *Error) Error() string {
	return fmt.Sprintf("lastfm: error %d: %s", e.Code, e.Message)
}

// Is checks if the target error is a Last.fm error with the same code.
//
// This allows errors.Is() to work with *Error types.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Temporary returns true if the error is temporary.
//
// The following Last.fm error codes are considered temporary:
//   - 11: Service Offline - temporarily unavailable
//   - 16: Service Temporarily Unavailable
//   - 29: Rate Limit Exceeded
//
// The client never retries on its own; callers decide what to do.
func (e *Error) Temporary() bool {
	switch e.Code {
	case ErrCodeServiceOffline, ErrCodeTempUnavailable, ErrCodeRateLimitExceeded:
		return true
	default:
		return false
	}
}

// Common Last.fm error codes.
const (
	ErrCodeInvalidService       = 2
	ErrCodeInvalidMethod        = 3
	ErrCodeAuthenticationFailed = 4
	ErrCodeInvalidFormat        = 5
	ErrCodeInvalidParameters    = 6
	ErrCodeInvalidResourceSpec  = 7
	ErrCodeOperationFailed      = 8
	ErrCodeInvalidSessionKey    = 9
	ErrCodeInvalidAPIKey        = 10
	ErrCodeServiceOffline       = 11
	ErrCodeSubscribersOnly      = 12
	ErrCodeInvalidSignature     = 13
	ErrCodeUnauthorizedToken    = 14
	ErrCodeExpiredToken         = 15
	ErrCodeTempUnavailable      = 16
	ErrCodeRateLimitExceeded    = 29
)

// StatusError is returned when the API answers with a non-2xx HTTP status.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("lastfm: bad status: %s", e.Status)
}

// DecodeError is returned when a response body is missing a key or a
// value has the wrong shape.
type DecodeError struct {
	Key string // JSON key that could not be decoded
	Err error  // Underlying cause, may be nil for a missing key
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("lastfm: %s key not found", e.Key)
	}
	return fmt.Sprintf("lastfm: invalid %s value: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Predefined errors for common cases.
var (
	// ErrInvalidConfig is returned when client configuration is invalid.
	ErrInvalidConfig = errors.New("lastfm: invalid configuration")
)

// missingKey reports a key absent from a response body.
func missingKey(key string) error {
	return &DecodeError{Key: key}
}

// invalidValue reports a key whose value could not be decoded.
func invalidValue(key string, err error) error {
	return &DecodeError{Key: key, Err: err}
}
