// Package llm - errors.go defines the error taxonomy for gateway calls.
package llm

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey indicates no credential was configured. It is surfaced
// before any remote call is attempted.
var ErrMissingAPIKey = errors.New("API key is required (set GEMINI_API_KEY or pass --api-key)")

// APICallError indicates the gateway itself failed: unreachable service,
// rejected request, or an empty response. Callers treat it as fatal for the
// operation in progress.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm api call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("llm api call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError indicates the gateway answered but the response could not be
// decoded into the expected structure. Kept distinct from APICallError so
// callers can tell "service unreachable" from "service answered nonsense".
type ParseError struct {
	Message string
	Raw     string
	Cause   error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("llm response parse failed: %s", e.Message)
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	if e.Raw != "" {
		msg += fmt.Sprintf(" (raw: %.200s)", e.Raw)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
