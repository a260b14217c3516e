package llm

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured = errors.New("llm provider not configured")
	ErrEmptyResponse = errors.New("llm returned empty response")
	ErrNoJSON        = errors.New("no JSON found in llm response")
)

// ErrRateLimit is returned for HTTP 429 responses.
type ErrRateLimit struct {
	Err error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable is returned when the backend is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm provider unavailable: %v", e.Err)
	}
	return "llm provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrInvalidResponse wraps output that could not be decoded or failed schema validation.
type ErrInvalidResponse struct {
	Text string
	Err  error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid llm response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }
