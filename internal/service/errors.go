package service

import (
	"errors"
	"fmt"
)

var (
	// ErrServiceUnavailable is returned when the upstream credential is not configured.
	ErrServiceUnavailable = errors.New("GEMINI_API_KEY not set on server")

	// ErrUpstreamFormat is returned when a successful upstream reply has no text.
	ErrUpstreamFormat = errors.New("unexpected upstream response format")
)

// UpstreamError is a non-2xx answer from the language model API.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream request failed with status %d: %s", e.StatusCode, e.Body)
}

// NetworkError is a transport-level failure reaching the language model API.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("upstream network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
