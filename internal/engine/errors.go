package engine

import (
	"errors"
	"fmt"

	stealth "github.com/anatolykoptev/go-stealth"
)

// Precondition sentinels, matched with errors.Is.
var (
	ErrMissingAPIKey = errors.New("YouTube API key is not configured (set YOUTUBE_API_KEY)")
	ErrMissingQuery  = errors.New("a search query or a channel ID is required")
	ErrInvalidDate   = errors.New("dates must be formatted as YYYY-MM-DD")
	ErrAlreadyRun    = errors.New("operation has already been run")
)

// PreconditionError reports input that was rejected before any network call.
type PreconditionError struct {
	Err error
}

func (e *PreconditionError) Error() string { return e.Err.Error() }
func (e *PreconditionError) Unwrap() error { return e.Err }

// APIError is a non-success response from the YouTube Data API.
// Message carries the upstream error.message when the body had one.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// SearchError is the fatal failure of a search-list request.
type SearchError struct {
	Page int
	Err  error
}

func (e *SearchError) Error() string {
	return "search API error: " + e.Err.Error()
}

func (e *SearchError) Unwrap() error { return e.Err }

// Transient reports whether the upstream status suggests trying again later
// (rate limiting or a 5xx). The engine itself never retries.
func (e *SearchError) Transient() bool {
	var apiErr *APIError
	if errors.As(e.Err, &apiErr) {
		return stealth.IsRetryableStatus(apiErr.StatusCode)
	}
	return false
}
