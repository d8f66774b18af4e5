package domain

import (
	"errors"
	"fmt"
)

// FetchKind classifies an outbound API failure. Callers decide what to log
// and which message to surface based on the kind, never on raw error text.
type FetchKind int

const (
	// FetchTimeout covers request deadlines and network timeouts.
	FetchTimeout FetchKind = iota
	// FetchHTTPStatus covers non-2xx responses; StatusCode carries the code.
	FetchHTTPStatus
	// FetchParse covers undecodable bodies and responses missing required fields.
	FetchParse
	// FetchNetwork covers other transport failures, including a tripped breaker.
	FetchNetwork
)

// String returns a stable identifier for the kind, usable as a metric label.
func (k FetchKind) String() string {
	switch k {
	case FetchTimeout:
		return "timeout"
	case FetchHTTPStatus:
		return "http_status"
	case FetchParse:
		return "parse_error"
	case FetchNetwork:
		return "network"
	}
	return "unknown"
}

// FetchError is a typed failure from the NWS client adapter.
type FetchError struct {
	Kind       FetchKind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchHTTPStatus:
		return fmt.Sprintf("nws fetch %s: http status %d", e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("nws fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Reason names the failure kind in user-facing language. No internal detail
// (URLs, stack traces) leaks through here.
func (e *FetchError) Reason() string {
	switch e.Kind {
	case FetchTimeout:
		return "the request timed out"
	case FetchHTTPStatus:
		return fmt.Sprintf("the weather service returned HTTP %d", e.StatusCode)
	case FetchParse:
		return "the weather service returned an invalid response"
	case FetchNetwork:
		return "the weather service could not be reached"
	}
	return "an unexpected error occurred"
}

// FailureReason maps any error onto a user-facing phrase, preferring the
// typed classification when present.
func FailureReason(err error) string {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Reason()
	}
	return "an unexpected error occurred"
}
