package content

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned for identifiers the like counter has never seen.
var ErrNotFound = errors.New("item not found")

const genericUpstreamMessage = "error fetching articles from upstream"

// UpstreamError reports an unreachable or failing upstream service.
type UpstreamError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if msg == "" {
		msg = genericUpstreamMessage
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ValidationError rejects malformed parameters before any upstream call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Invalid is a shorthand for building a *ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// ErrorMessage returns the message callers should show for an acquisition
// failure: the upstream message when one is known, otherwise a generic one.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return genericUpstreamMessage
}
