package genclient

import (
	"fmt"
	"time"
)

// GenerationError represents a failed generation request: a non-2xx status,
// an unreadable body, or a response from which no valid payload could be
// recovered. It is surfaced to the user with a retry affordance; the client
// never substitutes fabricated data for it.
type GenerationError struct {
	Endpoint string
	Status   int
	Message  string
	Cause    error
}

func (e *GenerationError) Error() string {
	msg := fmt.Sprintf("generation failed for %s", e.Endpoint)
	if e.Status != 0 {
		msg += fmt.Sprintf(": status %d", e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// GenerationTimeoutError represents a generation request that exceeded the
// client's bounded timeout. Distinct from GenerationError so callers can
// message the two conditions differently.
type GenerationTimeoutError struct {
	Endpoint string
	Timeout  time.Duration
}

func (e *GenerationTimeoutError) Error() string {
	return fmt.Sprintf("generation timed out for %s after %s", e.Endpoint, e.Timeout)
}
