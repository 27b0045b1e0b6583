package usage

import (
	"errors"
	"fmt"
)

// Sentinel error kinds for upstream fetch failures.
var (
	ErrUnreachable     = errors.New("upstream unreachable")
	ErrTimeout         = errors.New("upstream timeout")
	ErrUpstreamStatus  = errors.New("upstream returned non-2xx status")
	ErrInvalidPayload  = errors.New("upstream payload is not valid JSON")
	ErrPayloadTooLarge = errors.New("upstream payload too large")
	ErrInvalidURL      = errors.New("invalid upstream url")
)

// Error describes a failed fetch. Kind is one of the sentinels above; Err is the
// underlying cause, if any.
type Error struct {
	Op     string
	Kind   error
	Status int // upstream HTTP status, zero when no response was received
	Err    error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause for errors.Is / errors.As checks.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Outcome is a short label for metrics and logs.
func (e *Error) Outcome() string {
	switch {
	case errors.Is(e.Kind, ErrTimeout):
		return "timeout"
	case errors.Is(e.Kind, ErrUpstreamStatus):
		return "bad_status"
	case errors.Is(e.Kind, ErrInvalidPayload):
		return "invalid_payload"
	case errors.Is(e.Kind, ErrPayloadTooLarge):
		return "too_large"
	default:
		return "unreachable"
	}
}
