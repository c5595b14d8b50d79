package service

import (
	"errors"
	"fmt"
)

// The services return a small closed set of error types; handlers own the
// translation into responses. Nothing here is fatal: not-found becomes a
// generic 404, validation failures are re-presented with the submitted
// input, and authorization failures become redirects rather than errors.

// NotFoundError reports an absent resource looked up by key.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// FieldError annotates a single invalid field of a submitted payload.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries field-level annotations for a rejected payload.
// The original input is not discarded; handlers echo it back to the actor
// alongside these annotations.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s %s", e.Fields[0].Field, e.Fields[0].Reason)
}

// AuthRequiredError means an anonymous actor attempted a write. The actor
// is sent to the login flow, not handed a hard error.
type AuthRequiredError struct{}

func (e *AuthRequiredError) Error() string { return "authentication required" }

// ForbiddenError means an authenticated actor attempted something only the
// resource owner may do. Reference behavior is a silent redirect to a safe
// fallback view, so the error carries the destination.
type ForbiddenError struct {
	RedirectTo string
}

func (e *ForbiddenError) Error() string { return "forbidden" }

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
