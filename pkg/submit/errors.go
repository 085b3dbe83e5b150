package submit

import (
	"fmt"

	"tool-directory/pkg/validation"
)

// RejectionError represents a rejected submission as an error value, for
// callers that are not driving an interactive form.
type RejectionError struct {
	Reason  Reason
	Message string
	Fields  validation.FieldErrors
}

// Error implements the error interface
func (e *RejectionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("submission rejected (%s): %s", e.Reason, e.Message)
	}
	return fmt.Sprintf("submission rejected (%s)", e.Reason)
}

// IsRetryable returns true if re-submitting the same draft may succeed
func (e *RejectionError) IsRetryable() bool {
	switch e.Reason {
	case ReasonTransient:
		return true
	case ReasonDuplicate, ReasonValidation:
		return false
	default:
		return false
	}
}

// UserMessage returns a user-friendly error message
func (e *RejectionError) UserMessage() string {
	switch e.Reason {
	case ReasonDuplicate:
		return MsgDuplicate
	case ReasonTransient:
		return MsgTransient
	case ReasonValidation:
		if _, msg, ok := e.Fields.First(); ok {
			return msg
		}
		if e.Message != "" {
			return e.Message
		}
		return "The submission was rejected by the server."
	default:
		return e.Message
	}
}

// User-facing messages for rejections.
const (
	MsgDuplicate = "Tool has already been added"
	MsgTransient = "Something went wrong. Please try again."
)
