// Package submit defines the submission contract the form talks to and a
// simulator that stands in for the real directory API.
package submit

import (
	"context"

	"tool-directory/pkg/models"
	"tool-directory/pkg/validation"
)

// Status is the coarse result of a submission attempt.
type Status string

const (
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Reason categorizes a rejection.
type Reason string

const (
	ReasonDuplicate  Reason = "duplicate"
	ReasonTransient  Reason = "transient"
	ReasonValidation Reason = "validation"
)

// Outcome is the result of a submission attempt: accepted, or rejected with a
// reason.
type Outcome struct {
	Status  Status
	Reason  Reason
	Message string

	// Tool is the stored entry when the collaborator returns one.
	Tool *models.Tool
	// Fields carries server-side field errors for validation rejections.
	Fields validation.FieldErrors
}

// Accepted returns a successful outcome.
func Accepted() Outcome {
	return Outcome{Status: StatusAccepted}
}

// Rejected returns a failed outcome with the given reason.
func Rejected(reason Reason, message string) Outcome {
	return Outcome{Status: StatusRejected, Reason: reason, Message: message}
}

// IsAccepted reports whether the submission was accepted.
func (o Outcome) IsAccepted() bool {
	return o.Status == StatusAccepted
}

// Err returns nil for accepted outcomes and a *RejectionError otherwise.
func (o Outcome) Err() error {
	if o.IsAccepted() {
		return nil
	}
	return &RejectionError{Reason: o.Reason, Message: o.Message, Fields: o.Fields}
}

// Submitter sends a validated draft somewhere and reports the outcome. A
// returned error means the attempt was abandoned (for example the context
// was cancelled) or never reached a collaborator; rejections are outcomes,
// not errors.
type Submitter interface {
	Submit(ctx context.Context, draft models.Draft) (Outcome, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, draft models.Draft) (Outcome, error)

func (f SubmitterFunc) Submit(ctx context.Context, draft models.Draft) (Outcome, error) {
	return f(ctx, draft)
}
