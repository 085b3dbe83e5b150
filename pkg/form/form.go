// Package form implements the submission form state machine: it owns the
// draft and its field errors, validates on submit, and tracks whether a
// submission is in flight.
//
//	Idle --submit(valid)--> Submitting --accepted--> Idle (draft reset)
//	                                   --rejected--> Idle (draft kept)
package form

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"tool-directory/pkg/models"
	"tool-directory/pkg/notify"
	"tool-directory/pkg/submit"
	"tool-directory/pkg/validation"
)

// State of the form.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	// ErrSubmitting is returned when submit is requested while a submission
	// is already in flight.
	ErrSubmitting = errors.New("submission already in progress")
	// ErrInvalid is returned when the draft fails validation. The field
	// errors are available from Errors.
	ErrInvalid = errors.New("draft has invalid fields")
	// ErrStaleTicket is returned when a result arrives for a submission the
	// form no longer waits on.
	ErrStaleTicket = errors.New("submission is no longer in flight")
)

// Ticket identifies one in-flight submission and carries the draft snapshot
// that was validated.
type Ticket struct {
	ID    uint64
	Draft models.Draft
}

// Form is safe for concurrent use, although a single UI loop is expected to
// drive it.
type Form struct {
	mu       sync.Mutex
	draft    models.Draft
	errs     validation.FieldErrors
	state    State
	inFlight uint64
	seq      uint64

	validator validation.Validator
	submitter submit.Submitter
	sink      *notify.Sink
	log       *zap.SugaredLogger
}

// Option configures a Form.
type Option func(*Form)

// WithValidator selects the validation strategy. The schema validator is
// used by default.
func WithValidator(v validation.Validator) Option {
	return func(f *Form) { f.validator = v }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(f *Form) { f.log = l }
}

// New creates an empty, idle form.
func New(submitter submit.Submitter, sink *notify.Sink, opts ...Option) *Form {
	f := &Form{
		submitter: submitter,
		sink:      sink,
		validator: validation.Schema(),
		log:       zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Set updates one field and clears its error.
func (f *Form) Set(field models.Field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.draft = f.draft.Set(field, value)
	delete(f.errs, field)
}

// SetDate stores a picked calendar date as yyyy-MM-dd.
func (f *Form) SetDate(t time.Time) {
	f.Set(models.FieldDate, models.FormatDate(t))
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() models.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Errors returns a copy of the current field errors.
func (f *Form) Errors() validation.FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs.Clone()
}

// Error returns the error message for one field, or "".
func (f *Form) Error(field models.Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs[field]
}

// State returns the current state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Submitting reports whether a submission is in flight. UIs disable the
// submit trigger while this is true.
func (f *Form) Submitting() bool {
	return f.State() == StateSubmitting
}

// Reset empties the draft and its errors. It does not affect an in-flight
// submission.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = models.Draft{}
	f.errs = nil
}

// Begin validates the draft and, when it is valid, moves the form to
// Submitting. The caller must hand the ticket's draft to a Submitter and
// report back with Complete or Fail.
func (f *Form) Begin() (Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateSubmitting {
		return Ticket{}, ErrSubmitting
	}

	errs := f.validator.Validate(f.draft)
	if !errs.Valid() {
		f.errs = errs
		f.log.Debugw("submit blocked by validation", "fields", len(errs))
		return Ticket{}, ErrInvalid
	}

	f.errs = nil
	f.seq++
	f.inFlight = f.seq
	f.state = StateSubmitting
	f.log.Debugw("submit started", "ticket", f.seq)
	return Ticket{ID: f.seq, Draft: f.draft}, nil
}

// Complete applies the outcome of the submission identified by t and returns
// the form to Idle. Accepted outcomes reset the draft; rejections keep it and
// surface an error through the notification sink.
func (f *Form) Complete(t Ticket, o submit.Outcome) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateSubmitting || f.inFlight != t.ID {
		return ErrStaleTicket
	}

	f.state = StateIdle
	f.inFlight = 0

	fields := f.sink.Deliver(o)
	if o.IsAccepted() {
		f.draft = models.Draft{}
		f.errs = nil
		return nil
	}
	f.errs = fields
	return nil
}

// Fail reports that the submitter returned an error instead of an outcome.
// Cancellation abandons the submission silently; any other error, timeouts
// included, is surfaced as a transient rejection.
func (f *Form) Fail(t Ticket, err error) error {
	if errors.Is(err, context.Canceled) {
		return f.abandon(t.ID)
	}
	f.log.Warnw("submit failed", "ticket", t.ID, "err", err)
	return f.Complete(t, submit.Rejected(submit.ReasonTransient, err.Error()))
}

// Send hands the ticket's draft to the form's submitter. Event-loop callers
// run it off the loop and report the result with Complete or Fail.
func (f *Form) Send(ctx context.Context, t Ticket) (submit.Outcome, error) {
	return f.submitter.Submit(ctx, t.Draft)
}

// Abandon drops any in-flight submission without notifying the user. A result
// that arrives later is ignored.
func (f *Form) Abandon() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateIdle
	f.inFlight = 0
}

func (f *Form) abandon(id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateSubmitting || f.inFlight != id {
		return ErrStaleTicket
	}
	f.state = StateIdle
	f.inFlight = 0
	f.log.Debugw("submit abandoned", "ticket", id)
	return nil
}

// Submit runs a whole submission synchronously: validate, call the
// submitter, and apply the outcome. It returns ErrInvalid or ErrSubmitting
// when the submission could not start, and context.Canceled when it was
// abandoned. Like Fail, any other error, timeouts included, becomes a
// transient rejection.
func (f *Form) Submit(ctx context.Context) (submit.Outcome, error) {
	t, err := f.Begin()
	if err != nil {
		return submit.Outcome{}, err
	}

	out, err := f.Send(ctx, t)
	if errors.Is(err, context.Canceled) {
		_ = f.abandon(t.ID)
		return submit.Outcome{}, err
	}
	if err != nil {
		f.log.Warnw("submit failed", "ticket", t.ID, "err", err)
		out = submit.Rejected(submit.ReasonTransient, err.Error())
	}

	if err := f.Complete(t, out); err != nil {
		return submit.Outcome{}, err
	}
	return out, nil
}
