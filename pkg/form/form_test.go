package form

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"tool-directory/pkg/models"
	"tool-directory/pkg/notify"
	"tool-directory/pkg/submit"
	"tool-directory/pkg/validation"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var valid = models.Draft{
	Name:        "fzf",
	URL:         "github.com/junegunn/fzf",
	Description: "A command-line fuzzy finder",
	Tags:        "cli, search",
	Date:        "2024-06-01",
}

type countingSubmitter struct {
	calls   atomic.Int32
	outcome submit.Outcome
	err     error
}

func (c *countingSubmitter) Submit(ctx context.Context, d models.Draft) (submit.Outcome, error) {
	c.calls.Add(1)
	return c.outcome, c.err
}

func newForm(s submit.Submitter) (*Form, *notify.Toaster) {
	toaster := notify.NewToaster(time.Minute, nil)
	return New(s, notify.NewSink(toaster, nil)), toaster
}

func fill(f *Form, d models.Draft) {
	for _, field := range models.Fields {
		f.Set(field, d.Get(field))
	}
}

func TestSubmit_InvalidDraftIsNoOp(t *testing.T) {
	sub := &countingSubmitter{outcome: submit.Accepted()}
	f, toaster := newForm(sub)

	d := valid
	d.URL = "not a url"
	d.Description = "too short"
	fill(f, d)

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, StateIdle, f.State())
	assert.Zero(t, sub.calls.Load())
	assert.Equal(t, validation.FieldErrors{
		models.FieldURL:         validation.MsgInvalidURL,
		models.FieldDescription: validation.MsgDescriptionRequired,
	}, f.Errors())
	assert.Equal(t, d, f.Draft())

	_, ok := toaster.Current()
	assert.False(t, ok, "validation errors never reach the notification sink")
}

func TestSubmit_AcceptedResetsDraft(t *testing.T) {
	sub := &countingSubmitter{outcome: submit.Accepted()}
	f, toaster := newForm(sub)
	fill(f, valid)

	out, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, out.IsAccepted())
	assert.Equal(t, int32(1), sub.calls.Load())
	assert.Equal(t, StateIdle, f.State())
	assert.True(t, f.Draft().IsEmpty())
	assert.Empty(t, f.Errors())

	toast, ok := toaster.Current()
	require.True(t, ok)
	assert.Equal(t, notify.KindSuccess, toast.Kind)
}

func TestSubmit_DuplicateKeepsDraft(t *testing.T) {
	sub := &countingSubmitter{outcome: submit.Rejected(submit.ReasonDuplicate, "duplicate")}
	f, toaster := newForm(sub)
	fill(f, valid)

	out, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, submit.ReasonDuplicate, out.Reason)
	assert.Equal(t, "Tool has already been added", f.Error(models.FieldName))
	assert.Equal(t, valid, f.Draft())
	assert.Equal(t, StateIdle, f.State())

	_, ok := toaster.Current()
	assert.False(t, ok)
}

func TestSubmit_TransientShowsToast(t *testing.T) {
	sub := &countingSubmitter{outcome: submit.Rejected(submit.ReasonTransient, "transient failure")}
	f, toaster := newForm(sub)
	fill(f, valid)

	_, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, valid, f.Draft())
	assert.Empty(t, f.Errors())

	toast, ok := toaster.Current()
	require.True(t, ok)
	assert.Equal(t, notify.KindError, toast.Kind)
	assert.Equal(t, submit.MsgTransient, toast.Message)
}

func TestSubmit_SubmitterErrorBecomesTransient(t *testing.T) {
	sub := &countingSubmitter{err: errors.New("connection refused")}
	f, toaster := newForm(sub)
	fill(f, valid)

	out, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, submit.ReasonTransient, out.Reason)
	_, ok := toaster.Current()
	assert.True(t, ok)
}

func TestBegin_ReentrantSubmitIsNoOp(t *testing.T) {
	f, _ := newForm(&countingSubmitter{})
	fill(f, valid)

	ticket, err := f.Begin()
	require.NoError(t, err)
	assert.Equal(t, StateSubmitting, f.State())
	assert.True(t, f.Submitting())
	assert.Equal(t, valid, ticket.Draft)

	_, err = f.Begin()
	assert.ErrorIs(t, err, ErrSubmitting)
	assert.Equal(t, StateSubmitting, f.State())

	require.NoError(t, f.Complete(ticket, submit.Accepted()))
	assert.Equal(t, StateIdle, f.State())
}

func TestComplete_StaleTicketIgnored(t *testing.T) {
	f, _ := newForm(&countingSubmitter{})
	fill(f, valid)

	first, err := f.Begin()
	require.NoError(t, err)
	f.Abandon()
	assert.Equal(t, StateIdle, f.State())

	second, err := f.Begin()
	require.NoError(t, err)

	assert.ErrorIs(t, f.Complete(first, submit.Accepted()), ErrStaleTicket)
	assert.Equal(t, StateSubmitting, f.State())
	assert.Equal(t, valid, f.Draft())

	require.NoError(t, f.Complete(second, submit.Rejected(submit.ReasonDuplicate, "")))
	assert.Equal(t, StateIdle, f.State())
}

func TestFail_CancelledIsSilent(t *testing.T) {
	f, toaster := newForm(&countingSubmitter{})
	fill(f, valid)

	ticket, err := f.Begin()
	require.NoError(t, err)
	require.NoError(t, f.Fail(ticket, context.Canceled))

	assert.Equal(t, StateIdle, f.State())
	assert.Equal(t, valid, f.Draft())
	_, ok := toaster.Current()
	assert.False(t, ok)
}

func TestFail_TimeoutIsSurfaced(t *testing.T) {
	f, toaster := newForm(&countingSubmitter{})
	fill(f, valid)

	ticket, err := f.Begin()
	require.NoError(t, err)
	require.NoError(t, f.Fail(ticket, context.DeadlineExceeded))

	assert.Equal(t, StateIdle, f.State())
	_, ok := toaster.Current()
	assert.True(t, ok)
}

func TestSubmit_WithSimulatorDelay(t *testing.T) {
	clock := submit.NewManualClock(time.Unix(0, 0))
	sim := submit.NewSimulator(
		submit.WithClock(clock),
		submit.WithPolicy(submit.FixedPolicy(submit.Accepted())),
	)
	f, _ := newForm(sim)
	fill(f, valid)

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool { return clock.Waiters() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, StateSubmitting, f.State())

	_, err := f.Begin()
	assert.ErrorIs(t, err, ErrSubmitting)

	// Inputs stay editable while submitting.
	f.Set(models.FieldTags, "cli")

	clock.Advance(submit.DefaultDelay)
	require.NoError(t, <-done)
	assert.Equal(t, StateIdle, f.State())
	assert.True(t, f.Draft().IsEmpty())
}

func TestSubmit_CancelledContextAbandons(t *testing.T) {
	clock := submit.NewManualClock(time.Unix(0, 0))
	f, toaster := newForm(submit.NewSimulator(submit.WithClock(clock)))
	fill(f, valid)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(ctx)
		done <- err
	}()

	require.Eventually(t, func() bool { return clock.Waiters() == 1 }, time.Second, time.Millisecond)
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
	assert.Equal(t, StateIdle, f.State())
	assert.Equal(t, valid, f.Draft())
	_, ok := toaster.Current()
	assert.False(t, ok)
}

func TestSetDate_Normalizes(t *testing.T) {
	f, _ := newForm(&countingSubmitter{})
	f.SetDate(time.Date(2023, time.December, 9, 18, 30, 0, 0, time.Local))
	assert.Equal(t, "2023-12-09", f.Draft().Date)
}

func TestSet_ClearsFieldError(t *testing.T) {
	f, _ := newForm(&countingSubmitter{})
	_, err := f.Begin()
	require.ErrorIs(t, err, ErrInvalid)
	require.NotEmpty(t, f.Error(models.FieldName))

	f.Set(models.FieldName, "fzf")
	assert.Empty(t, f.Error(models.FieldName))
	assert.NotEmpty(t, f.Error(models.FieldURL))
}

func TestWithValidator_Rules(t *testing.T) {
	toaster := notify.NewToaster(0, nil)
	f := New(&countingSubmitter{outcome: submit.Accepted()}, notify.NewSink(toaster, nil),
		WithValidator(validation.Rules()))
	fill(f, valid)

	out, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, out.IsAccepted())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "submitting", StateSubmitting.String())
}

func TestSend_UsesTicketSnapshot(t *testing.T) {
	var got models.Draft
	sub := submit.SubmitterFunc(func(_ context.Context, d models.Draft) (submit.Outcome, error) {
		got = d
		return submit.Accepted(), nil
	})
	f, _ := newForm(sub)
	fill(f, valid)

	ticket, err := f.Begin()
	require.NoError(t, err)

	// Edits after Begin do not leak into the in-flight submission.
	f.Set(models.FieldName, "changed")

	out, err := f.Send(context.Background(), ticket)
	require.NoError(t, err)
	assert.Equal(t, valid, got)
	require.NoError(t, f.Complete(ticket, out))
	assert.Equal(t, StateIdle, f.State())
}

type scriptedSubmitter struct {
	outcomes []submit.Outcome
}

func (s *scriptedSubmitter) Submit(context.Context, models.Draft) (submit.Outcome, error) {
	out := s.outcomes[0]
	s.outcomes = s.outcomes[1:]
	return out, nil
}

func TestSubmit_DuplicateAfterTransientClearsToast(t *testing.T) {
	f, toaster := newForm(&scriptedSubmitter{outcomes: []submit.Outcome{
		submit.Rejected(submit.ReasonTransient, "transient failure"),
		submit.Rejected(submit.ReasonDuplicate, "duplicate"),
	}})
	fill(f, valid)

	_, err := f.Submit(context.Background())
	require.NoError(t, err)
	_, ok := toaster.Current()
	require.True(t, ok)

	_, err = f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, submit.MsgDuplicate, f.Error(models.FieldName))
	assert.Equal(t, valid, f.Draft())
	_, ok = toaster.Current()
	assert.False(t, ok)
}

func TestSubmit_DeadlineIsSurfaced(t *testing.T) {
	sub := submit.SubmitterFunc(func(ctx context.Context, _ models.Draft) (submit.Outcome, error) {
		<-ctx.Done()
		return submit.Outcome{}, ctx.Err()
	})
	f, toaster := newForm(sub)
	fill(f, valid)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	out, err := f.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, submit.ReasonTransient, out.Reason)
	assert.Equal(t, StateIdle, f.State())
	assert.Equal(t, valid, f.Draft())

	toast, ok := toaster.Current()
	require.True(t, ok)
	assert.Equal(t, submit.MsgTransient, toast.Message)
}
