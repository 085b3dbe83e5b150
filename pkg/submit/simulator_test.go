package submit

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"tool-directory/pkg/models"
	"tool-directory/pkg/validation"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var draft = models.Draft{
	Name:        "jq",
	URL:         "jqlang.github.io/jq",
	Description: "Command-line JSON processor",
	Tags:        "cli, json",
	Date:        "2024-02-02",
}

func waitForTimer(t *testing.T, c *ManualClock) {
	t.Helper()
	require.Eventually(t, func() bool { return c.Waiters() > 0 }, time.Second, time.Millisecond)
}

func TestSimulator_WaitsForDelay(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	sim := NewSimulator(WithClock(clock), WithPolicy(FixedPolicy(Accepted())))

	done := make(chan Outcome, 1)
	go func() {
		out, err := sim.Submit(context.Background(), draft)
		assert.NoError(t, err)
		done <- out
	}()

	waitForTimer(t, clock)
	clock.Advance(999 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("submit resolved before the delay elapsed")
	case <-time.After(20 * time.Millisecond):
	}

	clock.Advance(time.Millisecond)
	select {
	case out := <-done:
		assert.True(t, out.IsAccepted())
	case <-time.After(time.Second):
		t.Fatal("submit did not resolve after the delay")
	}
}

func TestSimulator_ContextCancelled(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	sim := NewSimulator(WithClock(clock))

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := sim.Submit(ctx, draft)
		errc <- err
	}()

	waitForTimer(t, clock)
	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
}

func TestSimulator_AlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSimulator(WithDelay(0)).Submit(ctx, draft)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSimulator_DefaultDelay(t *testing.T) {
	sim := NewSimulator()
	assert.Equal(t, time.Second, sim.delay)
	assert.NotNil(t, sim.policy)
}

func TestRandomPolicy_CoversAllOutcomes(t *testing.T) {
	p := RandomPolicy(rand.NewPCG(1, 2))
	seen := map[Reason]int{}
	accepted := 0
	for i := 0; i < 300; i++ {
		out := p.Decide(draft)
		if out.IsAccepted() {
			accepted++
			continue
		}
		seen[out.Reason]++
	}
	assert.Positive(t, accepted)
	assert.Positive(t, seen[ReasonTransient])
	assert.Positive(t, seen[ReasonDuplicate])
	assert.Zero(t, seen[ReasonValidation])
}

func TestPolicyByName(t *testing.T) {
	for name, want := range map[string]Outcome{
		PolicyAccept:         Accepted(),
		PolicyFixedTransient: Rejected(ReasonTransient, "transient failure"),
		PolicyFixedDuplicate: Rejected(ReasonDuplicate, "duplicate"),
	} {
		p, err := PolicyByName(name, 0)
		require.NoError(t, err)
		assert.Equal(t, want, p.Decide(draft), name)
	}

	_, err := PolicyByName("coin-flip", 0)
	assert.Error(t, err)
}

func TestOutcome_Err(t *testing.T) {
	assert.NoError(t, Accepted().Err())

	err := Rejected(ReasonDuplicate, "duplicate").Err()
	var rej *RejectionError
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, MsgDuplicate, rej.UserMessage())
	assert.False(t, rej.IsRetryable())

	err = Rejected(ReasonTransient, "").Err()
	require.True(t, errors.As(err, &rej))
	assert.True(t, rej.IsRetryable())
	assert.Equal(t, "submission rejected (transient)", err.Error())
}

func TestRejectionError_ValidationMessage(t *testing.T) {
	rej := &RejectionError{
		Reason: ReasonValidation,
		Fields: validation.FieldErrors{models.FieldURL: validation.MsgInvalidURL},
	}
	assert.Equal(t, validation.MsgInvalidURL, rej.UserMessage())
}
