package submit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tool-directory/pkg/models"
)

// DefaultDelay is the artificial network delay of the simulator.
const DefaultDelay = time.Second

// Simulator stands in for the directory API: it waits a fixed delay and then
// lets its Policy decide the outcome. It never retries.
type Simulator struct {
	delay  time.Duration
	policy Policy
	clock  Clock
	log    *zap.SugaredLogger
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithDelay overrides the simulated delay.
func WithDelay(d time.Duration) Option {
	return func(s *Simulator) { s.delay = d }
}

// WithPolicy overrides the outcome policy.
func WithPolicy(p Policy) Option {
	return func(s *Simulator) { s.policy = p }
}

// WithClock injects the clock used for the delay.
func WithClock(c Clock) Option {
	return func(s *Simulator) { s.clock = c }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Simulator) { s.log = l }
}

// NewSimulator creates a simulator with a one second delay, a random policy
// and the real clock unless overridden.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		delay: DefaultDelay,
		clock: RealClock(),
		log:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.policy == nil {
		s.policy, _ = PolicyByName(PolicyRandom, 0)
	}
	return s
}

// Submit waits for the configured delay and returns the policy's outcome. A
// cancelled context abandons the attempt and returns ctx.Err().
func (s *Simulator) Submit(ctx context.Context, draft models.Draft) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	s.log.Debugw("simulated submit started", "name", draft.Name, "delay", s.delay)

	select {
	case <-s.clock.After(s.delay):
	case <-ctx.Done():
		s.log.Debugw("simulated submit abandoned", "name", draft.Name, "err", ctx.Err())
		return Outcome{}, ctx.Err()
	}

	out := s.policy.Decide(draft)
	s.log.Infow("simulated submit finished",
		"name", draft.Name,
		"status", out.Status,
		"reason", out.Reason,
	)
	return out, nil
}
