package submit

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"tool-directory/pkg/models"
)

// Policy picks the outcome of a simulated submission.
type Policy interface {
	Decide(draft models.Draft) Outcome
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(draft models.Draft) Outcome

func (f PolicyFunc) Decide(draft models.Draft) Outcome { return f(draft) }

// FixedPolicy always returns o.
func FixedPolicy(o Outcome) Policy {
	return PolicyFunc(func(models.Draft) Outcome { return o })
}

type randomPolicy struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// RandomPolicy picks uniformly between accepted, transient failure and
// duplicate.
func RandomPolicy(src rand.Source) Policy {
	return &randomPolicy{rng: rand.New(src)}
}

func (p *randomPolicy) Decide(models.Draft) Outcome {
	p.mu.Lock()
	n := p.rng.IntN(3)
	p.mu.Unlock()

	switch n {
	case 0:
		return Accepted()
	case 1:
		return Rejected(ReasonTransient, "transient failure")
	default:
		return Rejected(ReasonDuplicate, "duplicate")
	}
}

// Policy names accepted by PolicyByName.
const (
	PolicyRandom         = "random"
	PolicyAccept         = "accept"
	PolicyFixedTransient = "fixed-transient"
	PolicyFixedDuplicate = "fixed-duplicate"
)

// PolicyByName builds a named policy. A zero seed seeds the random policy from
// the current time.
func PolicyByName(name string, seed uint64) (Policy, error) {
	switch name {
	case PolicyRandom, "":
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		return RandomPolicy(rand.NewPCG(seed, seed>>1|1)), nil
	case PolicyAccept:
		return FixedPolicy(Accepted()), nil
	case PolicyFixedTransient:
		return FixedPolicy(Rejected(ReasonTransient, "transient failure")), nil
	case PolicyFixedDuplicate:
		return FixedPolicy(Rejected(ReasonDuplicate, "duplicate")), nil
	}
	return nil, fmt.Errorf("unknown simulator policy %q", name)
}
