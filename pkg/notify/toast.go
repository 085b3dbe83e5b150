// Package notify surfaces submission outcomes to the user, either as an error
// attached to a form field or as a single transient toast.
package notify

import (
	"sync"
	"time"
)

// Kind styles a toast.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
	KindInfo
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "info"
	}
}

// Toast is a transient, dismissible notification.
type Toast struct {
	ID        uint64
	Kind      Kind
	Message   string
	ExpiresAt time.Time
}

// DefaultTTL is how long a toast stays visible unless dismissed.
const DefaultTTL = 4 * time.Second

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Toaster holds at most one live toast. Showing a new toast supersedes the
// previous one.
type Toaster struct {
	mu      sync.Mutex
	ttl     time.Duration
	clock   Clock
	seq     uint64
	current *Toast
}

// NewToaster creates a toaster. A non-positive ttl uses DefaultTTL and a nil
// clock uses the system clock.
func NewToaster(ttl time.Duration, clock Clock) *Toaster {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = systemClock{}
	}
	return &Toaster{ttl: ttl, clock: clock}
}

// TTL returns the display lifetime of new toasts.
func (t *Toaster) TTL() time.Duration {
	return t.ttl
}

// Show replaces any live toast and returns the new one.
func (t *Toaster) Show(kind Kind, message string) Toast {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	toast := Toast{
		ID:        t.seq,
		Kind:      kind,
		Message:   message,
		ExpiresAt: t.clock.Now().Add(t.ttl),
	}
	t.current = &toast
	return toast
}

// Current returns the live toast, if any. Expired toasts are dropped.
func (t *Toaster) Current() (Toast, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil {
		return Toast{}, false
	}
	if !t.clock.Now().Before(t.current.ExpiresAt) {
		t.current = nil
		return Toast{}, false
	}
	return *t.current, true
}

// Dismiss removes the toast with the given ID. It is a no-op when that toast
// has already been superseded, so a stale timeout cannot hide a newer toast.
func (t *Toaster) Dismiss(id uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.current == nil || t.current.ID != id {
		return false
	}
	t.current = nil
	return true
}

// Clear removes any live toast.
func (t *Toaster) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = nil
}
