package session

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type attemptEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

// loginThrottle budgets login attempts per email: a burst of maxAttempts,
// refilled one per minute. Entries are pruned lazily once the map grows.
type loginThrottle struct {
	mu      sync.Mutex
	entries map[string]*attemptEntry
	burst   int
}

func newLoginThrottle(maxAttempts int) *loginThrottle {
	return &loginThrottle{
		entries: make(map[string]*attemptEntry),
		burst:   maxAttempts,
	}
}

func (t *loginThrottle) allow(email string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.entries) > 64 {
		for k, e := range t.entries {
			if time.Since(e.seen) > 10*time.Minute {
				delete(t.entries, k)
			}
		}
	}

	e, ok := t.entries[email]
	if !ok {
		e = &attemptEntry{lim: rate.NewLimiter(rate.Every(time.Minute), t.burst)}
		t.entries[email] = e
	}
	e.seen = time.Now()
	return e.lim.Allow()
}

// reset forgets an email's failures, typically after a successful login.
func (t *loginThrottle) reset(email string) {
	t.mu.Lock()
	delete(t.entries, email)
	t.mu.Unlock()
}
