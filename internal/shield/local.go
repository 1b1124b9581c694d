package shield

import (
	"context"
	"sync"
	"time"
)

// Local is an in-process evaluator used when no decision service is
// configured. It enforces the submitted sliding-window rule with in-memory
// counters keyed by rule name and client address; it performs no bot or
// shield-policy detection.
type Local struct {
	mu       sync.Mutex
	counters map[string]*windowCounter
	now      func() time.Time
}

type windowCounter struct {
	count     int
	startedAt time.Time
}

// NewLocal creates an in-process evaluator.
func NewLocal() *Local {
	return &Local{
		counters: make(map[string]*windowCounter),
		now:      time.Now,
	}
}

// Protect counts the request against the rule's window and denies with the
// rate-limit reason once the count exceeds the rule's Max.
func (l *Local) Protect(_ context.Context, req RequestInfo, rule Rule) (Decision, error) {
	if rule.Max <= 0 {
		return Decision{Allowed: true}, nil
	}

	interval := time.Duration(rule.IntervalSeconds) * time.Second
	key := rule.Name + ":" + req.IP

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	c, ok := l.counters[key]
	if !ok || now.Sub(c.startedAt) >= interval {
		l.counters[key] = &windowCounter{count: 1, startedAt: now}
		return Decision{Allowed: true}, nil
	}

	c.count++
	if c.count > rule.Max {
		return Decision{Allowed: false, Reasons: []Reason{ReasonRateLimit}}, nil
	}

	return Decision{Allowed: true}, nil
}
