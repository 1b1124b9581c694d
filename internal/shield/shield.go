// Package shield abstracts the external protection service that decides
// whether a request is allowed to proceed. The middleware only depends on
// the Protector interface, so the HTTP client can be swapped for the local
// evaluator in tests and in deployments without a decision service.
package shield

import (
	"context"
	"time"
)

// Reason classifies why a request was denied. A single denial can carry
// several reasons at once.
type Reason string

const (
	ReasonBot       Reason = "bot"
	ReasonShield    Reason = "shield"
	ReasonRateLimit Reason = "rate_limit"
)

// RequestInfo is the request summary submitted for evaluation. Raw bodies
// and credentials never leave the process.
type RequestInfo struct {
	IP        string `json:"ip"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	UserAgent string `json:"user_agent"`
}

// Rule describes a sliding-window rate limit to evaluate the request
// against. Name scopes the window, so distinct rule names never share
// counters.
type Rule struct {
	Mode            string `json:"mode"`
	IntervalSeconds int    `json:"interval_seconds"`
	Max             int    `json:"max"`
	Name            string `json:"name"`
}

// SlidingWindow builds a live-enforcement sliding-window rule.
func SlidingWindow(name string, interval time.Duration, max int) Rule {
	return Rule{
		Mode:            "LIVE",
		IntervalSeconds: int(interval.Seconds()),
		Max:             max,
		Name:            name,
	}
}

// Decision is the verdict returned by the protection service.
type Decision struct {
	Allowed bool     `json:"allowed"`
	Reasons []Reason `json:"reasons,omitempty"`
}

func (d Decision) IsDenied() bool {
	return !d.Allowed
}

func (d Decision) IsBot() bool       { return d.hasReason(ReasonBot) }
func (d Decision) IsShield() bool    { return d.hasReason(ReasonShield) }
func (d Decision) IsRateLimit() bool { return d.hasReason(ReasonRateLimit) }

func (d Decision) hasReason(reason Reason) bool {
	for _, r := range d.Reasons {
		if r == reason {
			return true
		}
	}
	return false
}

// Protector evaluates a request against a rule. Implementations must return
// an error only for infrastructure failures; a denial is a valid Decision,
// not an error.
type Protector interface {
	Protect(ctx context.Context, req RequestInfo, rule Rule) (Decision, error)
}
