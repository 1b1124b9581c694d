package shield

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_EnforcesWindowQuota(t *testing.T) {
	tests := []struct {
		name string
		max  int
	}{
		{name: "guest quota", max: 5},
		{name: "admin quota", max: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := NewLocal()
			rule := SlidingWindow("test-rate-limit", time.Minute, tt.max)
			req := RequestInfo{IP: "10.0.0.1", Method: "GET", Path: "/"}

			for i := 0; i < tt.max; i++ {
				decision, err := local.Protect(context.Background(), req, rule)
				require.NoError(t, err)
				assert.True(t, decision.Allowed, "request %d should be allowed", i+1)
			}

			decision, err := local.Protect(context.Background(), req, rule)
			require.NoError(t, err)
			assert.True(t, decision.IsDenied())
			assert.True(t, decision.IsRateLimit())
			assert.False(t, decision.IsBot())
			assert.False(t, decision.IsShield())
		})
	}
}

func TestLocal_WindowResets(t *testing.T) {
	local := NewLocal()
	now := time.Now()
	local.now = func() time.Time { return now }

	rule := SlidingWindow("guest-rate-limit", time.Minute, 1)
	req := RequestInfo{IP: "10.0.0.1"}

	decision, err := local.Protect(context.Background(), req, rule)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	decision, err = local.Protect(context.Background(), req, rule)
	require.NoError(t, err)
	assert.True(t, decision.IsDenied())

	now = now.Add(time.Minute + time.Second)

	decision, err = local.Protect(context.Background(), req, rule)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestLocal_SeparateKeysDoNotShareCounters(t *testing.T) {
	local := NewLocal()
	rule := SlidingWindow("guest-rate-limit", time.Minute, 1)

	decision, err := local.Protect(context.Background(), RequestInfo{IP: "10.0.0.1"}, rule)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	// Different client, same rule: fresh window.
	decision, err = local.Protect(context.Background(), RequestInfo{IP: "10.0.0.2"}, rule)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	// Different rule name, same client: fresh window too.
	other := SlidingWindow("user-rate-limit", time.Minute, 1)
	decision, err = local.Protect(context.Background(), RequestInfo{IP: "10.0.0.1"}, other)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestDecision_ReasonFlags(t *testing.T) {
	decision := Decision{Allowed: false, Reasons: []Reason{ReasonBot, ReasonRateLimit}}

	assert.True(t, decision.IsDenied())
	assert.True(t, decision.IsBot())
	assert.True(t, decision.IsRateLimit())
	assert.False(t, decision.IsShield())
}
