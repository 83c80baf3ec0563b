package middleware

import (
	"fmt"
	"testing"
)

// TestRateLimiter_MapBounded verifies that the per-client bucket map never
// grows past its cap, and that clients keep getting limiters after the reset.
func TestRateLimiter_MapBounded(t *testing.T) {
	rl := NewRateLimiter(5, 10)

	for i := 0; i < maxClients+50; i++ {
		rl.limiterFor(fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}

	rl.mu.Lock()
	size := len(rl.limiters)
	rl.mu.Unlock()

	if size > maxClients {
		t.Errorf("limiter map grew to %d entries, cap is %d", size, maxClients)
	}

	if lim := rl.limiterFor("10.9.9.9"); lim == nil {
		t.Error("expected a limiter after map reset, got nil")
	}
}
