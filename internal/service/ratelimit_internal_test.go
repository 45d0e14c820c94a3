package service

import (
	"testing"
	"time"
)

func TestRateLimiter_EvictIdle(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	defer rl.Stop()

	rl.Allow("stale")
	rl.Allow("active")
	rl.clients["stale"].lastAccess = time.Now().Add(-time.Hour)

	if n := rl.evictIdle(time.Now().Add(-limiterIdleTTL)); n != 1 {
		t.Fatalf("expected 1 eviction, got %d", n)
	}
	if _, ok := rl.clients["stale"]; ok {
		t.Fatal("stale key should have been evicted")
	}
	if _, ok := rl.clients["active"]; !ok {
		t.Fatal("active key should remain")
	}
}
