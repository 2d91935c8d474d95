package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

// testClock is a mutable clock for deterministic limiter tests.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestLimiter(maxPerHour int) (*Limiter, *testClock) {
	clock := &testClock{now: time.Date(2026, time.March, 11, 12, 0, 0, 0, time.UTC)}
	limiter := New(&Config{
		Cooldown:   2 * time.Second,
		MaxPerHour: maxPerHour,
		Clock:      clock,
	})
	return limiter, clock
}

func TestCheckIPCooldown(t *testing.T) {
	limiter, clock := newTestLimiter(30)
	defer limiter.Close()

	if res := limiter.CheckIP("192.0.2.1"); !res.Allowed {
		t.Fatalf("first request denied: %+v", res)
	}

	res := limiter.CheckIP("192.0.2.1")
	if res.Allowed {
		t.Fatal("request inside cooldown allowed")
	}
	if res.Reason != "cooldown" {
		t.Fatalf("Reason = %q", res.Reason)
	}
	if res.RetryAfter <= 0 || res.RetryAfter > 2*time.Second {
		t.Fatalf("RetryAfter = %v", res.RetryAfter)
	}

	clock.advance(2 * time.Second)
	if res := limiter.CheckIP("192.0.2.1"); !res.Allowed {
		t.Fatalf("request after cooldown denied: %+v", res)
	}
}

func TestCheckIPHourlyLimit(t *testing.T) {
	limiter, clock := newTestLimiter(3)
	defer limiter.Close()

	for i := 0; i < 3; i++ {
		if res := limiter.CheckIP("192.0.2.1"); !res.Allowed {
			t.Fatalf("request %d denied: %+v", i+1, res)
		}
		clock.advance(5 * time.Second)
	}

	res := limiter.CheckIP("192.0.2.1")
	if res.Allowed {
		t.Fatal("request over hourly limit allowed")
	}
	if res.Reason != "hourly_limit" {
		t.Fatalf("Reason = %q", res.Reason)
	}

	// The window resets an hour after the first request.
	clock.advance(time.Hour)
	if res := limiter.CheckIP("192.0.2.1"); !res.Allowed {
		t.Fatalf("request after window reset denied: %+v", res)
	}
}

func TestCheckIPKeysPerClient(t *testing.T) {
	limiter, _ := newTestLimiter(30)
	defer limiter.Close()

	if res := limiter.CheckIP("192.0.2.1"); !res.Allowed {
		t.Fatalf("first client denied: %+v", res)
	}
	if res := limiter.CheckIP("192.0.2.2"); !res.Allowed {
		t.Fatal("second client hit first client's cooldown")
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/create-checkout-session", nil)
	r.RemoteAddr = "192.0.2.7:54321"
	if got := ClientIP(r); got != "192.0.2.7" {
		t.Fatalf("ClientIP = %q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.9, 192.0.2.7")
	if got := ClientIP(r); got != "203.0.113.9" {
		t.Fatalf("ClientIP with X-Forwarded-For = %q", got)
	}
}

func TestCleanupDropsStaleEntries(t *testing.T) {
	limiter, clock := newTestLimiter(30)
	defer limiter.Close()

	limiter.CheckIP("192.0.2.1")
	clock.advance(2 * time.Hour)
	limiter.cleanup()

	limiter.mu.Lock()
	n := len(limiter.byIP)
	limiter.mu.Unlock()
	if n != 0 {
		t.Fatalf("stale entries remaining: %d", n)
	}
}
