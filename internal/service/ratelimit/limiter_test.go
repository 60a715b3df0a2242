package ratelimit

import (
	"testing"
	"time"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestLimiter(capacity, refill float64) (*Limiter, *clock) {
	c := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := New(capacity, refill)
	l.now = c.now
	return l, c
}

func TestAllowConsumesAndRefills(t *testing.T) {
	l, c := newTestLimiter(2, 1)

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatalf("burst of 2 should be allowed")
	}
	if l.Allow("a") {
		t.Fatalf("third request should be limited")
	}
	if !l.Allow("b") {
		t.Fatalf("keys must not share buckets")
	}

	c.t = c.t.Add(time.Second)
	if !l.Allow("a") {
		t.Fatalf("token should refill after 1s")
	}
	if l.Allow("a") {
		t.Fatalf("only one token refilled")
	}

	c.t = c.t.Add(time.Hour)
	if !l.Allow("a") || !l.Allow("a") || l.Allow("a") {
		t.Fatalf("refill must be capped at capacity")
	}
}

func TestSweepForgetsIdleKeys(t *testing.T) {
	l, c := newTestLimiter(1, 1)
	l.Allow("old")
	c.t = c.t.Add(10 * time.Minute)
	l.Allow("new")

	if n := l.Sweep(5 * time.Minute); n != 1 {
		t.Fatalf("swept %d, want 1", n)
	}
	if _, ok := l.m["new"]; !ok {
		t.Fatalf("recent key was removed")
	}
}
