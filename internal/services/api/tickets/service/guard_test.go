package service

import (
	"testing"
	"time"
)

// testGuard returns a guard with a manual clock and synchronous release
func testGuard(start time.Time) (*Guard, *time.Time) {
	now := start
	g := NewGuard()
	g.now = func() time.Time { return now }
	g.after = func(_ time.Duration, fn func()) { fn() }
	return g, &now
}

func TestGuardFirstAttemptPasses(t *testing.T) {
	g, _ := testGuard(time.Unix(1000, 0))

	fp, reason := g.TryBegin("c1", "a@b.com", "printer on fire")
	if reason != "" {
		t.Fatalf("first attempt rejected: %q", reason)
	}
	if fp == 0 {
		t.Fatalf("fingerprint should be non zero for non empty input")
	}
}

func TestGuardInProgress(t *testing.T) {
	g, _ := testGuard(time.Unix(1000, 0))
	// keep the release pending so submitting stays set
	g.after = func(time.Duration, func()) {}

	if _, reason := g.TryBegin("c1", "a@b.com", "x y z"); reason != "" {
		t.Fatalf("unexpected reject: %q", reason)
	}
	if _, reason := g.TryBegin("c1", "a@b.com", "different text"); reason != ReasonInProgress {
		t.Fatalf("want %q, got %q", ReasonInProgress, reason)
	}
}

func TestGuardTooSoon(t *testing.T) {
	g, now := testGuard(time.Unix(1000, 0))

	if _, reason := g.TryBegin("c1", "a@b.com", "first"); reason != "" {
		t.Fatalf("unexpected reject: %q", reason)
	}
	g.End("c1") // synchronous release

	*now = now.Add(guardMinInterval - time.Second)
	if _, reason := g.TryBegin("c1", "a@b.com", "second"); reason != ReasonTooSoon {
		t.Fatalf("want %q, got %q", ReasonTooSoon, reason)
	}
}

func TestGuardHashSeen(t *testing.T) {
	g, now := testGuard(time.Unix(1000, 0))

	if _, reason := g.TryBegin("c1", "a@b.com", "same text"); reason != "" {
		t.Fatalf("unexpected reject: %q", reason)
	}
	g.End("c1")

	// past the interval but inside the hash ttl
	*now = now.Add(guardMinInterval + time.Second)
	if _, reason := g.TryBegin("c1", "a@b.com", "same text"); reason != ReasonHashSeen {
		t.Fatalf("want %q, got %q", ReasonHashSeen, reason)
	}

	// different content passes, the interval already elapsed
	if _, reason := g.TryBegin("c1", "a@b.com", "other text"); reason != "" {
		t.Fatalf("different content should pass, got %q", reason)
	}
}

func TestGuardHashExpires(t *testing.T) {
	g, now := testGuard(time.Unix(1000, 0))

	if _, reason := g.TryBegin("c1", "a@b.com", "same text"); reason != "" {
		t.Fatalf("unexpected reject: %q", reason)
	}
	g.End("c1")

	*now = now.Add(guardHashTTL + time.Second)
	if _, reason := g.TryBegin("c1", "a@b.com", "same text"); reason != "" {
		t.Fatalf("expired hash should not reject, got %q", reason)
	}
}

func TestGuardClientsAreIndependent(t *testing.T) {
	g, _ := testGuard(time.Unix(1000, 0))
	g.after = func(time.Duration, func()) {}

	if _, reason := g.TryBegin("c1", "a@b.com", "same text"); reason != "" {
		t.Fatalf("unexpected reject: %q", reason)
	}
	if _, reason := g.TryBegin("c2", "a@b.com", "same text"); reason != "" {
		t.Fatalf("second client must not share state, got %q", reason)
	}
}

func TestGuardSweepsIdleEntries(t *testing.T) {
	g, now := testGuard(time.Unix(1000, 0))

	if _, reason := g.TryBegin("c1", "a@b.com", "first"); reason != "" {
		t.Fatalf("unexpected reject: %q", reason)
	}
	g.End("c1")

	*now = now.Add(guardEntryIdle + time.Minute)
	// sweep runs on the next attempt from any client
	if _, reason := g.TryBegin("c2", "z@b.com", "hello"); reason != "" {
		t.Fatalf("unexpected reject: %q", reason)
	}

	g.mu.Lock()
	_, kept := g.entries["c1"]
	g.mu.Unlock()
	if kept {
		t.Fatalf("idle entry should have been swept")
	}
}

func TestFingerprintNormalizes(t *testing.T) {
	a := Fingerprint("User@Example.com", "  broken keyboard  ")
	b := Fingerprint("user@example.com", "broken keyboard")
	if a != b {
		t.Fatalf("fingerprint should ignore case and padding")
	}
	if a == Fingerprint("user@example.com", "broken mouse") {
		t.Fatalf("different descriptions should not collide")
	}
}
