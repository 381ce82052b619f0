package service

import (
	"hash/fnv"
	"strings"
	"sync"
	"time"
)

// RejectReason says why the guard vetoed a submission attempt
type RejectReason string

// Guard rejection reasons
const (
	ReasonInProgress RejectReason = "already_in_progress"
	ReasonTooSoon    RejectReason = "too_soon"
	ReasonHashSeen   RejectReason = "hash_seen"
)

// Guard timing constants
const (
	guardMinInterval  = 3 * time.Second
	guardHashTTL      = 10 * time.Second
	guardReleaseDelay = 5 * time.Second

	// drop a client entry after this much inactivity
	guardEntryIdle = 5 * time.Minute
)

// Fingerprint hashes the normalized submission content with FNV-64a
// only email and description participate so equal content from the same
// client collides on purpose
func Fingerprint(email, description string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(email))))
	_, _ = h.Write([]byte("|"))
	_, _ = h.Write([]byte(strings.TrimSpace(description)))
	return h.Sum64()
}

// guardEntry is the per client submission state
type guardEntry struct {
	submitting   bool
	lastSubmitAt time.Time
	lastSeen     time.Time
	hashes       map[uint64]time.Time
}

// Guard is an in memory gate that suppresses rapid repeat submissions per
// client before any storage work happens
// it is a heuristic, not a correctness guarantee; the recency check and the
// post insert cleanup sit behind it
type Guard struct {
	mu      sync.Mutex
	entries map[string]*guardEntry

	// seams for tests
	now   func() time.Time
	after func(d time.Duration, fn func())
}

// NewGuard builds a Guard with real clock seams
func NewGuard() *Guard {
	return &Guard{
		entries: make(map[string]*guardEntry),
		now:     time.Now,
		after:   func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
	}
}

// TryBegin asks permission to start a submission for clientKey
// on success it marks the client as submitting, records the attempt time and
// fingerprint, and returns the fingerprint with an empty reason
func (g *Guard) TryBegin(clientKey, email, description string) (uint64, RejectReason) {
	fp := Fingerprint(email, description)
	now := g.now()

	g.mu.Lock()
	defer g.mu.Unlock()

	g.sweepLocked(now)

	e := g.entries[clientKey]
	if e == nil {
		e = &guardEntry{hashes: make(map[uint64]time.Time)}
		g.entries[clientKey] = e
	}
	e.lastSeen = now

	// prune expired fingerprints before any check
	for h, at := range e.hashes {
		if now.Sub(at) > guardHashTTL {
			delete(e.hashes, h)
		}
	}

	if e.submitting {
		return fp, ReasonInProgress
	}
	if !e.lastSubmitAt.IsZero() && now.Sub(e.lastSubmitAt) < guardMinInterval {
		return fp, ReasonTooSoon
	}
	if _, seen := e.hashes[fp]; seen {
		return fp, ReasonHashSeen
	}

	e.submitting = true
	e.lastSubmitAt = now
	e.hashes[fp] = now
	return fp, ""
}

// End releases the submitting flag for clientKey after a fixed delay
// the delay absorbs trailing duplicate events from the same client; call it
// unconditionally once the orchestrated attempt finishes
func (g *Guard) End(clientKey string) {
	g.after(guardReleaseDelay, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if e := g.entries[clientKey]; e != nil {
			e.submitting = false
		}
	})
}

// sweepLocked drops idle client entries; callers hold g.mu
func (g *Guard) sweepLocked(now time.Time) {
	for k, e := range g.entries {
		if !e.submitting && now.Sub(e.lastSeen) > guardEntryIdle {
			delete(g.entries, k)
		}
	}
}
