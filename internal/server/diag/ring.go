// Package diag keeps a bounded in-memory ring of recorded failures for
// operator inspection. It backs the admin diagnostics export; it is not a
// durable log.
package diag

import (
	"sync"
	"time"
)

// Entry is one recorded failure.
type Entry struct {
	Time     time.Time
	Severity string
	Message  string
}

// Ring is a fixed-capacity ring buffer of entries. Once full, new entries
// overwrite the oldest. Safe for concurrent use; the lock is held only for
// in-memory bookkeeping.
type Ring struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
}

func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{entries: make([]Entry, capacity)}
}

// Record appends an entry, evicting the oldest when at capacity.
func (r *Ring) Record(severity, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.next] = Entry{Time: time.Now(), Severity: severity, Message: message}
	r.next++
	if r.next == len(r.entries) {
		r.next = 0
		r.full = true
	}
}

// Snapshot returns the recorded entries oldest-first.
func (r *Ring) Snapshot() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		out := make([]Entry, r.next)
		copy(out, r.entries[:r.next])
		return out
	}

	out := make([]Entry, 0, len(r.entries))
	out = append(out, r.entries[r.next:]...)
	out = append(out, r.entries[:r.next]...)
	return out
}
