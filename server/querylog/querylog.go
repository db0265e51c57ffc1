// Package querylog keeps an in-memory record of recently executed
// queries. History is session-scoped: it lives and dies with the
// process and is never persisted.
package querylog

import (
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

const defaultCapacity = 100

// Entry is one executed query with its result summary.
type Entry struct {
	ID         string  `json:"id"`
	Question   string  `json:"question"`
	Type       string  `json:"type"`
	Title      string  `json:"title"`
	DurationMs float64 `json:"durationMs"`
	CreatedTs  int64   `json:"createdTs"`
}

// Log is a fixed-capacity ring of query entries. Once full, the oldest
// entry is overwritten. Safe for concurrent use.
type Log struct {
	mu       sync.RWMutex
	capacity int
	entries  []Entry
	written  int
}

// New creates a log holding up to capacity entries. Non-positive
// capacities fall back to the default of 100.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Log{capacity: capacity}
}

// Add records one executed query and returns the stored entry.
func (l *Log) Add(question, resultType, title string, duration time.Duration) Entry {
	entry := Entry{
		ID:         shortuuid.New(),
		Question:   question,
		Type:       resultType,
		Title:      title,
		DurationMs: float64(duration.Microseconds()) / 1000.0,
		CreatedTs:  time.Now().Unix(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) < l.capacity {
		l.entries = append(l.entries, entry)
	} else {
		l.entries[l.written%l.capacity] = entry
	}
	l.written++
	return entry
}

// List returns a copy of the stored entries, newest first.
func (l *Log) List() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := len(l.entries)
	out := make([]Entry, n)
	for i := 0; i < n; i++ {
		out[i] = l.entries[(l.written-1-i)%n]
	}
	return out
}

// Size returns the number of stored entries.
func (l *Log) Size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
