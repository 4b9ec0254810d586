// Package cache provides a bounded memoizing wrapper around the core
// processing functions.
package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/computerscienceiscool/queryctl/pkg/core"
)

// MaxCacheSize is the default entry capacity of a Memo.
const MaxCacheSize = 128

// Stats reports cache effectiveness counters.
type Stats struct {
	Hits     int
	Misses   int
	Size     int
	Capacity int
}

// Memo memoizes a string function with LRU eviction. Failed calls are
// never cached; each failing input re-executes the wrapped function.
type Memo struct {
	mu       sync.Mutex
	entries  *lru.Cache[string, string]
	fn       func(string) (string, error)
	hits     int
	misses   int
	capacity int
}

// New wraps fn with a memo of the given capacity.
func New(fn func(string) (string, error), capacity int) (*Memo, error) {
	entries, err := lru.New[string, string](capacity)
	if err != nil {
		return nil, err
	}
	return &Memo{entries: entries, fn: fn, capacity: capacity}, nil
}

// NewQueryMemo returns a memo over core.Sanitize at the default capacity.
func NewQueryMemo() *Memo {
	m, _ := New(core.Sanitize, MaxCacheSize)
	return m
}

// NewSimulationMemo returns a memo over core.SimulateFailure at the
// default capacity.
func NewSimulationMemo() *Memo {
	m, _ := New(core.SimulateFailure, MaxCacheSize)
	return m
}

// Get returns the memoized result for key, computing and caching it on a
// miss. Errors from the wrapped function are returned without caching.
func (m *Memo) Get(key string) (string, error) {
	m.mu.Lock()
	if val, ok := m.entries.Get(key); ok {
		m.hits++
		m.mu.Unlock()
		return val, nil
	}
	m.misses++
	m.mu.Unlock()

	val, err := m.fn(key)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.entries.Add(key, val)
	m.mu.Unlock()
	return val, nil
}

// Clear drops every cached entry and resets the counters.
func (m *Memo) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries.Purge()
	m.hits = 0
	m.misses = 0
}

// Stats returns a snapshot of the hit/miss/size counters.
func (m *Memo) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{
		Hits:     m.hits,
		Misses:   m.misses,
		Size:     m.entries.Len(),
		Capacity: m.capacity,
	}
}
