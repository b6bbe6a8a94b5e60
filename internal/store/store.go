// Package store owns the single source of truth for the Application
// State and keeps it transparently synchronized with durable storage.
// In-memory updates are synchronous; durable writes are debounced behind
// a single rearmed timer, so a burst of edits produces exactly one write
// reflecting the final state.
package store

import (
	"context"
	"log"
	"sync"
	"time"

	"docmint/internal/docstate"
)

// DefaultDebounce is the quiet window after the last update before the
// state is written to durable storage.
const DefaultDebounce = 500 * time.Millisecond

// Backend is one durable record under a fixed versioned key. Load
// reports ok=false when no record exists.
type Backend interface {
	Load(ctx context.Context) (payload []byte, ok bool, err error)
	Save(ctx context.Context, payload []byte) error
	Delete(ctx context.Context) error
	Ping(ctx context.Context) error
}

// Store is the persistent state holder. All methods are safe for
// concurrent use; state transitions are atomic from the caller's
// perspective.
type Store struct {
	backend  Backend
	debounce time.Duration
	logf     func(format string, args ...any)

	mu       sync.Mutex
	defaults docstate.State
	state    docstate.State
	timer    *time.Timer
	gen      uint64
	closed   bool
}

// New creates a store pinned to the given defaults. The defaults are
// deep-copied once here; later Reset calls restore this first-seen
// value even if the caller's copy has drifted.
func New(backend Backend, defaults docstate.State) *Store {
	return NewWithDebounce(backend, defaults, DefaultDebounce)
}

// NewWithDebounce creates a store with a custom debounce window.
func NewWithDebounce(backend Backend, defaults docstate.State, debounce time.Duration) *Store {
	s := &Store{
		backend:  backend,
		debounce: debounce,
		logf:     log.Printf,
		defaults: defaults.Clone(),
		state:    defaults.Clone(),
	}
	return s
}

// Initialize restores state from durable storage. Absent record: the
// pinned defaults. Malformed record: discarded (the durable entry is
// deleted) and the defaults returned - corruption is never surfaced as
// an error. A valid record is shallow-merged over the defaults per
// known top-level section, so sections added after the user's last
// session still appear while saved sections are preserved exactly.
func (s *Store) Initialize(ctx context.Context) docstate.State {
	payload, ok, err := s.backend.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case err != nil:
		s.logf("store: load persisted state: %v", err)
		s.state = s.defaults.Clone()
	case !ok:
		s.state = s.defaults.Clone()
	default:
		merged, mergeErr := docstate.MergeWithDefaults(s.defaults, payload)
		if mergeErr != nil {
			s.logf("store: discarding malformed persisted state: %v", mergeErr)
			if delErr := s.backend.Delete(ctx); delErr != nil {
				s.logf("store: delete malformed persisted state: %v", delErr)
			}
			s.state = s.defaults.Clone()
		} else {
			s.state = merged
		}
	}
	return s.state.Clone()
}

// State returns a read-only snapshot of the current state.
func (s *Store) State() docstate.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Update applies a state transition immediately in memory and (re)arms
// the debounce timer. A read issued after Update returns sees the new
// value; durable storage catches up once the input goes quiet.
func (s *Store) Update(fn func(*docstate.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	fn(&s.state)
	s.gen++
	s.armLocked()
}

// armLocked cancels any pending write and schedules a fresh one. Caller
// holds the lock.
func (s *Store) armLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
	gen := s.gen
	s.timer = time.AfterFunc(s.debounce, func() { s.persist(gen) })
}

// persist writes the current state if it is still the one the timer was
// armed for. Write failures are logged and never raised; the in-memory
// state stays authoritative for the rest of the session.
func (s *Store) persist(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.gen {
		return
	}
	s.timer = nil
	payload, err := docstate.Marshal(s.state)
	if err != nil {
		s.logf("store: encode state: %v", err)
		return
	}
	if err := s.backend.Save(context.Background(), payload); err != nil {
		s.logf("store: persist state: %v", err)
	}
}

// Reset deletes the durable entry and restores the defaults pinned at
// store creation. Any pending debounced write is cancelled first so the
// pre-reset state can never land after the reset.
func (s *Store) Reset(ctx context.Context) docstate.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if err := s.backend.Delete(ctx); err != nil {
		s.logf("store: delete persisted state: %v", err)
	}
	s.state = s.defaults.Clone()
	return s.state.Clone()
}

// Close tears the store down: the pending write, if any, is cancelled
// and no write happens afterwards.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// Ping reports backend reachability for readiness checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}
