package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"venuelink/internal/clock"
	"venuelink/internal/lib/logger/sl"
)

// Key indexes a cached read: entity scope plus canonically serialized
// filter parameters. Keys for the same logical query must be
// byte-identical so concurrent reads collapse onto one fetch.
type Key string

// State describes a cache entry as seen by consumers.
type State string

const (
	StateFresh    State = "fresh"
	StateStale    State = "stale"
	StateFetching State = "fetching"
	StateError    State = "error"
)

// Store is the process-wide cache for one client session. It is the
// only writer of entries: all reads and mutations go through Read,
// Refetch and Mutate, which keeps partial states impossible.
type Store struct {
	log   *slog.Logger
	clock clock.Clock

	gcWindow time.Duration

	mu      sync.Mutex
	entries map[Key]*entry
}

type entry struct {
	value      any
	hasValue   bool
	err        error
	fetchedAt  time.Time
	staleAfter time.Duration
	lastRead   time.Time

	// gen is the latest issued fetch generation for this key. Results
	// from superseded generations are discarded so a slow stale response
	// never overwrites newer data.
	gen    uint64
	flight *flight
}

type flight struct {
	gen   uint64
	done  chan struct{}
	value any
	err   error
}

const defaultGCWindow = 30 * time.Minute

func NewStore(log *slog.Logger, clk clock.Clock, gcWindow time.Duration) *Store {
	if gcWindow <= 0 {
		gcWindow = defaultGCWindow
	}

	return &Store{
		log:      log,
		clock:    clk,
		gcWindow: gcWindow,
		entries:  make(map[Key]*entry),
	}
}

func (e *entry) freshAt(now time.Time) bool {
	return now.Before(e.fetchedAt.Add(e.staleAfter))
}

// Read returns the freshest known value for key. A fresh entry is
// served as-is; a stale entry is served immediately while a background
// refetch runs; an absent entry blocks the caller until the single
// in-flight fetch resolves. Concurrent reads for the same key share
// one network call.
func Read[T any](ctx context.Context, s *Store, key Key, staleAfter time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	s.mu.Lock()

	now := s.clock.Now()
	e := s.entry(key)
	e.lastRead = now

	if e.hasValue {
		val, ok := e.value.(T)
		if !ok {
			s.mu.Unlock()
			return zero, fmt.Errorf("cache: value for key %q is %T, not %T", key, e.value, zero)
		}

		if !e.freshAt(now) && e.flight == nil {
			s.launch(key, e, staleAfter, anyFetch(fetch))
		}

		s.mu.Unlock()

		return val, nil
	}

	fl := e.flight
	if fl == nil {
		fl = s.launch(key, e, staleAfter, anyFetch(fetch))
	}

	s.mu.Unlock()

	select {
	case <-fl.done:
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	if fl.err != nil {
		return zero, fl.err
	}

	val, ok := fl.value.(T)
	if !ok {
		return zero, fmt.Errorf("cache: value for key %q is %T, not %T", key, fl.value, zero)
	}

	return val, nil
}

// Refetch forces a network fetch for key regardless of freshness,
// attaching to an already in-flight fetch instead of duplicating it.
// Used by pollers.
func Refetch[T any](ctx context.Context, s *Store, key Key, staleAfter time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	s.mu.Lock()

	e := s.entry(key)
	e.lastRead = s.clock.Now()

	fl := e.flight
	if fl == nil {
		fl = s.launch(key, e, staleAfter, anyFetch(fetch))
	}

	s.mu.Unlock()

	select {
	case <-fl.done:
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	if fl.err != nil {
		return zero, fl.err
	}

	val, ok := fl.value.(T)
	if !ok {
		return zero, fmt.Errorf("cache: value for key %q is %T, not %T", key, fl.value, zero)
	}

	return val, nil
}

// entry returns the tracked entry for key, creating it when absent.
// Callers must hold s.mu.
func (s *Store) entry(key Key) *entry {
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}

	return e
}

// launch starts a new fetch generation for key. Callers must hold s.mu.
func (s *Store) launch(key Key, e *entry, staleAfter time.Duration, fetch func(context.Context) (any, error)) *flight {
	e.gen++

	fl := &flight{gen: e.gen, done: make(chan struct{})}
	e.flight = fl

	// The fetch outlives the initiating caller's context: navigating away
	// must not cancel the network request, only stop it from updating the
	// caller's view.
	go s.run(context.Background(), key, fl, staleAfter, fetch)

	return fl
}

func (s *Store) run(ctx context.Context, key Key, fl *flight, staleAfter time.Duration, fetch func(context.Context) (any, error)) {
	const op = "cache.Store.run"

	val, err := fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		if e.flight == fl {
			e.flight = nil
		}

		if fl.gen == e.gen {
			if err == nil {
				e.value = val
				e.hasValue = true
				e.err = nil
				e.fetchedAt = s.clock.Now()
				e.staleAfter = staleAfter
			} else {
				e.err = err
				if !e.hasValue {
					s.log.Debug("fetch failed",
						slog.String("op", op),
						slog.String("key", string(key)),
						sl.Err(err),
					)
				}
			}
		}
	}

	fl.value = val
	fl.err = err
	close(fl.done)
}

// Invalidate marks keys stale so the next read refetches, and bumps
// their generation so results from fetches started before the
// invalidation are discarded.
func (s *Store) Invalidate(keys ...Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		if e, ok := s.entries[key]; ok {
			s.invalidateLocked(e)
		}
	}
}

// InvalidatePrefix invalidates every key sharing a scope prefix, e.g.
// all venue list pages at once.
func (s *Store) InvalidatePrefix(prefix Key) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			s.invalidateLocked(e)
		}
	}
}

func (s *Store) invalidateLocked(e *entry) {
	e.staleAfter = 0
	e.gen++
	e.flight = nil
}

// EntryInfo is a read-only view of an entry for UIs and tests.
type EntryInfo struct {
	Value     any
	State     State
	FetchedAt time.Time
}

// Entry reports the current state of a key. The second return is false
// when the key has never been read.
func (s *Store) Entry(key Key) (EntryInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return EntryInfo{}, false
	}

	info := EntryInfo{Value: e.value, FetchedAt: e.fetchedAt}

	switch {
	case e.flight != nil && !e.hasValue:
		info.State = StateFetching
	case !e.hasValue && e.err != nil:
		info.State = StateError
	case e.freshAt(s.clock.Now()):
		info.State = StateFresh
	default:
		info.State = StateStale
	}

	return info, ok
}

// Sweep evicts entries that have not been read within the GC window.
// In-flight entries are kept.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	evicted := 0

	for key, e := range s.entries {
		if e.flight == nil && now.Sub(e.lastRead) > s.gcWindow {
			delete(s.entries, key)
			evicted++
		}
	}

	return evicted
}

func anyFetch[T any](fetch func(context.Context) (T, error)) func(context.Context) (any, error) {
	return func(ctx context.Context) (any, error) {
		return fetch(ctx)
	}
}
