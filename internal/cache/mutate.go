package cache

import "context"

// Update is one optimistic cache rewrite. Apply receives the current
// cached value for Key and returns the replacement; it runs only when
// the key holds a value, and must not mutate old in place.
type Update struct {
	Key   Key
	Apply func(old any) any
}

// Apply builds a typed optimistic Update. The update is skipped when
// the cached value is not a T.
func Apply[T any](key Key, fn func(T) T) Update {
	return Update{
		Key: key,
		Apply: func(old any) any {
			val, ok := old.(T)
			if !ok {
				return old
			}

			return fn(val)
		},
	}
}

// MutateOptions configure a Mutate call.
type MutateOptions struct {
	// Optimistic updates are applied synchronously before the network
	// call and rolled back verbatim if it fails.
	Optimistic []Update
	// Invalidate lists extra keys marked stale on settle, in addition to
	// the optimistically updated ones.
	Invalidate []Key
}

// Mutate performs a mutation with the snapshot-before / apply / try /
// restore-on-failure / invalidate-on-settle pattern shared by every
// mutation site. The network call's error is returned unchanged.
func (s *Store) Mutate(ctx context.Context, call func(context.Context) error, opts MutateOptions) error {
	s.mu.Lock()

	snapshots := make(map[Key]entry, len(opts.Optimistic))
	for _, u := range opts.Optimistic {
		e, ok := s.entries[u.Key]
		if !ok || !e.hasValue {
			continue
		}

		snapshots[u.Key] = *e
		e.value = u.Apply(e.value)
	}

	s.mu.Unlock()

	err := call(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		// Restore the exact pre-mutation snapshots.
		for key, snap := range snapshots {
			if e, ok := s.entries[key]; ok {
				e.value = snap.value
				e.hasValue = snap.hasValue
				e.fetchedAt = snap.fetchedAt
				e.staleAfter = snap.staleAfter
			}
		}
	}

	// Success or failure, affected keys go stale so the next read
	// refetches a consistent view.
	for _, u := range opts.Optimistic {
		if e, ok := s.entries[u.Key]; ok {
			s.invalidateLocked(e)
		}
	}
	for _, key := range opts.Invalidate {
		if e, ok := s.entries[key]; ok {
			s.invalidateLocked(e)
		}
	}

	return err
}
