package search

import (
	"log/slog"
	"sync"
	"time"

	"venuelink/internal/models"
)

// DebounceWindow is the default delay between the last keystroke and
// the debounced fetch.
const DebounceWindow = 500 * time.Millisecond

type timer interface {
	Stop() bool
}

type timerFactory func(d time.Duration, fn func()) timer

type realTimer struct{ *time.Timer }

func afterFunc(d time.Duration, fn func()) timer {
	return realTimer{time.AfterFunc(d, fn)}
}

// State keeps the immediate search input apart from the debounced value
// that actually drives fetches. Structured filter changes (venue type,
// page) apply immediately; text search commits only after the debounce
// window passes without further typing. Every filter change resets the
// page to 1.
type State struct {
	log      *slog.Logger
	window   time.Duration
	newTimer timerFactory

	// onChange fires with the effective filters whenever they change;
	// the consumer issues the cache read and updates the shareable URL.
	onChange func(Filters)

	mu      sync.Mutex
	input   string
	filters Filters
	pending timer
	closed  bool
}

func NewState(log *slog.Logger, window time.Duration, initial Filters, onChange func(Filters)) *State {
	if window <= 0 {
		window = DebounceWindow
	}
	if initial.Page < DefaultPage {
		initial.Page = DefaultPage
	}
	if initial.PageSize <= 0 {
		initial.PageSize = DefaultPageSize
	}

	return &State{
		log:      log,
		window:   window,
		newTimer: afterFunc,
		onChange: onChange,
		input:    initial.Search,
		filters:  initial,
	}
}

// Input is the immediate text value for responsive rendering.
func (s *State) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.input
}

// Filters is the effective (debounced) filter set.
func (s *State) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filters
}

// SetInput records a keystroke. The previous debounce timer is always
// cancelled before a new one starts, so only the final value within the
// window produces a fetch.
func (s *State) SetInput(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.input = value

	s.cancelPendingLocked()
	s.pending = s.newTimer(s.window, func() {
		s.commitSearch(value)
	})
}

func (s *State) commitSearch(value string) {
	s.mu.Lock()

	if s.closed || value != s.input {
		// A newer keystroke superseded this timer.
		s.mu.Unlock()
		return
	}

	s.pending = nil

	if s.filters.Search == value {
		s.mu.Unlock()
		return
	}

	s.filters.Search = value
	s.filters.Page = DefaultPage
	filters := s.filters

	s.mu.Unlock()

	s.fire(filters)
}

// ClearSearch resets the input and debounced value at once, with no
// debounce delay.
func (s *State) ClearSearch() {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return
	}

	s.cancelPendingLocked()
	s.input = ""

	if s.filters.Search == "" {
		s.mu.Unlock()
		return
	}

	s.filters.Search = ""
	s.filters.Page = DefaultPage
	filters := s.filters

	s.mu.Unlock()

	s.fire(filters)
}

// SetType applies a structured type filter immediately. An invalid
// value clears the filter, mirroring the query-parameter fallback.
func (s *State) SetType(t models.VenueType) {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return
	}

	if !models.ValidVenueType(string(t)) {
		t = ""
	}

	if s.filters.Type == t {
		s.mu.Unlock()
		return
	}

	s.filters.Type = t
	s.filters.Page = DefaultPage
	filters := s.filters

	s.mu.Unlock()

	s.fire(filters)
}

// SetPage navigates pagination without touching other filters.
func (s *State) SetPage(page int) {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return
	}

	if page < DefaultPage {
		page = DefaultPage
	}

	if s.filters.Page == page {
		s.mu.Unlock()
		return
	}

	s.filters.Page = page
	filters := s.filters

	s.mu.Unlock()

	s.fire(filters)
}

// Close tears the state down, cancelling any pending debounce timer so
// it cannot fire a stale update.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.cancelPendingLocked()
}

func (s *State) cancelPendingLocked() {
	if s.pending != nil {
		s.pending.Stop()
		s.pending = nil
	}
}

func (s *State) fire(filters Filters) {
	if s.onChange != nil {
		s.onChange(filters)
	}
}
