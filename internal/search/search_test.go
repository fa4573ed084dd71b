package search

import (
	"testing"
	"time"

	"venuelink/internal/lib/logger/handlers/slogdiscard"
	"venuelink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualTimer never fires on its own; tests trigger it explicitly.
type manualTimer struct {
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	wasRunning := !t.stopped
	t.stopped = true
	return wasRunning
}

// Fire runs the callback unless the timer was stopped first.
func (t *manualTimer) Fire() {
	if !t.stopped {
		t.fn()
	}
}

// FireRaced runs the callback even after Stop, simulating a timer that
// had already begun firing when Stop was called.
func (t *manualTimer) FireRaced() {
	t.fn()
}

type timerLog struct {
	timers []*manualTimer
}

func (tl *timerLog) factory(d time.Duration, fn func()) timer {
	mt := &manualTimer{fn: fn}
	tl.timers = append(tl.timers, mt)
	return mt
}

func (tl *timerLog) last() *manualTimer {
	return tl.timers[len(tl.timers)-1]
}

func newTestState(initial Filters) (*State, *timerLog, *[]Filters) {
	var changes []Filters

	state := NewState(slogdiscard.NewDiscardLogger(), DebounceWindow, initial, func(f Filters) {
		changes = append(changes, f)
	})

	tl := &timerLog{}
	state.newTimer = tl.factory

	return state, tl, &changes
}

func TestDebounceCoalescesKeystrokes(t *testing.T) {
	t.Parallel()

	state, tl, changes := newTestState(Filters{})

	state.SetInput("a")
	state.SetInput("ab")
	state.SetInput("abc")

	assert.Equal(t, "abc", state.Input(), "input updates immediately")
	assert.Empty(t, *changes, "nothing commits before the window passes")

	for _, mt := range tl.timers {
		mt.Fire()
	}

	require.Len(t, *changes, 1, "three keystrokes inside the window are one fetch")
	assert.Equal(t, "abc", (*changes)[0].Search)
	assert.Equal(t, DefaultPage, (*changes)[0].Page)
}

func TestSeparatedKeystrokesEachCommit(t *testing.T) {
	t.Parallel()

	state, tl, changes := newTestState(Filters{})

	state.SetInput("bar")
	tl.last().Fire()

	state.SetInput("cafe")
	tl.last().Fire()

	require.Len(t, *changes, 2)
	assert.Equal(t, "bar", (*changes)[0].Search)
	assert.Equal(t, "cafe", (*changes)[1].Search)
}

func TestRacedStaleTimerIsIgnored(t *testing.T) {
	t.Parallel()

	state, tl, changes := newTestState(Filters{})

	state.SetInput("a")
	stale := tl.last()

	state.SetInput("ab")

	// The stale timer fires despite Stop. The commit must notice the
	// input moved on and do nothing.
	stale.FireRaced()
	assert.Empty(t, *changes)

	tl.last().Fire()

	require.Len(t, *changes, 1)
	assert.Equal(t, "ab", (*changes)[0].Search)
}

func TestCommitSkipsUnchangedSearch(t *testing.T) {
	t.Parallel()

	state, tl, changes := newTestState(Filters{Search: "bar"})

	state.SetInput("bar")
	tl.last().Fire()

	assert.Empty(t, *changes, "re-typing the committed value is not a change")
}

func TestSetTypeAppliesImmediatelyAndResetsPage(t *testing.T) {
	t.Parallel()

	state, _, changes := newTestState(Filters{Page: 3})

	state.SetType(models.VenueTypeBar)

	require.Len(t, *changes, 1, "structured filters skip the debounce")
	assert.Equal(t, models.VenueTypeBar, (*changes)[0].Type)
	assert.Equal(t, DefaultPage, (*changes)[0].Page)

	// Same type again is a no-op.
	state.SetType(models.VenueTypeBar)
	assert.Len(t, *changes, 1)
}

func TestInvalidTypeClearsFilter(t *testing.T) {
	t.Parallel()

	state, _, changes := newTestState(Filters{Type: models.VenueTypeBar})

	state.SetType("nightclub")

	require.Len(t, *changes, 1)
	assert.Equal(t, models.VenueType(""), (*changes)[0].Type)
}

func TestSetPage(t *testing.T) {
	t.Parallel()

	state, _, changes := newTestState(Filters{Search: "bar"})

	state.SetPage(3)

	require.Len(t, *changes, 1)
	assert.Equal(t, 3, (*changes)[0].Page)
	assert.Equal(t, "bar", (*changes)[0].Search, "pagination keeps other filters")

	state.SetPage(0)

	require.Len(t, *changes, 2, "out-of-range page clamps to the first page")
	assert.Equal(t, DefaultPage, (*changes)[1].Page)
}

func TestClearSearchIsImmediate(t *testing.T) {
	t.Parallel()

	state, tl, changes := newTestState(Filters{Search: "bar", Page: 2})

	state.SetInput("barb")
	state.ClearSearch()

	require.Len(t, *changes, 1, "clearing skips the debounce window")
	assert.Equal(t, "", (*changes)[0].Search)
	assert.Equal(t, DefaultPage, (*changes)[0].Page)
	assert.Equal(t, "", state.Input())

	// The cancelled keystroke timer must stay silent.
	for _, mt := range tl.timers {
		mt.Fire()
	}
	assert.Len(t, *changes, 1)
}

func TestCloseCancelsPendingCommit(t *testing.T) {
	t.Parallel()

	state, tl, changes := newTestState(Filters{})

	state.SetInput("bar")
	state.Close()

	for _, mt := range tl.timers {
		mt.FireRaced()
	}
	assert.Empty(t, *changes)

	state.SetType(models.VenueTypeCafe)
	state.SetPage(2)
	assert.Empty(t, *changes, "a closed state ignores further updates")
}
