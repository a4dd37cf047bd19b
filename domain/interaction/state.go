package interaction

import (
	"sync/atomic"

	"github.com/soocke/autofish-go/domain/bar"
)

// State is shared between the scheduler, the assist task, the pause hotkey
// and the status window. Every field is an atomic so readers may observe a
// slightly stale value but never a torn one.
type State struct {
	paused    atomic.Bool
	barState  atomic.Int32
	successes atomic.Int32
	keys      atomic.Uint64
	clicks    atomic.Uint64
	failSafes atomic.Uint64
	assists   atomic.Uint64
}

// NewState returns a paused state.
func NewState() *State {
	s := &State{}
	s.paused.Store(true)
	return s
}

func (s *State) Paused() bool            { return s.paused.Load() }
func (s *State) SetPaused(p bool)        { s.paused.Store(p) }
func (s *State) SetBarState(b bar.State) { s.barState.Store(int32(b)) }
func (s *State) SetSuccesses(n int)      { s.successes.Store(int32(n)) }

// TogglePaused flips the pause flag and returns the new value.
func (s *State) TogglePaused() bool {
	for {
		old := s.paused.Load()
		if s.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// RecordKey, RecordClick, RecordFailSafe and RecordAssist bump their counter
// and return the new total.
func (s *State) RecordKey() uint64      { return s.keys.Add(1) }
func (s *State) RecordClick() uint64    { return s.clicks.Add(1) }
func (s *State) RecordFailSafe() uint64 { return s.failSafes.Add(1) }
func (s *State) RecordAssist() uint64   { return s.assists.Add(1) }

// Status is a point-in-time copy of State.
type Status struct {
	Paused    bool
	Bar       bar.State
	Successes int
	Keys      uint64
	Clicks    uint64
	FailSafes uint64
	Assists   uint64
}

// Snapshot copies every field.
func (s *State) Snapshot() Status {
	return Status{
		Paused:    s.paused.Load(),
		Bar:       bar.State(s.barState.Load()),
		Successes: int(s.successes.Load()),
		Keys:      s.keys.Load(),
		Clicks:    s.clicks.Load(),
		FailSafes: s.failSafes.Load(),
		Assists:   s.assists.Load(),
	}
}
