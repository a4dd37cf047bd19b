// Package hotkey listens for the pause key and toggles the shared pause flag.
package hotkey

import (
	"log/slog"
	"time"

	"github.com/soocke/autofish-go/domain/interaction"
)

const (
	pauseTone  = 1000
	resumeTone = 500
	toneLength = 200 * time.Millisecond
	pollEvery  = 20 * time.Millisecond
)

// BeepFunc plays a tone; it may block for the tone length.
type BeepFunc func(freq int, d time.Duration)

// Toggler flips the pause flag and announces the new state.
type Toggler struct {
	state  *interaction.State
	logger *slog.Logger
	beep   BeepFunc
	key    string
}

// NewToggler returns a toggler for state. beep may be nil.
func NewToggler(logger *slog.Logger, state *interaction.State, key string, beep BeepFunc) *Toggler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Toggler{state: state, logger: logger, beep: beep, key: key}
}

// Toggle flips pause and returns the new paused value. The tone plays in the
// background.
func (t *Toggler) Toggle() bool {
	paused := t.state.TogglePaused()
	freq := resumeTone
	if paused {
		freq = pauseTone
		t.logger.Info("paused", "key", t.key)
	} else {
		t.logger.Info("resumed", "key", t.key)
	}
	if t.beep != nil {
		go t.beep(freq, toneLength)
	}
	return paused
}

// edge turns a polled key level into press events.
type edge struct{ down bool }

// update reports true on an up-to-down transition.
func (e *edge) update(down bool) bool {
	pressed := down && !e.down
	e.down = down
	return pressed
}
