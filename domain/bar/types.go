package bar

import (
	"image"

	"github.com/soocke/autofish-go/domain/vision"
)

// State enumerates the phases of one bar minigame round.
type State int

const (
	StateReset State = iota
	StateFound
	StateInterception
)

func (s State) String() string {
	switch s {
	case StateReset:
		return "reset"
	case StateFound:
		return "found"
	case StateInterception:
		return "interception"
	default:
		return "unknown"
	}
}

// Reading is what the sensor extracts from one frame: the re-filled bar area
// and, when the bar is visible, the numeral template scores.
type Reading struct {
	Area   int
	Scores vision.Scores
}

// Sensor measures the bar zone of a full frame.
type Sensor interface {
	Read(frame *image.RGBA) (Reading, error)
}

// Result summarizes one recognizer step.
type Result struct {
	State   State  // state reached by this step, before any post-action reset
	Area    int    // segmented area of this frame
	Numeral int    // numeral remembered after this frame
	Acted   bool   // a key was emitted
	Key     string // key to press when Acted
}

// Active reports whether the bar minigame consumed this cycle.
func (r Result) Active() bool { return r.Acted || r.State != StateReset }

// StateListener is called on each state transition.
type StateListener func(prev, next State)

// Keys maps a recognized numeral to its key, 1-based.
var Keys = [...]string{"1", "2", "3", "4"}

// KeyFor returns the key for numeral n, clamped into the valid key range.
func KeyFor(n int) string {
	idx := min(max(n-1, 0), len(Keys)-1)
	return Keys[idx]
}
