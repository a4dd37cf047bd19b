// Package bar recognizes the shrinking bar minigame: a colored bar appears,
// a numeral is shown next to it and the matching key must be pressed once
// the bar has shrunk far enough.
package bar

import (
	"image"
	"log/slog"

	"github.com/soocke/autofish-go/domain/vision"
)

// Options tunes the area ratios driving the state machine.
type Options struct {
	CompareDiff float64 // current/starting at or below this intercepts
	NewAreaDiff float64 // current/starting at or above this rebases starting area
}

// Recognizer tracks the bar round across frames. It has no side effects
// beyond logging: the caller presses Result.Key when Result.Acted is set.
// Not safe for concurrent use.
type Recognizer struct {
	opts         Options
	sensor       Sensor
	numeral      *vision.NumeralMemory
	logger       *slog.Logger
	state        State
	startingArea int
	prevArea     int
	listeners    []StateListener
}

// NewRecognizer builds a recognizer starting in StateReset.
func NewRecognizer(logger *slog.Logger, opts Options, sensor Sensor, numeral *vision.NumeralMemory) *Recognizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Recognizer{opts: opts, sensor: sensor, numeral: numeral, logger: logger}
}

// AddListener registers a transition callback. Call before the first step.
func (r *Recognizer) AddListener(l StateListener) { r.listeners = append(r.listeners, l) }

func (r *Recognizer) State() State      { return r.state }
func (r *Recognizer) StartingArea() int { return r.startingArea }
func (r *Recognizer) PreviousArea() int { return r.prevArea }
func (r *Recognizer) Numeral() int      { return r.numeral.Value() }

// Run reads frame through the sensor and advances the state machine.
func (r *Recognizer) Run(frame *image.RGBA) (Result, error) {
	reading, err := r.sensor.Read(frame)
	if err != nil {
		return Result{State: r.state}, err
	}
	return r.Step(reading), nil
}

// Step advances the state machine by one measured frame.
func (r *Recognizer) Step(in Reading) Result {
	area := in.Area
	if area > 0 {
		r.numeral.Observe(in.Scores)
	}

	switch {
	case area == 0:
		if r.state != StateReset {
			r.logger.Info("bar lost", "state", r.state.String())
		}
		r.reset()
	case r.state == StateFound && r.startingArea > 0:
		ratio := float64(area) / float64(r.startingArea)
		if ratio <= r.opts.CompareDiff {
			if n := r.numeral.Value(); n > 0 {
				r.logger.Info("bar shrunk", "area", area, "starting_area", r.startingArea, "ratio", ratio, "numeral", n)
				r.transition(StateInterception)
			} else {
				r.logger.Warn("interception blocked, no numeral", "area", area, "starting_area", r.startingArea, "ratio", ratio)
			}
		} else if ratio >= r.opts.NewAreaDiff {
			r.logger.Debug("bar area rebased", "from", r.startingArea, "to", area)
			r.startingArea = area
		}
	case r.state == StateReset:
		r.startingArea = area
		r.numeral.ScheduleReset()
		r.logger.Info("bar found", "area", area)
		r.transition(StateFound)
	}
	r.prevArea = area

	res := Result{State: r.state, Area: area, Numeral: r.numeral.Value()}
	if r.state != StateInterception {
		return res
	}
	n := r.numeral.Value()
	if n == 0 {
		r.logger.Warn("interception without numeral, waiting")
		return res
	}
	res.Acted = true
	res.Key = KeyFor(n)
	r.logger.Info("bar key selected", "key", res.Key, "numeral", n)
	r.reset()
	return res
}

// reset zeroes all round state and returns to StateReset.
func (r *Recognizer) reset() {
	r.startingArea = 0
	r.prevArea = 0
	r.numeral.Clear()
	r.transition(StateReset)
}

func (r *Recognizer) transition(next State) {
	prev := r.state
	if prev == next {
		return
	}
	r.state = next
	r.logger.Debug("bar state transition", "from", prev.String(), "to", next.String())
	for _, l := range r.listeners {
		l(prev, next)
	}
}
