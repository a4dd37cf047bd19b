// Package interaction runs the per-cycle decision loop: the bar minigame
// preempts the box minigame, and a fail-safe clicks every candidate when no
// targeted click has happened for too long.
package interaction

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/autofish-go/domain/bar"
	"github.com/soocke/autofish-go/domain/box"
	"github.com/soocke/autofish-go/domain/capture"
	"github.com/soocke/autofish-go/domain/geom"
	"github.com/soocke/autofish-go/domain/vision"
)

// FrameSource yields the latest captured full frame.
type FrameSource interface {
	LatestFrame() capture.FrameSnapshot
}

// BarRecognizer advances the bar minigame with one frame.
type BarRecognizer interface {
	Run(frame *image.RGBA) (bar.Result, error)
}

// BoxSensor detects digit boxes and target squares in the work region.
type BoxSensor interface {
	Digits(region *image.RGBA) ([]vision.Detection, error)
	Shapes(region *image.RGBA) ([]image.Rectangle, error)
}

// Input injects key and mouse events. Implementations apply their own
// post-action delay.
type Input interface {
	TapKey(key string)
	KeyUp(key string)
	Click(x, y int)
}

// Options configures the scheduler.
type Options struct {
	Region        geom.Region   // box minigame work region in frame coordinates
	Origin        image.Point   // screen position of the frame's top-left pixel
	FailSafeDelay time.Duration // minimum spacing of fail-safe clicks
	HeldKey       string        // released every cycle while paused
	PausedSleep   time.Duration
	RetrySleep    time.Duration // after a missing frame or an active bar cycle
	CycleSleep    time.Duration // between ordinary cycles
}

// Outcome classifies a cycle.
type Outcome int

const (
	OutcomePaused Outcome = iota
	OutcomeNoFrame
	OutcomeBar
	OutcomeNoDetection
	OutcomeClicked
	OutcomeFailSafe
	OutcomeIdle
)

func (o Outcome) String() string {
	switch o {
	case OutcomePaused:
		return "paused"
	case OutcomeNoFrame:
		return "no_frame"
	case OutcomeBar:
		return "bar"
	case OutcomeNoDetection:
		return "no_detection"
	case OutcomeClicked:
		return "clicked"
	case OutcomeFailSafe:
		return "fail_safe"
	case OutcomeIdle:
		return "idle"
	default:
		return "unknown"
	}
}

// Scheduler owns wentToNone, the no-detection timer and the box tracker.
// Cycle must be called from a single goroutine.
type Scheduler struct {
	opts    Options
	state   *State
	frames  FrameSource
	bar     BarRecognizer
	sensor  BoxSensor
	tracker *box.Tracker
	input   Input
	logger  *slog.Logger
	now     func() time.Time

	cycle           uint64
	wentToNone      bool
	lastNoDetection time.Time
	warned          map[string]bool // stages that already reported an out-of-bounds zone
}

// NewScheduler wires the scheduler. now may be nil to use time.Now.
func NewScheduler(logger *slog.Logger, opts Options, state *State, frames FrameSource, barRec BarRecognizer, sensor BoxSensor, tracker *box.Tracker, input Input, now func() time.Time) *Scheduler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		opts: opts, state: state, frames: frames, bar: barRec, sensor: sensor,
		tracker: tracker, input: input, logger: logger, now: now,
		lastNoDetection: now(),
		warned:          make(map[string]bool),
	}
}

// WentToNone reports whether digit detection is suppressed for the next cycle.
func (s *Scheduler) WentToNone() bool { return s.wentToNone }

// Run loops until ctx is cancelled. The current cycle always completes.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		var d time.Duration
		switch s.Cycle() {
		case OutcomePaused:
			d = s.opts.PausedSleep
		case OutcomeNoFrame, OutcomeBar:
			d = s.opts.RetrySleep
		default:
			d = s.opts.CycleSleep
		}
		if !sleep(ctx, d) {
			return nil
		}
	}
}

// sleep waits for d or until ctx is done; it reports false on cancellation.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// Cycle runs one decision step.
func (s *Scheduler) Cycle() Outcome {
	if s.state.Paused() {
		if s.opts.HeldKey != "" {
			s.input.KeyUp(s.opts.HeldKey)
		}
		return OutcomePaused
	}
	snap := s.frames.LatestFrame()
	if snap.Image == nil {
		return OutcomeNoFrame
	}
	s.cycle++

	res, err := s.bar.Run(snap.Image)
	if err != nil {
		s.skip("bar", err)
		return OutcomeNoFrame
	}
	if res.Acted {
		s.input.TapKey(res.Key)
		n := s.state.RecordKey()
		s.logger.Info("key pressed", "key", res.Key, "numeral", res.Numeral, "total", n)
	}
	if res.Active() {
		return OutcomeBar
	}

	region, err := s.opts.Region.Crop(snap.Image)
	if err != nil {
		s.skip("region", err)
		return OutcomeNoFrame
	}

	var dets []vision.Detection
	if !s.wentToNone {
		if dets, err = s.sensor.Digits(region); err != nil {
			s.skip("digits", err)
			return OutcomeNoFrame
		}
	}
	if len(dets) > 0 {
		s.tracker.UpdateDigits(s.cycle, region, dets)
		s.wentToNone = false
	} else if !s.wentToNone {
		s.resetNoDetection()
		return OutcomeNoDetection
	}

	shapes, err := s.sensor.Shapes(region)
	if err != nil {
		s.skip("shapes", err)
		return OutcomeNoFrame
	}
	if len(shapes) == 0 {
		s.resetNoDetection()
		return OutcomeNoDetection
	}

	d := s.tracker.Resolve(s.cycle, region, shapes)
	s.state.SetSuccesses(d.Successes)
	if d.Click {
		p := s.screen(d.Target)
		s.input.Click(p.X, p.Y)
		n := s.state.RecordClick()
		s.logger.Info("box clicked", "slot", d.Slot, "successes", d.Successes, "x", p.X, "y", p.Y, "total", n)
		s.wentToNone = true
		return OutcomeClicked
	}

	now := s.now()
	if now.Sub(s.lastNoDetection) <= s.opts.FailSafeDelay {
		return OutcomeIdle
	}
	for _, r := range shapes {
		c := r.Min.Add(image.Pt(r.Dx()/2, r.Dy()/2))
		p := s.screen(c)
		s.input.Click(p.X, p.Y)
	}
	s.lastNoDetection = now
	n := s.state.RecordFailSafe()
	s.logger.Warn("fail-safe click", "candidates", len(shapes), "successes", d.Successes, "total", n)
	return OutcomeFailSafe
}

func (s *Scheduler) resetNoDetection() {
	s.wentToNone = false
	s.lastNoDetection = s.now()
}

// screen maps a region-local point to screen coordinates.
func (s *Scheduler) screen(p image.Point) image.Point {
	return s.opts.Region.ToGlobal(p).Add(s.opts.Origin)
}

// skip logs a skipped cycle. An out-of-bounds zone warns once per stage and
// then drops to debug, since it repeats every cycle until the config changes.
func (s *Scheduler) skip(stage string, err error) {
	switch {
	case errors.Is(err, capture.ErrNoFrame):
		s.logger.Debug("cycle skipped", "stage", stage, "error", err)
	case errors.Is(err, geom.ErrOutOfBounds):
		if s.warned[stage] {
			s.logger.Debug("cycle skipped", "stage", stage, "error", err)
			return
		}
		s.warned[stage] = true
		s.logger.Warn("zone outside the captured frame, cycles will be skipped", "stage", stage, "error", err)
	default:
		s.logger.Warn("cycle skipped", "stage", stage, "error", err)
	}
}
