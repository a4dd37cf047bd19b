package assist

import (
	"context"
	"image"
	"log/slog"
	"time"
)

// Detector checks the assist cues.
type Detector interface {
	PromptVisible(frame *image.RGBA) bool
	BarVisible(frame *image.RGBA) bool
}

// FrameSource returns the newest full frame.
type FrameSource interface {
	Frame() (*image.RGBA, error)
}

// Presser taps a key.
type Presser interface {
	TapKey(key string)
}

// PauseState is the shared pause flag and counter.
type PauseState interface {
	Paused() bool
	RecordAssist() uint64
}

// Options configures the watcher.
type Options struct {
	Key         string
	PressDelay  time.Duration // between the two taps
	IdleSleep   time.Duration
	PausedSleep time.Duration
	RetrySleep  time.Duration // after a missing frame
}

// Outcome classifies a watcher step.
type Outcome int

const (
	OutcomePaused Outcome = iota
	OutcomeNoFrame
	OutcomeIdle
	OutcomePressed
)

// Watcher double-taps Options.Key while a cue is visible.
type Watcher struct {
	opts     Options
	state    PauseState
	frames   FrameSource
	detector Detector
	input    Presser
	logger   *slog.Logger
}

// NewWatcher wires a watcher.
func NewWatcher(logger *slog.Logger, opts Options, state PauseState, frames FrameSource, detector Detector, input Presser) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{opts: opts, state: state, frames: frames, detector: detector, input: input, logger: logger}
}

// Run steps until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		var d time.Duration
		switch w.Step(ctx) {
		case OutcomePaused:
			d = w.opts.PausedSleep
		case OutcomeNoFrame:
			d = w.opts.RetrySleep
		case OutcomeIdle:
			d = w.opts.IdleSleep
		}
		if !sleep(ctx, d) {
			return nil
		}
	}
	return nil
}

// Step checks the latest frame once and double-taps on a hit.
func (w *Watcher) Step(ctx context.Context) Outcome {
	if w.state.Paused() {
		return OutcomePaused
	}
	frame, err := w.frames.Frame()
	if err != nil || frame == nil {
		return OutcomeNoFrame
	}
	reason := ""
	switch {
	case w.detector.PromptVisible(frame):
		reason = "prompt"
	case w.detector.BarVisible(frame):
		reason = "bar"
	default:
		return OutcomeIdle
	}
	n := w.state.RecordAssist()
	w.logger.Info("assist key pressed twice", "key", w.opts.Key, "count", n, "reason", reason)
	w.input.TapKey(w.opts.Key)
	sleep(ctx, w.opts.PressDelay)
	w.input.TapKey(w.opts.Key)
	return OutcomePressed
}

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
