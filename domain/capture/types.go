package capture

import (
	"errors"
	"image"
	"time"
)

// ErrNoFrame is returned when no frame has been captured yet.
var ErrNoFrame = errors.New("capture: no frame available")

// FrameSnapshot carries the latest captured frame and metadata. Image is
// shared between readers and must not be modified.
type FrameSnapshot struct {
	Image      *image.RGBA
	CapturedAt time.Time
	Sequence   uint64
}

// CaptureStats summarises capture loop behaviour for instrumentation.
type CaptureStats struct {
	Captures         uint64
	Skipped          uint64
	AvgCapture       time.Duration
	AvgCaptureMicros float64
	LastCapture      time.Time
	LatestFrameAge   time.Duration
	Sequence         uint64
	Running          bool
}

// StatsSource exposes capture instrumentation.
type StatsSource interface {
	Stats() CaptureStats
}

// Grabber takes one screenshot.
type Grabber interface {
	Grab() (*image.RGBA, error)
}

// GrabberFunc adapts a function to Grabber.
type GrabberFunc func() (*image.RGBA, error)

func (f GrabberFunc) Grab() (*image.RGBA, error) { return f() }
