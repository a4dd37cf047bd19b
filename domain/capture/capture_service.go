package capture

import (
	"context"
	"image"
	"log/slog"
	"sync/atomic"
	"time"
)

const captureStatsLogInterval = 5 * time.Second

// Service grabs frames at a fixed rate and exposes the latest one. Readers
// on any goroutine see either the previous or the new snapshot, never a
// partially written frame.
type Service struct {
	grabber      Grabber
	interval     time.Duration
	logger       *slog.Logger
	running      atomic.Bool
	latest       atomic.Pointer[FrameSnapshot]
	captures     atomic.Uint64
	skipped      atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
}

// NewService constructs a capture service targeting fps frames per second.
func NewService(logger *slog.Logger, grabber Grabber, fps int) *Service {
	if fps <= 0 {
		fps = 60
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{grabber: grabber, interval: time.Second / time.Duration(fps), logger: logger}
}

func (s *Service) LatestFrame() FrameSnapshot {
	snap := s.latest.Load()
	if snap == nil {
		return FrameSnapshot{}
	}
	return *snap
}

// Frame returns the latest image or ErrNoFrame.
func (s *Service) Frame() (*image.RGBA, error) {
	if snap := s.latest.Load(); snap != nil && snap.Image != nil {
		return snap.Image, nil
	}
	return nil, ErrNoFrame
}

func (s *Service) Stats() CaptureStats {
	captures := s.captures.Load()
	skipped := s.skipped.Load()
	total := s.captureNanos.Load()
	var avg time.Duration
	avgMicros := 0.0
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
		avgMicros = float64(avg) / float64(time.Microsecond)
	}
	snapshot := s.LatestFrame()
	age := time.Duration(0)
	if !snapshot.CapturedAt.IsZero() {
		age = time.Since(snapshot.CapturedAt)
	}
	return CaptureStats{
		Captures:         captures,
		Skipped:          skipped,
		AvgCapture:       avg,
		AvgCaptureMicros: avgMicros,
		LastCapture:      snapshot.CapturedAt,
		LatestFrameAge:   age,
		Sequence:         snapshot.Sequence,
		Running:          s.running.Load(),
	}
}

// Run captures until ctx is cancelled. Grab failures are logged and counted
// as skipped; the previous frame stays available.
func (s *Service) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}
	defer s.running.Store(false)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	logTicker := time.NewTicker(captureStatsLogInterval)
	defer logTicker.Stop()

	for {
		s.captureOnce()
		select {
		case <-ctx.Done():
			return nil
		case <-logTicker.C:
			s.logStats()
		case <-ticker.C:
		}
	}
}

func (s *Service) captureOnce() {
	start := time.Now()
	img, err := s.grabber.Grab()
	if err != nil || img == nil {
		s.skipped.Add(1)
		if err != nil {
			s.logger.Debug("capture failed", "error", err)
		}
		return
	}
	s.captureNanos.Add(uint64(time.Since(start).Nanoseconds()))
	s.captures.Add(1)
	seq := s.sequence.Add(1)
	s.latest.Store(&FrameSnapshot{Image: img, CapturedAt: time.Now(), Sequence: seq})
}

func (s *Service) logStats() {
	stats := s.Stats()
	s.logger.Debug("capture.stats",
		"captures", stats.Captures,
		"skipped", stats.Skipped,
		"avg_capture", stats.AvgCapture,
		"age", stats.LatestFrameAge,
	)
}
