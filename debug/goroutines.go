package debug

// Debug runtime loggers, started only when config.Debug is true.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"

	"github.com/soocke/autofish-go/domain/capture"
)

// RunGoroutineLogger logs goroutine count, stack memory and capture
// throughput every interval until ctx is cancelled. stats may be nil.
func RunGoroutineLogger(ctx context.Context, interval time.Duration, logger *slog.Logger, stats capture.StatsSource) error {
	if interval <= 0 {
		interval = time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
		metrics.Read(samples)
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		attrs := []any{
			slog.Uint64("goroutines", samples[0].Value.Uint64()),
			slog.Uint64("stack_inuse", ms.StackInuse),
			slog.Uint64("stack_sys", ms.StackSys),
			slog.Uint64("heap_alloc", ms.HeapAlloc),
		}
		if stats != nil {
			st := stats.Stats()
			attrs = append(attrs,
				slog.Uint64("captures", st.Captures),
				slog.Uint64("capture_skipped", st.Skipped),
				slog.Duration("capture_avg", st.AvgCapture),
				slog.Duration("frame_age", st.LatestFrameAge),
			)
		}
		logger.Info("goroutine-stacks", attrs...)
	}
}
