package debug

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// RunMemLogger logs the resident set alongside Go heap stats every interval
// until ctx is cancelled. RSS failures are logged once and then reported as 0.
func RunMemLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) error {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	var rssErrLogged bool
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		rss, err := residentSet()
		if err != nil && !rssErrLogged {
			logger.Warn("memlog: resident set query failed", "error", err)
			rssErrLogged = true
		}
		logger.Info("memstats",
			slog.Int("goroutines", runtime.NumGoroutine()),
			slog.Uint64("heap_alloc", ms.HeapAlloc),
			slog.Uint64("heap_inuse", ms.HeapInuse),
			slog.Uint64("heap_idle", ms.HeapIdle),
			slog.Uint64("heap_sys", ms.HeapSys),
			slog.Uint64("next_gc", ms.NextGC),
			slog.Uint64("rss", rss),
			slog.Uint64("num_gc", uint64(ms.NumGC)),
		)
	}
}
