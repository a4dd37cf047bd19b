package debug

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/soocke/autofish-go/domain/capture"
)

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fixedStats struct{}

func (fixedStats) Stats() capture.CaptureStats { return capture.CaptureStats{Captures: 7} }

func TestLoggersStopOnCancel(t *testing.T) {
	var buf safeBuffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	done := make(chan struct{}, 2)
	go func() { _ = RunGoroutineLogger(ctx, 10*time.Millisecond, logger, fixedStats{}); done <- struct{}{} }()
	go func() { _ = RunMemLogger(ctx, 10*time.Millisecond, logger); done <- struct{}{} }()
	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatalf("logger did not stop")
		}
	}
	out := buf.String()
	if !strings.Contains(out, "goroutine-stacks") || !strings.Contains(out, "captures=7") || !strings.Contains(out, "memstats") {
		t.Fatalf("missing log lines:\n%s", out)
	}
}
