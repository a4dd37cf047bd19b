//go:build !windows

package hotkey

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// Listen calls onPress for every SIGUSR1 until ctx is cancelled. Global key
// polling is only available on Windows.
func Listen(ctx context.Context, logger *slog.Logger, key string, onPress func()) error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGUSR1)
	defer signal.Stop(ch)
	logger.Info("send SIGUSR1 to start or pause", "key", key, "pid", os.Getpid())
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ch:
			onPress()
		}
	}
}
