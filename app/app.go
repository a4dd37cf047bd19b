package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/soocke/autofish-go/config"
	"github.com/soocke/autofish-go/domain/capture"
	"github.com/soocke/autofish-go/domain/hotkey"

	dbg "github.com/soocke/autofish-go/debug"
)

const debugInterval = 5 * time.Second

// WindowFunc runs a window on the calling goroutine until it closes. cancel
// stops the bot.
type WindowFunc func(ctx context.Context, cancel context.CancelFunc, c *Container)

// Run builds the container and runs capture, the hotkey listener, the
// scheduler, the assist watcher and the debug loggers until ctx is cancelled
// or one of them fails. When the UI is enabled and window is not nil, window
// runs on the calling goroutine, which must be the main one.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, window WindowFunc) error {
	c, err := BuildContainer(cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := zoneCheck(cfg, capture.DisplayBounds(cfg.Monitor.Index)); err != nil {
		logger.Warn("configured zones do not fit the captured display", "error", err, "backend", cfg.Capture.Backend)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	spawn := func(name string, fn func(context.Context) error) {
		g.Go(func() (err error) {
			defer recoverLog(logger, name, &err)
			return fn(gctx)
		})
	}

	spawn("capture", c.Capture.Run)
	spawn("hotkey", func(ctx context.Context) error {
		return hotkey.Listen(ctx, logger.With("component", "hotkey"), cfg.Global.PauseKey, func() { c.Toggler.Toggle() })
	})
	spawn("scheduler", c.Scheduler.Run)
	if c.Assist != nil {
		spawn("assist", c.Assist.Run)
	}
	if cfg.Debug {
		spawn("goroutines", func(ctx context.Context) error {
			return dbg.RunGoroutineLogger(ctx, debugInterval, logger, c.Capture)
		})
		spawn("memstats", func(ctx context.Context) error {
			return dbg.RunMemLogger(ctx, debugInterval, logger)
		})
	}

	logger.Info("started paused",
		"key", cfg.Global.PauseKey,
		"region", cfg.Region,
		"bar_region", cfg.BarMinigame.MainRegion,
		"assist", cfg.Assist.Enabled,
		"capture", cfg.Capture.Backend,
	)

	if cfg.UI.Enabled && window != nil {
		window(gctx, cancel, c)
		cancel()
	}

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// recoverLog turns a worker panic into an error so the group shuts down.
func recoverLog(logger *slog.Logger, name string, err *error) {
	if r := recover(); r != nil {
		logger.Error("worker panic", "worker", name, "error", r, "stack", string(debug.Stack()))
		*err = fmt.Errorf("%s: panic: %v", name, r)
	}
}
