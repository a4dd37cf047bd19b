//go:build !windows

package action

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-vgo/robotgo"
)

// Injector sends input through robotgo.
type Injector struct {
	opts   Options
	logger *slog.Logger
}

// NewInjector returns the robotgo injector.
func NewInjector(logger *slog.Logger, opts Options) *Injector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Injector{opts: opts, logger: logger}
}

func (i *Injector) check(op, key string, err error) {
	if err != nil {
		i.logger.Warn("input failed", "op", op, "key", key, "error", err)
	}
}

// TapKey presses and releases key, then waits the post-action delay.
func (i *Injector) TapKey(key string) {
	k := robotgoKey(key)
	i.check("down", key, robotgo.KeyToggle(k, "down"))
	time.Sleep(i.opts.KeyHold)
	i.check("up", key, robotgo.KeyToggle(k, "up"))
	time.Sleep(i.opts.PostAction)
}

// KeyUp releases key without pressing it first.
func (i *Injector) KeyUp(key string) { i.check("up", key, robotgo.KeyToggle(robotgoKey(key), "up")) }

// Click moves the cursor to (x, y) in screen coordinates and left-clicks.
func (i *Injector) Click(x, y int) {
	robotgo.Move(x, y)
	robotgo.Click("left", false)
	time.Sleep(i.opts.ClickDelay)
}

// Beep rings the terminal bell; frequency cannot be selected here.
func Beep(_ int, d time.Duration) {
	fmt.Fprint(os.Stderr, "\a")
	time.Sleep(d)
}

// robotgoKey maps a key token to robotgo's naming.
func robotgoKey(key string) string {
	k := strings.ToLower(strings.TrimSpace(key))
	switch k {
	case "esc":
		return "escape"
	}
	return k
}
