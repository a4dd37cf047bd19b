package hotkey

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sys/windows"

	"github.com/soocke/autofish-go/domain/action"
)

var procGetAsyncKeyState = windows.NewLazySystemDLL("user32.dll").NewProc("GetAsyncKeyState")

// Listen polls key and calls onPress on every key-down edge until ctx is
// cancelled.
func Listen(ctx context.Context, logger *slog.Logger, key string, onPress func()) error {
	vk, ok := action.ParseVK(key)
	if !ok {
		return fmt.Errorf("hotkey: unknown key %q", key)
	}
	logger.Info("press key to start or pause", "key", key)
	ticker := time.NewTicker(pollEvery)
	defer ticker.Stop()
	var e edge
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
			if e.update(r&0x8000 != 0) {
				onPress()
			}
		}
	}
}
