package action

import (
	"log/slog"
	"time"

	"golang.org/x/sys/windows"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	kernel32         = windows.NewLazySystemDLL("kernel32.dll")
	procKeybdEvent   = user32.NewProc("keybd_event")
	procMouseEvent   = user32.NewProc("mouse_event")
	procSetCursorPos = user32.NewProc("SetCursorPos")
	procBeep         = kernel32.NewProc("Beep")
)

const (
	keyeventfKeyup      = 0x0002
	mouseeventfLeftDown = 0x0002
	mouseeventfLeftUp   = 0x0004
)

// Injector sends input through keybd_event / mouse_event.
type Injector struct {
	opts   Options
	logger *slog.Logger
}

// NewInjector returns the Win32 injector.
func NewInjector(logger *slog.Logger, opts Options) *Injector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Injector{opts: opts, logger: logger}
}

func (i *Injector) vk(key string) (byte, bool) {
	vk, ok := ParseVK(key)
	if !ok {
		i.logger.Warn("unknown key", "key", key)
	}
	return vk, ok
}

// TapKey presses and releases key, then waits the post-action delay.
func (i *Injector) TapKey(key string) {
	vk, ok := i.vk(key)
	if !ok {
		return
	}
	_, _, _ = procKeybdEvent.Call(uintptr(vk), 0, 0, 0)
	time.Sleep(i.opts.KeyHold)
	_, _, _ = procKeybdEvent.Call(uintptr(vk), 0, keyeventfKeyup, 0)
	time.Sleep(i.opts.PostAction)
}

// KeyUp releases key without pressing it first.
func (i *Injector) KeyUp(key string) {
	if vk, ok := i.vk(key); ok {
		_, _, _ = procKeybdEvent.Call(uintptr(vk), 0, keyeventfKeyup, 0)
	}
}

// Click moves the cursor to (x, y) in screen coordinates and left-clicks.
func (i *Injector) Click(x, y int) {
	_, _, _ = procSetCursorPos.Call(uintptr(x), uintptr(y))
	_, _, _ = procMouseEvent.Call(mouseeventfLeftDown, 0, 0, 0, 0)
	_, _, _ = procMouseEvent.Call(mouseeventfLeftUp, 0, 0, 0, 0)
	time.Sleep(i.opts.ClickDelay)
}

// Beep plays a tone through kernel32 Beep; it blocks for d.
func Beep(freq int, d time.Duration) {
	_, _, _ = procBeep.Call(uintptr(freq), uintptr(d.Milliseconds()))
}
