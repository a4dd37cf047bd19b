//go:build windows

package capture

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	srccopy      = 0x00CC0020
	captureBlt   = 0x40000000
	dibRGBColors = 0
	biRGB        = 0
)

var (
	user32                 = windows.NewLazySystemDLL("user32.dll")
	gdi32                  = windows.NewLazySystemDLL("gdi32.dll")
	procGetDC              = user32.NewProc("GetDC")
	procReleaseDC          = user32.NewProc("ReleaseDC")
	procCreateCompatibleDC = gdi32.NewProc("CreateCompatibleDC")
	procDeleteDC           = gdi32.NewProc("DeleteDC")
	procSelectObject       = gdi32.NewProc("SelectObject")
	procBitBlt             = gdi32.NewProc("BitBlt")
	procCreateDIBSection   = gdi32.NewProc("CreateDIBSection")
	procDeleteObject       = gdi32.NewProc("DeleteObject")
)

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

type bitmapInfo struct {
	Header bitmapInfoHeader
	_      [4]byte
}

// gdiGrabber copies one monitor rectangle of the virtual screen into a DIB
// section that lives as long as the grabber. Each Grab returns a fresh
// image because published frames are shared with readers.
type gdiGrabber struct {
	mu     sync.Mutex
	bounds image.Rectangle
	screen uintptr
	mem    uintptr
	bmp    uintptr
	prev   uintptr
	bits   []byte
}

func newGDIGrabber(bounds image.Rectangle) (Grabber, error) {
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("capture: invalid monitor bounds %v", bounds)
	}
	g := &gdiGrabber{bounds: bounds}
	if err := g.open(w, h); err != nil {
		g.Close()
		return nil, err
	}
	return g, nil
}

func (g *gdiGrabber) open(w, h int) error {
	var err error
	if g.screen, _, err = procGetDC.Call(0); g.screen == 0 {
		return winErr("GetDC", err)
	}
	if g.mem, _, err = procCreateCompatibleDC.Call(g.screen); g.mem == 0 {
		return winErr("CreateCompatibleDC", err)
	}

	var bi bitmapInfo
	bi.Header.Size = uint32(unsafe.Sizeof(bi.Header))
	bi.Header.Width = int32(w)
	bi.Header.Height = -int32(h) // top-down rows
	bi.Header.Planes = 1
	bi.Header.BitCount = 32
	bi.Header.Compression = biRGB
	bi.Header.SizeImage = uint32(w * h * 4)

	var bits unsafe.Pointer
	g.bmp, _, err = procCreateDIBSection.Call(g.mem, uintptr(unsafe.Pointer(&bi)), dibRGBColors, uintptr(unsafe.Pointer(&bits)), 0, 0)
	if g.bmp == 0 || bits == nil {
		return winErr("CreateDIBSection", err)
	}
	g.bits = unsafe.Slice((*byte)(bits), w*h*4)

	prev, _, err := procSelectObject.Call(g.mem, g.bmp)
	if prev == 0 || prev == ^uintptr(0) {
		return winErr("SelectObject", err)
	}
	g.prev = prev
	return nil
}

// Grab captures the monitor rectangle.
func (g *gdiGrabber) Grab() (*image.RGBA, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.bits == nil {
		return nil, errors.New("capture: gdi grabber closed")
	}
	w, h := g.bounds.Dx(), g.bounds.Dy()
	x, y := g.bounds.Min.X, g.bounds.Min.Y
	ok, _, err := procBitBlt.Call(g.mem, 0, 0, uintptr(w), uintptr(h), g.screen, uintptr(x), uintptr(y), srccopy|captureBlt)
	if ok == 0 {
		return nil, fmt.Errorf("capture: BitBlt %v: %w", g.bounds, err)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bgraToRGBA(img.Pix, g.bits)
	return img, nil
}

// Close releases the GDI objects. Grab fails afterwards.
func (g *gdiGrabber) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.bits = nil
	if g.prev != 0 {
		procSelectObject.Call(g.mem, g.prev)
		g.prev = 0
	}
	if g.bmp != 0 {
		procDeleteObject.Call(g.bmp)
		g.bmp = 0
	}
	if g.mem != 0 {
		procDeleteDC.Call(g.mem)
		g.mem = 0
	}
	if g.screen != 0 {
		procReleaseDC.Call(0, g.screen)
		g.screen = 0
	}
	return nil
}

func winErr(op string, err error) error {
	var errno windows.Errno
	if errors.As(err, &errno) && errno != 0 {
		return fmt.Errorf("capture: %s: %w", op, errno)
	}
	return fmt.Errorf("capture: %s failed", op)
}
