package capture

import (
	"fmt"
	"image"

	kscreen "github.com/kbinani/screenshot"
	vscreen "github.com/vova616/screenshot"
)

// Backend names accepted by NewGrabber.
const (
	BackendDisplay = "display"
	BackendPrimary = "primary"
	BackendGDI     = "gdi"
)

// NewGrabber returns the screen grabber for backend. monitor selects the
// display for BackendDisplay and BackendGDI. BackendPrimary always captures
// monitor 0. A returned grabber may implement io.Closer.
func NewGrabber(backend string, monitor int) (Grabber, error) {
	switch backend {
	case BackendDisplay, "":
		if err := checkMonitor(monitor); err != nil {
			return nil, err
		}
		return GrabberFunc(func() (*image.RGBA, error) {
			return kscreen.CaptureDisplay(monitor)
		}), nil
	case BackendPrimary:
		if monitor != 0 {
			return nil, fmt.Errorf("capture: %s backend only captures monitor 0, got %d", backend, monitor)
		}
		return GrabberFunc(vscreen.CaptureScreen), nil
	case BackendGDI:
		if err := checkMonitor(monitor); err != nil {
			return nil, err
		}
		return newGDIGrabber(DisplayBounds(monitor))
	default:
		return nil, fmt.Errorf("capture: unknown backend %q", backend)
	}
}

func checkMonitor(monitor int) error {
	if n := kscreen.NumActiveDisplays(); monitor < 0 || monitor >= n {
		return fmt.Errorf("capture: monitor %d not in [0,%d)", monitor, n)
	}
	return nil
}

// DisplayBounds returns the screen rectangle of monitor.
func DisplayBounds(monitor int) image.Rectangle {
	return kscreen.GetDisplayBounds(monitor)
}

// bgraToRGBA swaps channel order and forces opaque alpha, the layout GDI
// bitmaps use. The source alpha byte is undefined.
func bgraToRGBA(dst, src []byte) {
	for i := 0; i+3 < len(src) && i+3 < len(dst); i += 4 {
		dst[i], dst[i+1], dst[i+2], dst[i+3] = src[i+2], src[i+1], src[i], 0xFF
	}
}
