//go:build !windows

package capture

import (
	"errors"
	"image"
)

func newGDIGrabber(image.Rectangle) (Grabber, error) {
	return nil, errors.New("capture: gdi backend requires windows")
}
