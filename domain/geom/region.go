package geom

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// ErrOutOfBounds reports a crop that does not fit inside its source frame.
var ErrOutOfBounds = errors.New("region out of bounds")

// Region is an integer rectangle in either screen or frame-relative coordinates.
type Region struct {
	Left   int `mapstructure:"left"`
	Top    int `mapstructure:"top"`
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// NewRegion returns a region with the given origin and size.
func NewRegion(left, top, width, height int) Region {
	return Region{Left: left, Top: top, Width: width, Height: height}
}

func (r Region) Right() int  { return r.Left + r.Width }
func (r Region) Bottom() int { return r.Top + r.Height }

// Valid reports whether the region has a positive area.
func (r Region) Valid() bool { return r.Width > 0 && r.Height > 0 }

// Rect converts the region to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right(), r.Bottom())
}

// RelativeTo expresses r in the coordinate space whose origin is parent's
// top-left corner.
func (r Region) RelativeTo(parent Region) Region {
	return Region{Left: r.Left - parent.Left, Top: r.Top - parent.Top, Width: r.Width, Height: r.Height}
}

// Contains reports whether inner lies entirely inside r.
func (r Region) Contains(inner Region) bool {
	return inner.Left >= r.Left && inner.Top >= r.Top && inner.Right() <= r.Right() && inner.Bottom() <= r.Bottom()
}

// ToGlobal translates a point local to r into the parent coordinate space.
func (r Region) ToGlobal(p image.Point) image.Point {
	return image.Pt(r.Left+p.X, r.Top+p.Y)
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.Left, r.Top, r.Width, r.Height)
}

// Crop copies the pixels of frame covered by r into a new zero-origin image.
// The frame is only read, so concurrent readers of the same frame are safe.
func (r Region) Crop(frame *image.RGBA) (*image.RGBA, error) {
	if frame == nil {
		return nil, errors.New("crop: nil frame")
	}
	if !r.Valid() {
		return nil, fmt.Errorf("crop %v: %w", r, ErrOutOfBounds)
	}
	fb := frame.Bounds()
	src := r.Rect().Add(fb.Min)
	if !src.In(fb) {
		return nil, fmt.Errorf("crop %v from %v: %w", r, fb, ErrOutOfBounds)
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	draw.Draw(out, out.Bounds(), frame, src.Min, draw.Src)
	return out, nil
}
