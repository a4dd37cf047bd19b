package geom

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestRegion_DerivedEdges(t *testing.T) {
	r := NewRegion(10, 20, 30, 40)
	if r.Right() != 40 || r.Bottom() != 60 {
		t.Fatalf("unexpected edges right=%d bottom=%d", r.Right(), r.Bottom())
	}
	if got := r.Rect(); got != image.Rect(10, 20, 40, 60) {
		t.Fatalf("unexpected rect %v", got)
	}
}

func TestRegion_RelativeAndGlobal(t *testing.T) {
	bar := NewRegion(100, 200, 300, 50)
	num := NewRegion(150, 210, 20, 20).RelativeTo(bar)
	if num.Left != 50 || num.Top != 10 || num.Width != 20 || num.Height != 20 {
		t.Fatalf("unexpected relative region %v", num)
	}
	if p := bar.ToGlobal(image.Pt(5, 7)); p != image.Pt(105, 207) {
		t.Fatalf("unexpected global point %v", p)
	}
}

func TestRegion_Contains(t *testing.T) {
	outer := NewRegion(0, 0, 100, 100)
	if !outer.Contains(NewRegion(10, 10, 90, 90)) {
		t.Fatalf("expected inner region to be contained")
	}
	if outer.Contains(NewRegion(10, 10, 91, 10)) {
		t.Fatalf("expected overflowing region to be rejected")
	}
}

func TestRegion_CropCopiesPixels(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 20, 20))
	frame.SetRGBA(5, 6, color.RGBA{R: 9, G: 8, B: 7, A: 255})
	out, err := NewRegion(5, 6, 4, 4).Crop(frame)
	if err != nil {
		t.Fatalf("crop: %v", err)
	}
	if out.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Fatalf("unexpected bounds %v", out.Bounds())
	}
	if c := out.RGBAAt(0, 0); c.R != 9 || c.G != 8 || c.B != 7 {
		t.Fatalf("unexpected pixel %v", c)
	}
	out.SetRGBA(0, 0, color.RGBA{})
	if c := frame.RGBAAt(5, 6); c.R != 9 {
		t.Fatalf("crop must not alias the source frame")
	}
}

func TestRegion_CropOutOfBounds(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 20, 20))
	cases := []Region{
		NewRegion(15, 15, 10, 10),
		NewRegion(-1, 0, 5, 5),
		NewRegion(0, 0, 0, 5),
	}
	for _, r := range cases {
		if _, err := r.Crop(frame); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("region %v: expected ErrOutOfBounds, got %v", r, err)
		}
	}
	if _, err := NewRegion(0, 0, 1, 1).Crop(nil); err == nil {
		t.Fatalf("expected error for nil frame")
	}
}
