package geom

import (
	"image"
	"image/color"
	"testing"
)

func fill(img *image.RGBA, r image.Rectangle, c RGB) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
}

func TestColorRange_Contains(t *testing.T) {
	cr := ColorRange{Lower: RGB{10, 20, 30}, Upper: RGB{40, 50, 60}}
	if !cr.Contains(RGB{10, 50, 30}) {
		t.Fatalf("inclusive bounds should match")
	}
	if cr.Contains(RGB{9, 30, 40}) || cr.Contains(RGB{20, 30, 61}) {
		t.Fatalf("out of range color matched")
	}
}

func TestDominantColor_MostFrequentWins(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	fill(img, img.Bounds(), RGB{1, 2, 3})
	fill(img, image.Rect(0, 0, 10, 3), RGB{200, 10, 10})
	if got := DominantColor(img, img.Bounds()); got != (RGB{1, 2, 3}) {
		t.Fatalf("unexpected dominant color %v", got)
	}
	if got := DominantColor(img, image.Rect(0, 0, 10, 2)); got != (RGB{200, 10, 10}) {
		t.Fatalf("unexpected dominant color in sub-rect %v", got)
	}
}

func TestDominantColor_EmptyRegionIsBlack(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill(img, img.Bounds(), RGB{9, 9, 9})
	if got := DominantColor(img, image.Rect(10, 10, 20, 20)); got != (RGB{}) {
		t.Fatalf("expected black, got %v", got)
	}
}

func TestLuma(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	fill(img, img.Bounds(), RGB{255, 255, 255})
	if v, ok := Luma(img, 1, 1); !ok || v != 255 {
		t.Fatalf("expected white luma, got %d ok=%v", v, ok)
	}
	if _, ok := Luma(img, 2, 0); ok {
		t.Fatalf("expected out-of-frame point to report !ok")
	}
}
