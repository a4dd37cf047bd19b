package geom

import (
	"fmt"
	"image"
)

// RGB is an 8-bit color triple. Box identity compares RGB values exactly.
type RGB struct {
	R, G, B uint8
}

func (c RGB) String() string { return fmt.Sprintf("(%d,%d,%d)", c.R, c.G, c.B) }

// ColorRange is an inclusive per-channel range.
type ColorRange struct {
	Lower RGB
	Upper RGB
}

// Contains reports whether every channel of c lies within the range.
func (cr ColorRange) Contains(c RGB) bool {
	return c.R >= cr.Lower.R && c.R <= cr.Upper.R &&
		c.G >= cr.Lower.G && c.G <= cr.Upper.G &&
		c.B >= cr.Lower.B && c.B <= cr.Upper.B
}

// DominantColor returns the most frequent color inside rect (frame-relative).
// Ties resolve to the smallest color in R, G, B order. An empty intersection
// yields black.
func DominantColor(img *image.RGBA, rect image.Rectangle) RGB {
	if img == nil {
		return RGB{}
	}
	r := rect.Add(img.Bounds().Min).Intersect(img.Bounds())
	if r.Empty() {
		return RGB{}
	}
	counts := make(map[RGB]int, 16)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := img.PixOffset(r.Min.X, y)
		row := img.Pix[off : off+r.Dx()*4]
		for i := 0; i < len(row); i += 4 {
			counts[RGB{row[i], row[i+1], row[i+2]}]++
		}
	}
	var best RGB
	bestN := -1
	for c, n := range counts {
		if n > bestN || (n == bestN && less(c, best)) {
			best, bestN = c, n
		}
	}
	return best
}

func less(a, b RGB) bool {
	if a.R != b.R {
		return a.R < b.R
	}
	if a.G != b.G {
		return a.G < b.G
	}
	return a.B < b.B
}

// Luma returns the 8-bit grayscale value of the pixel at (x, y) using the
// BT.601 weights OpenCV applies for RGB to gray conversion. ok is false when
// the point is outside img.
func Luma(img *image.RGBA, x, y int) (v uint8, ok bool) {
	if img == nil || !image.Pt(x, y).In(img.Bounds()) {
		return 0, false
	}
	c := img.RGBAAt(x, y)
	l := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	return uint8(l + 0.5), true
}
