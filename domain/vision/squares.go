package vision

import (
	"image"

	"gocv.io/x/gocv"
)

// SquareOptions filters quadrilateral candidates.
type SquareOptions struct {
	Threshold float32 // binary brightness threshold
	MinSide   int
	AspectMin float64
	AspectMax float64
	Epsilon   float64 // polygon approximation tolerance as a fraction of the perimeter
}

// DefaultSquareOptions returns the filter used for the box minigame targets.
func DefaultSquareOptions(threshold float32) SquareOptions {
	return SquareOptions{Threshold: threshold, MinSide: 20, AspectMin: 0.8, AspectMax: 1.2, Epsilon: 0.02}
}

// FindSquares returns the bounding boxes of convex, near-square
// quadrilaterals found in the full contour hierarchy of gray.
func FindSquares(gray gocv.Mat, opts SquareOptions) []image.Rectangle {
	if gray.Empty() {
		return nil
	}
	bin := Binarize(gray, opts.Threshold)
	defer bin.Close()

	contours := gocv.FindContours(bin, gocv.RetrievalTree, gocv.ChainApproxSimple)
	defer contours.Close()

	var out []image.Rectangle
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		peri := gocv.ArcLength(c, true)
		approx := gocv.ApproxPolyDP(c, opts.Epsilon*peri, true)
		pts := approx.ToPoints()
		rect := gocv.BoundingRect(approx)
		approx.Close()

		if len(pts) != 4 || !convexQuad(pts) {
			continue
		}
		w, h := rect.Dx(), rect.Dy()
		if w < opts.MinSide || h < opts.MinSide {
			continue
		}
		aspect := float64(w) / float64(h)
		if aspect < opts.AspectMin || aspect > opts.AspectMax {
			continue
		}
		out = append(out, rect)
	}
	return out
}

// convexQuad reports whether the closed polygon p turns in the same direction
// at every vertex.
func convexQuad(p []image.Point) bool {
	n := len(p)
	sign := 0
	for i := 0; i < n; i++ {
		a, b, c := p[i], p[(i+1)%n], p[(i+2)%n]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		if cross == 0 {
			return false
		}
		s := 1
		if cross < 0 {
			s = -1
		}
		if sign == 0 {
			sign = s
		} else if s != sign {
			return false
		}
	}
	return true
}
