package vision

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/soocke/autofish-go/domain/geom"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// SegmentArea thresholds img by the inclusive color range, drops external
// contours whose area is at most minArea and returns the pixel count of the
// surviving contours re-filled into a clean mask.
func SegmentArea(img *image.RGBA, rng geom.ColorRange, minArea float64) (int, error) {
	src, err := RGBMat(img)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	mask := gocv.NewMat()
	defer mask.Close()
	lower := gocv.NewScalar(float64(rng.Lower.R), float64(rng.Lower.G), float64(rng.Lower.B), 0)
	upper := gocv.NewScalar(float64(rng.Upper.R), float64(rng.Upper.G), float64(rng.Upper.B), 0)
	gocv.InRangeWithScalar(src, lower, upper, &mask)
	if gocv.CountNonZero(mask) == 0 {
		return 0, nil
	}

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	filled := gocv.Zeros(mask.Rows(), mask.Cols(), gocv.MatTypeCV8UC1)
	defer filled.Close()
	for i := 0; i < contours.Size(); i++ {
		if gocv.ContourArea(contours.At(i)) <= minArea {
			continue
		}
		gocv.DrawContours(&filled, contours, i, white, -1)
	}
	return gocv.CountNonZero(filled), nil
}
