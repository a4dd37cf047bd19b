// Package vision holds the OpenCV-backed perception primitives: color
// segmentation, quadrilateral extraction and numeral template matching.
// Every function that returns a gocv.Mat transfers ownership to the caller,
// who must Close it.
package vision

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"gocv.io/x/gocv"
)

var errEmptyImage = errors.New("vision: empty image")

// packed returns img with a zero origin and Stride == 4*width so its Pix can
// back a Mat directly.
func packed(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	if b.Min == (image.Point{}) && img.Stride == 4*b.Dx() {
		return img
	}
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

func convertRGBA(img *image.RGBA, code gocv.ColorConversionCode) (gocv.Mat, error) {
	if img == nil || img.Bounds().Empty() {
		return gocv.NewMat(), errEmptyImage
	}
	p := packed(img)
	b := p.Bounds()
	src, err := gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC4, p.Pix)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("vision: mat from frame: %w", err)
	}
	defer src.Close()
	dst := gocv.NewMat()
	gocv.CvtColor(src, &dst, code)
	return dst, nil
}

// RGBMat converts img to a 3-channel Mat in R, G, B channel order.
func RGBMat(img *image.RGBA) (gocv.Mat, error) { return convertRGBA(img, gocv.ColorRGBAToRGB) }

// GrayMat converts img to an 8-bit single channel Mat.
func GrayMat(img *image.RGBA) (gocv.Mat, error) { return convertRGBA(img, gocv.ColorRGBAToGray) }

// GrayImageMat copies an 8-bit grayscale image into a Mat.
func GrayImageMat(img *image.Gray) (gocv.Mat, error) {
	if img == nil || img.Bounds().Empty() {
		return gocv.NewMat(), errEmptyImage
	}
	b := img.Bounds()
	buf := make([]byte, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		buf = append(buf, img.Pix[off:off+b.Dx()]...)
	}
	return gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC1, buf)
}

// Binarize applies a fixed binary threshold: pixels above thresh become 255.
func Binarize(gray gocv.Mat, thresh float32) gocv.Mat {
	out := gocv.NewMat()
	gocv.Threshold(gray, &out, thresh, 255, gocv.ThresholdBinary)
	return out
}
