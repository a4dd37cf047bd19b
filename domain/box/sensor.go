package box

import (
	"image"

	"github.com/soocke/autofish-go/domain/vision"
)

// SensorConfig holds the thresholds of the two box detectors.
type SensorConfig struct {
	DigitThreshold float32
	DigitConf      float32
	ShapeThreshold float32
	Squares        vision.SquareOptions
}

// FrameSensor finds numbered digit boxes by template and target squares by
// contour shape in a cropped region.
type FrameSensor struct {
	cfg    SensorConfig
	digits *vision.TemplateSet
}

// NewFrameSensor returns a sensor matching against digits; it does not take
// ownership of the template set.
func NewFrameSensor(cfg SensorConfig, digits *vision.TemplateSet) (*FrameSensor, error) {
	if digits.Len() == 0 {
		return nil, vision.ErrNoTemplates
	}
	cfg.Squares.Threshold = cfg.ShapeThreshold
	return &FrameSensor{cfg: cfg, digits: digits}, nil
}

// Digits returns every digit template hit in region.
func (s *FrameSensor) Digits(region *image.RGBA) ([]vision.Detection, error) {
	gray, err := vision.GrayMat(region)
	if err != nil {
		return nil, err
	}
	defer gray.Close()
	bin := vision.Binarize(gray, s.cfg.DigitThreshold)
	defer bin.Close()
	return s.digits.Locate(bin, s.cfg.DigitConf), nil
}

// Shapes returns the bounding boxes of square candidates in region.
func (s *FrameSensor) Shapes(region *image.RGBA) ([]image.Rectangle, error) {
	gray, err := vision.GrayMat(region)
	if err != nil {
		return nil, err
	}
	defer gray.Close()
	return vision.FindSquares(gray, s.cfg.Squares), nil
}
