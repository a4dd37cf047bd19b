package bar

import (
	"fmt"
	"image"

	"github.com/soocke/autofish-go/domain/geom"
	"github.com/soocke/autofish-go/domain/vision"
)

// SensorConfig locates and thresholds the bar. Zone is in frame coordinates,
// NumberZone in Zone-local coordinates.
type SensorConfig struct {
	Zone            geom.Region
	NumberZone      geom.Region
	Colors          geom.ColorRange
	MinContourArea  float64
	NumberThreshold float32
}

// FrameSensor measures the bar with color segmentation and the numeral with
// template matching.
type FrameSensor struct {
	cfg       SensorConfig
	templates *vision.TemplateSet
}

// NewFrameSensor validates the zones and returns a sensor. The sensor does
// not take ownership of templates.
func NewFrameSensor(cfg SensorConfig, templates *vision.TemplateSet) (*FrameSensor, error) {
	if templates.Len() == 0 {
		return nil, vision.ErrNoTemplates
	}
	if !cfg.Zone.Valid() || !cfg.NumberZone.Valid() {
		return nil, fmt.Errorf("bar zone %v / number zone %v: %w", cfg.Zone, cfg.NumberZone, geom.ErrOutOfBounds)
	}
	local := geom.NewRegion(0, 0, cfg.Zone.Width, cfg.Zone.Height)
	if !local.Contains(cfg.NumberZone) {
		return nil, fmt.Errorf("number zone %v outside bar zone %v: %w", cfg.NumberZone, cfg.Zone, geom.ErrOutOfBounds)
	}
	return &FrameSensor{cfg: cfg, templates: templates}, nil
}

// Read implements Sensor. Numeral scores are only computed while the bar is
// visible.
func (s *FrameSensor) Read(frame *image.RGBA) (Reading, error) {
	zone, err := s.cfg.Zone.Crop(frame)
	if err != nil {
		return Reading{}, err
	}
	area, err := vision.SegmentArea(zone, s.cfg.Colors, s.cfg.MinContourArea)
	if err != nil {
		return Reading{}, err
	}
	if area == 0 {
		return Reading{}, nil
	}
	patch, err := s.cfg.NumberZone.Crop(zone)
	if err != nil {
		return Reading{}, err
	}
	gray, err := vision.GrayMat(patch)
	if err != nil {
		return Reading{}, err
	}
	defer gray.Close()
	bin := vision.Binarize(gray, s.cfg.NumberThreshold)
	defer bin.Close()
	return Reading{Area: area, Scores: s.templates.Scores(bin)}, nil
}
