// Package assist presses the interact key whenever the catch prompt or the
// reel bar is on screen, independently of the minigame loop.
package assist

import (
	"image"

	"github.com/soocke/autofish-go/domain/geom"
	"github.com/soocke/autofish-go/domain/vision"
)

const (
	promptThreshold = 180
	barThreshold    = 70
)

// DetectorConfig locates the two assist cues.
type DetectorConfig struct {
	PromptConf float32
	BarPoint   image.Point // screen pixel that turns bright while the reel bar is up
}

// FrameDetector checks the assist cues against full frames.
type FrameDetector struct {
	cfg    DetectorConfig
	prompt *vision.TemplateSet
}

// NewFrameDetector returns a detector; it does not take ownership of prompt.
func NewFrameDetector(cfg DetectorConfig, prompt *vision.TemplateSet) (*FrameDetector, error) {
	if prompt.Len() == 0 {
		return nil, vision.ErrNoTemplates
	}
	return &FrameDetector{cfg: cfg, prompt: prompt}, nil
}

// PromptVisible reports whether the prompt template matches anywhere in frame.
func (d *FrameDetector) PromptVisible(frame *image.RGBA) bool {
	gray, err := vision.GrayMat(frame)
	if err != nil {
		return false
	}
	defer gray.Close()
	bin := vision.Binarize(gray, promptThreshold)
	defer bin.Close()
	return d.prompt.Present(bin, d.cfg.PromptConf)
}

// BarVisible reports whether the reel bar pixel is bright. Points outside the
// frame are never visible.
func (d *FrameDetector) BarVisible(frame *image.RGBA) bool {
	v, ok := geom.Luma(frame, frame.Bounds().Min.X+d.cfg.BarPoint.X, frame.Bounds().Min.Y+d.cfg.BarPoint.Y)
	return ok && v > barThreshold
}
