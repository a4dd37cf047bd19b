package app

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"time"

	"github.com/soocke/autofish-go/config"
	"github.com/soocke/autofish-go/domain/action"
	"github.com/soocke/autofish-go/domain/assist"
	"github.com/soocke/autofish-go/domain/bar"
	"github.com/soocke/autofish-go/domain/box"
	"github.com/soocke/autofish-go/domain/capture"
	"github.com/soocke/autofish-go/domain/geom"
	"github.com/soocke/autofish-go/domain/hotkey"
	"github.com/soocke/autofish-go/domain/interaction"
	"github.com/soocke/autofish-go/domain/vision"
)

const (
	pausedSleep = 100 * time.Millisecond
	retrySleep  = 10 * time.Millisecond
)

// Container assembles the services of the bot. Side effects are limited to
// asset loading and capture backend selection.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	State      *interaction.State
	Capture    *capture.Service
	Input      *action.Injector
	Recognizer *bar.Recognizer
	Tracker    *box.Tracker
	Scheduler  *interaction.Scheduler
	Assist     *assist.Watcher
	Toggler    *hotkey.Toggler

	templates []*vision.TemplateSet
	grabber   capture.Grabber
}

// BuildContainer loads templates and wires every component from cfg.
func BuildContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}
	ok := false
	defer func() {
		if !ok {
			c.Close()
		}
	}()

	load := func(names ...string) (*vision.TemplateSet, error) {
		set, err := vision.LoadTemplates(cfg.Assets.Dir, names...)
		if err != nil {
			return nil, err
		}
		c.templates = append(c.templates, set)
		return set, nil
	}
	numerals, err := load(cfg.Assets.BarNumerals...)
	if err != nil {
		return nil, fmt.Errorf("bar numerals: %w", err)
	}
	digits, err := load(cfg.Assets.Digits...)
	if err != nil {
		return nil, fmt.Errorf("box digits: %w", err)
	}
	prompt, err := load(cfg.Assets.Prompt)
	if err != nil {
		return nil, fmt.Errorf("assist prompt: %w", err)
	}

	grabber, err := capture.NewGrabber(cfg.Capture.Backend, cfg.Monitor.Index)
	if err != nil {
		return nil, err
	}
	c.grabber = grabber
	c.Capture = capture.NewService(logger.With("component", "capture"), grabber, cfg.Capture.FPS)
	c.State = interaction.NewState()
	c.Input = action.NewInjector(logger.With("component", "input"), inputOptions(cfg))

	bm := cfg.BarMinigame
	barSensor, err := bar.NewFrameSensor(bar.SensorConfig{
		Zone:            bm.MainRegion,
		NumberZone:      bm.NumberZone(),
		Colors:          config.Range(bm.Bar.Lower, bm.Bar.Upper),
		MinContourArea:  bm.FilterNoise,
		NumberThreshold: float32(bm.NumberThreshold),
	}, numerals)
	if err != nil {
		return nil, fmt.Errorf("bar sensor: %w", err)
	}
	barLog := logger.With("component", "bar")
	c.Recognizer = bar.NewRecognizer(barLog,
		bar.Options{CompareDiff: bm.CompareDiff, NewAreaDiff: bm.NewAreaDiff},
		barSensor,
		vision.NewNumeralMemory(bm.NumberConf, bm.NumberFloor, barLog))
	c.Recognizer.AddListener(func(_, next bar.State) { c.State.SetBarState(next) })

	g := cfg.Global
	squares := vision.DefaultSquareOptions(float32(g.ProcessFrameBoxesThreshold))
	squares.MinSide = cfg.Box.MinSide
	squares.AspectMin, squares.AspectMax = cfg.Box.AspectMin, cfg.Box.AspectMax
	boxSensor, err := box.NewFrameSensor(box.SensorConfig{
		DigitThreshold: float32(g.ProcessFrameNumberThreshold),
		DigitConf:      float32(g.ProcessFrameNumberConf),
		ShapeThreshold: float32(g.ProcessFrameBoxesThreshold),
		Squares:        squares,
	}, digits)
	if err != nil {
		return nil, fmt.Errorf("box sensor: %w", err)
	}
	c.Tracker = box.NewTracker(logger.With("component", "box"), box.Options{
		Background: config.Range(g.BackgroundColorLower, g.BackgroundColorUpper),
		Success:    g.SuccessColor.RGB(),
	})

	c.Scheduler = interaction.NewScheduler(logger.With("component", "scheduler"), interaction.Options{
		Region:        cfg.Region,
		Origin:        capture.DisplayBounds(cfg.Monitor.Index).Min,
		FailSafeDelay: g.LastNoDetectionDelay,
		HeldKey:       cfg.Assist.Key,
		PausedSleep:   pausedSleep,
		RetrySleep:    retrySleep,
		CycleSleep:    g.CycleSleep,
	}, c.State, c.Capture, c.Recognizer, boxSensor, c.Tracker, c.Input, time.Now)

	if cfg.Assist.Enabled {
		det, err := assist.NewFrameDetector(assist.DetectorConfig{
			PromptConf: float32(cfg.Assist.PromptConf),
			BarPoint:   image.Pt(cfg.Assist.BarX, cfg.Assist.BarY),
		}, prompt)
		if err != nil {
			return nil, fmt.Errorf("assist detector: %w", err)
		}
		c.Assist = assist.NewWatcher(logger.With("component", "assist"), assist.Options{
			Key:         cfg.Assist.Key,
			PressDelay:  cfg.Assist.PressDelay,
			IdleSleep:   cfg.Assist.IdleSleep,
			PausedSleep: pausedSleep,
			RetrySleep:  retrySleep,
		}, c.State, c.Capture, det, c.Input)
	}

	c.Toggler = hotkey.NewToggler(logger.With("component", "hotkey"), c.State, g.PauseKey, action.Beep)
	ok = true
	return c, nil
}

// inputOptions maps the [global] timing keys onto injector timing.
func inputOptions(cfg *config.Config) action.Options {
	return action.Options{
		KeyHold:    cfg.Global.KeyHold,
		PostAction: cfg.Global.KeyDelay,
		ClickDelay: cfg.Global.ClickDelay,
	}
}

// Close releases the template matrices and the capture backend.
func (c *Container) Close() {
	for _, t := range c.templates {
		t.Close()
	}
	c.templates = nil
	if cl, ok := c.grabber.(io.Closer); ok {
		if err := cl.Close(); err != nil {
			c.Logger.Warn("close capture backend", "error", err)
		}
	}
	c.grabber = nil
}

// zoneCheck reports configured zones that do not fit the capture bounds.
func zoneCheck(cfg *config.Config, bounds image.Rectangle) error {
	frame := geom.NewRegion(0, 0, bounds.Dx(), bounds.Dy())
	var errs []error
	zones := []struct {
		name string
		r    geom.Region
	}{
		{"region", cfg.Region},
		{"bar_minigame.main_region", cfg.BarMinigame.MainRegion},
	}
	for _, z := range zones {
		if !frame.Contains(z.r) {
			errs = append(errs, fmt.Errorf("%s %v outside capture %v: %w", z.name, z.r, frame, geom.ErrOutOfBounds))
		}
	}
	return errors.Join(errs...)
}
