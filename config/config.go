package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/soocke/autofish-go/domain/geom"
)

// ErrInvalid wraps every configuration problem. It is fatal at startup.
var ErrInvalid = errors.New("invalid configuration")

// EnvPrefix prefixes environment overrides, e.g. AUTOFISH_LOG_LEVEL.
const EnvPrefix = "AUTOFISH"

// Color is an [r, g, b] triple as written in the TOML file.
type Color []int

// RGB converts a validated color.
func (c Color) RGB() geom.RGB {
	if len(c) != 3 {
		return geom.RGB{}
	}
	return geom.RGB{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2])}
}

func (c Color) validate(name string) error {
	if len(c) != 3 {
		return fmt.Errorf("%w: %s must have 3 components, got %d", ErrInvalid, name, len(c))
	}
	for _, v := range c {
		if v < 0 || v > 255 {
			return fmt.Errorf("%w: %s component %d outside 0..255", ErrInvalid, name, v)
		}
	}
	return nil
}

// Range builds an inclusive color range.
func Range(lower, upper Color) geom.ColorRange {
	return geom.ColorRange{Lower: lower.RGB(), Upper: upper.RGB()}
}

// Config holds every tunable of the bot. Durations are Go duration strings.
type Config struct {
	Debug       bool              `mapstructure:"debug"`
	Global      GlobalConfig      `mapstructure:"global"`
	Region      geom.Region       `mapstructure:"region"`
	Monitor     MonitorConfig     `mapstructure:"monitor"`
	BarMinigame BarMinigameConfig `mapstructure:"bar_minigame"`
	Assist      AssistConfig      `mapstructure:"assist"`
	Box         BoxConfig         `mapstructure:"box"`
	Capture     CaptureConfig     `mapstructure:"capture"`
	Assets      AssetsConfig      `mapstructure:"assets"`
	Log         LogConfig         `mapstructure:"log"`
	UI          UIConfig          `mapstructure:"ui"`
}

// GlobalConfig tunes the box minigame and the main loop.
type GlobalConfig struct {
	LastNoDetectionDelay        time.Duration `mapstructure:"last_no_detection_delay"`
	ProcessFrameNumberThreshold float64       `mapstructure:"process_frame_number_threshold"`
	ProcessFrameBoxesThreshold  float64       `mapstructure:"process_frame_boxes_threshold"`
	ProcessFrameNumberConf      float64       `mapstructure:"process_frame_number_conf"`
	ClickDelay                  time.Duration `mapstructure:"click_delay"`
	KeyHold                     time.Duration `mapstructure:"key_hold"`
	KeyDelay                    time.Duration `mapstructure:"key_delay"`
	CycleSleep                  time.Duration `mapstructure:"cycle_sleep"`
	PauseKey                    string        `mapstructure:"pause_key_name"`
	BackgroundColorLower        Color         `mapstructure:"cs_background_color_lower"`
	BackgroundColorUpper        Color         `mapstructure:"cs_background_color_upper"`
	SuccessColor                Color         `mapstructure:"cs_success_color"`
}

type MonitorConfig struct {
	Index int `mapstructure:"index"`
}

// BarMinigameConfig locates and tunes the bar minigame. Both regions are in
// screen coordinates.
type BarMinigameConfig struct {
	MainRegion      geom.Region    `mapstructure:"main_region"`
	NumberRegion    geom.Region    `mapstructure:"number_region"`
	FilterNoise     float64        `mapstructure:"filter_noise"`
	NumberConf      float64        `mapstructure:"number_conf"`
	NumberFloor     float64        `mapstructure:"number_floor"`
	CompareDiff     float64        `mapstructure:"compare_dif"`
	NewAreaDiff     float64        `mapstructure:"new_area_diff"`
	NumberThreshold float64        `mapstructure:"number_threshold"`
	Bar             BarColorConfig `mapstructure:"bar"`
}

type BarColorConfig struct {
	Lower Color `mapstructure:"rgb_color_lower"`
	Upper Color `mapstructure:"rgb_color_upper"`
}

// AssistConfig drives the background interact-key task.
type AssistConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Key        string        `mapstructure:"key"`
	PromptConf float64       `mapstructure:"prompt_conf"`
	PressDelay time.Duration `mapstructure:"press_delay"`
	IdleSleep  time.Duration `mapstructure:"idle_sleep"`
	BarX       int           `mapstructure:"bar_x"`
	BarY       int           `mapstructure:"bar_y"`
}

type BoxConfig struct {
	MinSide   int     `mapstructure:"min_side"`
	AspectMin float64 `mapstructure:"aspect_min"`
	AspectMax float64 `mapstructure:"aspect_max"`
}

type CaptureConfig struct {
	Backend string `mapstructure:"backend"`
	FPS     int    `mapstructure:"fps"`
}

// AssetsConfig names the template images, resolved inside Dir with or
// without a .png extension.
type AssetsConfig struct {
	Dir         string   `mapstructure:"dir"`
	BarNumerals []string `mapstructure:"bar_numerals"`
	Digits      []string `mapstructure:"digits"`
	Prompt      string   `mapstructure:"prompt"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type UIConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Refresh time.Duration `mapstructure:"refresh"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)

	v.SetDefault("global.last_no_detection_delay", "3s")
	v.SetDefault("global.process_frame_number_threshold", 200)
	v.SetDefault("global.process_frame_boxes_threshold", 100)
	v.SetDefault("global.process_frame_number_conf", 0.8)
	v.SetDefault("global.click_delay", "10ms")
	v.SetDefault("global.key_hold", "10ms")
	v.SetDefault("global.key_delay", "100ms")
	v.SetDefault("global.cycle_sleep", "1ms")
	v.SetDefault("global.pause_key_name", "F8")
	v.SetDefault("global.cs_background_color_lower", []int{0, 0, 0})
	v.SetDefault("global.cs_background_color_upper", []int{60, 60, 60})
	v.SetDefault("global.cs_success_color", []int{0, 255, 0})

	v.SetDefault("region.left", 760)
	v.SetDefault("region.top", 440)
	v.SetDefault("region.width", 400)
	v.SetDefault("region.height", 200)

	v.SetDefault("monitor.index", 0)

	v.SetDefault("bar_minigame.main_region.left", 810)
	v.SetDefault("bar_minigame.main_region.top", 900)
	v.SetDefault("bar_minigame.main_region.width", 300)
	v.SetDefault("bar_minigame.main_region.height", 60)
	v.SetDefault("bar_minigame.number_region.left", 940)
	v.SetDefault("bar_minigame.number_region.top", 905)
	v.SetDefault("bar_minigame.number_region.width", 40)
	v.SetDefault("bar_minigame.number_region.height", 50)
	v.SetDefault("bar_minigame.filter_noise", 20)
	v.SetDefault("bar_minigame.number_conf", 0.8)
	v.SetDefault("bar_minigame.number_floor", 0.35)
	v.SetDefault("bar_minigame.compare_dif", 0.4)
	v.SetDefault("bar_minigame.new_area_diff", 1.5)
	v.SetDefault("bar_minigame.number_threshold", 200)
	v.SetDefault("bar_minigame.bar.rgb_color_lower", []int{200, 40, 40})
	v.SetDefault("bar_minigame.bar.rgb_color_upper", []int{255, 110, 110})

	v.SetDefault("assist.enabled", true)
	v.SetDefault("assist.key", "e")
	v.SetDefault("assist.prompt_conf", 0.8)
	v.SetDefault("assist.press_delay", "50ms")
	v.SetDefault("assist.idle_sleep", "20ms")
	v.SetDefault("assist.bar_x", 960)
	v.SetDefault("assist.bar_y", 980)

	v.SetDefault("box.min_side", 20)
	v.SetDefault("box.aspect_min", 0.8)
	v.SetDefault("box.aspect_max", 1.2)

	v.SetDefault("capture.backend", "display")
	v.SetDefault("capture.fps", 60)

	v.SetDefault("assets.dir", "asset")
	v.SetDefault("assets.bar_numerals", []string{"n1", "n2", "n3"})
	v.SetDefault("assets.digits", []string{"d1", "d2", "d3"})
	v.SetDefault("assets.prompt", "d4")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ui.enabled", false)
	v.SetDefault("ui.refresh", "100ms")
}

// Load reads the TOML file at path, applies defaults and AUTOFISH_ env
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalid, path, err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrInvalid, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func unit(name string, v float64) error {
	if v <= 0 || v > 1 {
		return fmt.Errorf("%w: %s=%v must be in (0,1]", ErrInvalid, name, v)
	}
	return nil
}

func byteRange(name string, v float64) error {
	if v < 0 || v > 255 {
		return fmt.Errorf("%w: %s=%v must be in [0,255]", ErrInvalid, name, v)
	}
	return nil
}

func region(name string, r geom.Region) error {
	if !r.Valid() || r.Left < 0 || r.Top < 0 {
		return fmt.Errorf("%w: %s %v must have a non-negative origin and positive size", ErrInvalid, name, r)
	}
	return nil
}

// Validate reports the first invalid setting, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	b := c.BarMinigame
	checks := []error{
		region("region", c.Region),
		region("bar_minigame.main_region", b.MainRegion),
		region("bar_minigame.number_region", b.NumberRegion),
		c.Global.BackgroundColorLower.validate("global.cs_background_color_lower"),
		c.Global.BackgroundColorUpper.validate("global.cs_background_color_upper"),
		c.Global.SuccessColor.validate("global.cs_success_color"),
		b.Bar.Lower.validate("bar_minigame.bar.rgb_color_lower"),
		b.Bar.Upper.validate("bar_minigame.bar.rgb_color_upper"),
		unit("global.process_frame_number_conf", c.Global.ProcessFrameNumberConf),
		unit("bar_minigame.number_conf", b.NumberConf),
		unit("bar_minigame.number_floor", b.NumberFloor),
		unit("assist.prompt_conf", c.Assist.PromptConf),
		byteRange("global.process_frame_number_threshold", c.Global.ProcessFrameNumberThreshold),
		byteRange("global.process_frame_boxes_threshold", c.Global.ProcessFrameBoxesThreshold),
		byteRange("bar_minigame.number_threshold", b.NumberThreshold),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	if !b.MainRegion.Contains(b.NumberRegion) {
		return fmt.Errorf("%w: bar_minigame.number_region %v not inside main_region %v", ErrInvalid, b.NumberRegion, b.MainRegion)
	}
	if b.CompareDiff <= 0 || b.CompareDiff >= 1 {
		return fmt.Errorf("%w: bar_minigame.compare_dif=%v must be in (0,1)", ErrInvalid, b.CompareDiff)
	}
	if b.NewAreaDiff <= 1 {
		return fmt.Errorf("%w: bar_minigame.new_area_diff=%v must be > 1", ErrInvalid, b.NewAreaDiff)
	}
	if b.FilterNoise < 0 {
		return fmt.Errorf("%w: bar_minigame.filter_noise must not be negative", ErrInvalid)
	}
	for name, d := range map[string]time.Duration{
		"global.last_no_detection_delay": c.Global.LastNoDetectionDelay,
		"global.click_delay":             c.Global.ClickDelay,
		"global.key_hold":                c.Global.KeyHold,
		"global.key_delay":               c.Global.KeyDelay,
		"global.cycle_sleep":             c.Global.CycleSleep,
		"assist.press_delay":             c.Assist.PressDelay,
		"assist.idle_sleep":              c.Assist.IdleSleep,
	} {
		if d < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalid, name)
		}
	}
	if c.Box.MinSide <= 0 || c.Box.AspectMin <= 0 || c.Box.AspectMin > c.Box.AspectMax {
		return fmt.Errorf("%w: box filter min_side=%d aspect=[%v,%v]", ErrInvalid, c.Box.MinSide, c.Box.AspectMin, c.Box.AspectMax)
	}
	switch c.Capture.Backend {
	case "display", "primary", "gdi":
	default:
		return fmt.Errorf("%w: capture.backend %q must be display, primary or gdi", ErrInvalid, c.Capture.Backend)
	}
	if c.Capture.FPS <= 0 {
		return fmt.Errorf("%w: capture.fps must be positive", ErrInvalid)
	}
	if c.Monitor.Index < 0 {
		return fmt.Errorf("%w: monitor.index must not be negative", ErrInvalid)
	}
	if c.Capture.Backend == "primary" && c.Monitor.Index != 0 {
		return fmt.Errorf("%w: capture.backend primary only captures monitor 0, got monitor.index=%d", ErrInvalid, c.Monitor.Index)
	}
	if c.Global.PauseKey == "" || c.Assist.Key == "" {
		return fmt.Errorf("%w: pause_key_name and assist.key are required", ErrInvalid)
	}
	if len(c.Assets.BarNumerals) == 0 || len(c.Assets.Digits) == 0 || c.Assets.Prompt == "" {
		return fmt.Errorf("%w: assets must name bar numerals, digits and prompt templates", ErrInvalid)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q must be text or json", ErrInvalid, c.Log.Format)
	}
	return nil
}

// NumberZone returns the numeral region relative to the bar region.
func (b BarMinigameConfig) NumberZone() geom.Region {
	return b.NumberRegion.RelativeTo(b.MainRegion)
}
