package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/autofish-go/domain/geom"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, 3*time.Second, cfg.Global.LastNoDetectionDelay)
	assert.Equal(t, 10*time.Millisecond, cfg.Global.ClickDelay)
	assert.Equal(t, 100*time.Millisecond, cfg.Global.KeyDelay)
	assert.Equal(t, "F8", cfg.Global.PauseKey)
	assert.Equal(t, geom.RGB{R: 0, G: 255, B: 0}, cfg.Global.SuccessColor.RGB())
	assert.Equal(t, 0.35, cfg.BarMinigame.NumberFloor)
	assert.Equal(t, 0.4, cfg.BarMinigame.CompareDiff)
	assert.Equal(t, []string{"n1", "n2", "n3"}, cfg.Assets.BarNumerals)
	assert.Equal(t, "display", cfg.Capture.Backend)
	assert.Equal(t, 60, cfg.Capture.FPS)
	assert.Equal(t, 20*time.Millisecond, cfg.Assist.IdleSleep)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 100*time.Millisecond, cfg.UI.Refresh)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
debug = true

[global]
last_no_detection_delay = "1500ms"
cs_success_color = [10, 200, 30]
pause_key_name = "F6"

[region]
left = 100
top = 50
width = 640
height = 360

[bar_minigame]
compare_dif = 0.3
main_region = { left = 500, top = 800, width = 200, height = 40 }
number_region = { left = 590, top = 805, width = 20, height = 30 }

[bar_minigame.bar]
rgb_color_lower = [1, 2, 3]
rgb_color_upper = [4, 5, 6]

[log]
format = "json"
`))
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, 1500*time.Millisecond, cfg.Global.LastNoDetectionDelay)
	assert.Equal(t, geom.RGB{R: 10, G: 200, B: 30}, cfg.Global.SuccessColor.RGB())
	assert.Equal(t, "F6", cfg.Global.PauseKey)
	assert.Equal(t, geom.NewRegion(100, 50, 640, 360), cfg.Region)
	assert.Equal(t, 0.3, cfg.BarMinigame.CompareDiff)
	assert.Equal(t, geom.NewRegion(90, 5, 20, 30), cfg.BarMinigame.NumberZone())
	assert.Equal(t, geom.ColorRange{Lower: geom.RGB{R: 1, G: 2, B: 3}, Upper: geom.RGB{R: 4, G: 5, B: 6}},
		Range(cfg.BarMinigame.Bar.Lower, cfg.BarMinigame.Bar.Upper))
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("AUTOFISH_LOG_LEVEL", "debug")
	t.Setenv("AUTOFISH_CAPTURE_FPS", "30")
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 30, cfg.Capture.FPS)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoad_InvalidTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "[global\nbroken"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]string{
		"color length":       "[global]\ncs_success_color = [1, 2]",
		"color range":        "[global]\ncs_success_color = [1, 2, 300]",
		"compare_dif":        "[bar_minigame]\ncompare_dif = 1.2",
		"new_area_diff":      "[bar_minigame]\nnew_area_diff = 0.9",
		"confidence":         "[bar_minigame]\nnumber_conf = 0",
		"region size":        "[region]\nwidth = 0",
		"number outside bar": "[bar_minigame]\nnumber_region = { left = 0, top = 0, width = 10, height = 10 }",
		"backend":            "[capture]\nbackend = \"dxcam\"",
		"negative delay":     "[global]\nclick_delay = \"-1s\"",
		"log format":         "[log]\nformat = \"xml\"",
		"aspect":             "[box]\naspect_min = 1.5\naspect_max = 1.2",
		"negative key delay": "[global]\nkey_delay = \"-5ms\"",
		"primary monitor":    "[capture]\nbackend = \"primary\"\n[monitor]\nindex = 1",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}
