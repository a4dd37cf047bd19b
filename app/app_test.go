package app

import (
	"errors"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/autofish-go/config"
	"github.com/soocke/autofish-go/domain/action"
	"github.com/soocke/autofish-go/domain/geom"
)

func loadConfig(t *testing.T, body string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	return cfg
}

func TestBuildContainer_MissingAssets(t *testing.T) {
	dir := t.TempDir()
	cfg := loadConfig(t, "[assets]\ndir = \""+filepath.ToSlash(dir)+"\"\n")

	c, err := BuildContainer(cfg, slog.New(slog.DiscardHandler))
	require.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "bar numerals")
}

func TestInputOptions(t *testing.T) {
	cfg := loadConfig(t, "")
	assert.Equal(t, action.Options{
		KeyHold:    10 * time.Millisecond,
		PostAction: 100 * time.Millisecond,
		ClickDelay: 10 * time.Millisecond,
	}, inputOptions(cfg))

	cfg = loadConfig(t, "[global]\nkey_delay = \"250ms\"\nkey_hold = \"20ms\"")
	opts := inputOptions(cfg)
	assert.Equal(t, 250*time.Millisecond, opts.PostAction)
	assert.Equal(t, 20*time.Millisecond, opts.KeyHold)
}

func TestZoneCheck(t *testing.T) {
	cfg := loadConfig(t, "")

	assert.NoError(t, zoneCheck(cfg, image.Rect(0, 0, 1920, 1080)))

	err := zoneCheck(cfg, image.Rect(0, 0, 1280, 720))
	require.Error(t, err)
	assert.True(t, errors.Is(err, geom.ErrOutOfBounds))
	assert.Contains(t, err.Error(), "bar_minigame.main_region")
	assert.NotContains(t, err.Error(), "region (760")
}

func TestRecoverLog_ConvertsPanic(t *testing.T) {
	run := func() (err error) {
		defer recoverLog(slog.New(slog.DiscardHandler), "worker", &err)
		panic("boom")
	}
	err := run()
	require.Error(t, err)
	assert.Equal(t, "worker: panic: boom", err.Error())
}

type closingGrabber struct{ closed int }

func (g *closingGrabber) Grab() (*image.RGBA, error) { return nil, errors.New("unused") }

func (g *closingGrabber) Close() error {
	g.closed++
	return nil
}

func TestContainerClose_ReleasesGrabber(t *testing.T) {
	g := &closingGrabber{}
	c := &Container{Logger: slog.New(slog.DiscardHandler), grabber: g}
	c.Close()
	c.Close()
	assert.Equal(t, 1, g.closed)
}
