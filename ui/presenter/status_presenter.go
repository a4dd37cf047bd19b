package presenter

import (
	"fmt"
	"time"

	"github.com/soocke/autofish-go/domain/capture"
	"github.com/soocke/autofish-go/domain/interaction"
)

// StatusSource yields a snapshot of the shared bot state.
type StatusSource interface {
	Snapshot() interaction.Status
}

// StatusView renders status lines.
type StatusView interface {
	SetState(text string, paused bool)
	SetCounters(text string)
	SetCapture(text string)
}

// StatusPresenter formats the bot status and capture health. Labels are only
// pushed when their text changes.
type StatusPresenter struct {
	status StatusSource
	stats  capture.StatsSource
	view   StatusView

	lastState, lastCounters, lastCapture string
}

func NewStatusPresenter(status StatusSource, stats capture.StatsSource, view StatusView) *StatusPresenter {
	return &StatusPresenter{status: status, stats: stats, view: view}
}

func (p *StatusPresenter) Tick(time.Time) {
	if p == nil || p.status == nil || p.view == nil {
		return
	}
	st := p.status.Snapshot()

	state := StateText(st)
	if state != p.lastState {
		p.lastState = state
		p.view.SetState(state, st.Paused)
	}
	counters := fmt.Sprintf("Keys: %d  Clicks: %d  Fail-safe: %d  Assist: %d  Boxes: %d",
		st.Keys, st.Clicks, st.FailSafes, st.Assists, st.Successes)
	if counters != p.lastCounters {
		p.lastCounters = counters
		p.view.SetCounters(counters)
	}
	if p.stats == nil {
		return
	}
	capText := CaptureText(p.stats.Stats())
	if capText != p.lastCapture {
		p.lastCapture = capText
		p.view.SetCapture(capText)
	}
}

// StateText renders the pause flag and bar state.
func StateText(st interaction.Status) string {
	if st.Paused {
		return "Paused"
	}
	return "Running (bar: " + st.Bar.String() + ")"
}

// CaptureText renders capture throughput.
func CaptureText(cs capture.CaptureStats) string {
	if !cs.Running && cs.Captures > 0 {
		return "Capture: stopped"
	}
	if cs.Captures == 0 {
		return "Capture: waiting"
	}
	return fmt.Sprintf("Capture: %.1fms avg, frame age %dms, skipped %d",
		cs.AvgCaptureMicros/1000, cs.LatestFrameAge.Milliseconds(), cs.Skipped)
}
