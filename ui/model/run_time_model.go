package model

import (
	"time"
)

// RunTimeModel tracks how long the bot has been unpaused: the current run
// and the total across runs. Presenters poll Values() and update views.
// The zero value is ready to use.
type RunTimeModel struct {
	running  bool
	runStart time.Time
	lastRun  time.Duration
	total    time.Duration
	runs     int
}

// NewRunTimeModel returns a ready-to-use RunTimeModel.
func NewRunTimeModel() *RunTimeModel { return &RunTimeModel{} }

// OnTick folds the current running flag at now into the model.
func (m *RunTimeModel) OnTick(running bool, now time.Time) {
	if m == nil {
		return
	}
	switch {
	case running && !m.running: // resumed
		m.running = true
		m.runStart = now
		m.lastRun = 0
		m.runs++
	case running:
		m.lastRun = now.Sub(m.runStart)
	case m.running: // paused
		m.lastRun = now.Sub(m.runStart)
		m.total += m.lastRun
		m.running = false
	}
}

// Values returns the current (or last) run and the total. The total
// includes the ongoing run.
func (m *RunTimeModel) Values() (run, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	run = m.lastRun
	total = m.total
	if m.running {
		total += run
	}
	return
}

// Runs counts the pause to running transitions seen so far.
func (m *RunTimeModel) Runs() int {
	if m == nil {
		return 0
	}
	return m.runs
}
