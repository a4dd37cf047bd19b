package presenter

import (
	"time"

	"github.com/soocke/autofish-go/ui/model"
)

// PausedModel reports whether the bot is paused.
type PausedModel interface{ Paused() bool }

// RunTimeView displays the current run and total run time.
type RunTimeView interface {
	SetRunTime(run, total time.Duration)
}

// RunTimePresenter advances the run-time model from the pause flag and pushes
// the durations to the view.
type RunTimePresenter struct {
	runs  *model.RunTimeModel
	state PausedModel
	view  RunTimeView
}

func NewRunTimePresenter(runs *model.RunTimeModel, state PausedModel, view RunTimeView) *RunTimePresenter {
	return &RunTimePresenter{runs: runs, state: state, view: view}
}

// Tick samples the pause flag at now.
func (p *RunTimePresenter) Tick(now time.Time) {
	if p == nil || p.runs == nil || p.state == nil || p.view == nil {
		return
	}
	p.runs.OnTick(!p.state.Paused(), now)
	p.view.SetRunTime(p.runs.Values())
}
