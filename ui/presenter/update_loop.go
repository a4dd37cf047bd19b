package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick on the sub-presenters and then the scheduler callback. The
// zero value is usable (methods are nil-safe).
type Loop struct {
	RunTime  *RunTimePresenter
	Status   *StatusPresenter
	Schedule func()
}

func NewLoop(runTime *RunTimePresenter, status *StatusPresenter, schedule func()) *Loop {
	return &Loop{RunTime: runTime, Status: status, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Status != nil {
		l.Status.Tick(now)
	}
	if l.RunTime != nil {
		l.RunTime.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
