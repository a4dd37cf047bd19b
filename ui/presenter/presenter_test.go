package presenter

import (
	"testing"
	"time"

	"github.com/soocke/autofish-go/domain/bar"
	"github.com/soocke/autofish-go/domain/capture"
	"github.com/soocke/autofish-go/domain/interaction"
	"github.com/soocke/autofish-go/ui/model"
)

type mockStatus struct{ st interaction.Status }

func (m *mockStatus) Snapshot() interaction.Status { return m.st }

type mockStats struct{ cs capture.CaptureStats }

func (m *mockStats) Stats() capture.CaptureStats { return m.cs }

type mockView struct {
	state, counters, capture string
	paused                   bool
	stateCalls               int
	run, total               time.Duration
	toggle                   string
}

func (v *mockView) SetState(text string, paused bool) { v.state, v.paused = text, paused; v.stateCalls++ }
func (v *mockView) SetCounters(text string)           { v.counters = text }
func (v *mockView) SetCapture(text string)            { v.capture = text }
func (v *mockView) SetRunTime(run, total time.Duration) {
	v.run, v.total = run, total
}
func (v *mockView) SetToggleLabel(text string) { v.toggle = text }

type mockToggler struct{ paused bool }

func (m *mockToggler) Toggle() bool { m.paused = !m.paused; return m.paused }
func (m *mockToggler) Paused() bool { return m.paused }

func TestStatusPresenter_FormatsAndDedupes(t *testing.T) {
	src := &mockStatus{st: interaction.Status{Paused: false, Bar: bar.StateFound, Keys: 2, Clicks: 5, Successes: 1}}
	stats := &mockStats{}
	view := &mockView{}
	p := NewStatusPresenter(src, stats, view)

	p.Tick(time.Now())
	if view.state != "Running (bar: found)" || view.paused {
		t.Fatalf("unexpected state %q paused=%v", view.state, view.paused)
	}
	if view.counters != "Keys: 2  Clicks: 5  Fail-safe: 0  Assist: 0  Boxes: 1" {
		t.Fatalf("unexpected counters %q", view.counters)
	}
	if view.capture != "Capture: waiting" {
		t.Fatalf("unexpected capture %q", view.capture)
	}

	p.Tick(time.Now())
	if view.stateCalls != 1 {
		t.Fatalf("unchanged state should not be pushed again, calls=%d", view.stateCalls)
	}

	src.st.Paused = true
	stats.cs = capture.CaptureStats{Running: true, Captures: 10, AvgCaptureMicros: 2500, LatestFrameAge: 16 * time.Millisecond, Skipped: 1}
	p.Tick(time.Now())
	if view.state != "Paused" || !view.paused || view.stateCalls != 2 {
		t.Fatalf("pause not reflected: %q paused=%v calls=%d", view.state, view.paused, view.stateCalls)
	}
	if view.capture != "Capture: 2.5ms avg, frame age 16ms, skipped 1" {
		t.Fatalf("unexpected capture %q", view.capture)
	}
}

func TestCaptureText_Stopped(t *testing.T) {
	if got := CaptureText(capture.CaptureStats{Captures: 3}); got != "Capture: stopped" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestRunTimePresenter_FollowsPauseFlag(t *testing.T) {
	tog := &mockToggler{paused: false}
	view := &mockView{}
	p := NewRunTimePresenter(model.NewRunTimeModel(), tog, view)
	base := time.Unix(100, 0)

	p.Tick(base)
	p.Tick(base.Add(2 * time.Second))
	if view.run != 2*time.Second || view.total != 2*time.Second {
		t.Fatalf("expected 2s run, got run=%v total=%v", view.run, view.total)
	}
	tog.paused = true
	p.Tick(base.Add(4 * time.Second))
	p.Tick(base.Add(9 * time.Second))
	if view.total != 4*time.Second {
		t.Fatalf("paused time must not count, total=%v", view.total)
	}
}

func TestControlPresenter_ToggleAndExit(t *testing.T) {
	tog := &mockToggler{paused: true}
	view := &mockView{}
	exits := 0
	p := NewControlPresenter(tog, func() { exits++ }, view)

	p.Sync(tog.Paused())
	if view.toggle != "Resume" {
		t.Fatalf("paused bot should offer Resume, got %q", view.toggle)
	}
	p.Toggle()
	if tog.paused || view.toggle != "Pause" {
		t.Fatalf("toggle failed: paused=%v label=%q", tog.paused, view.toggle)
	}
	p.Exit()
	p.Exit()
	if exits != 1 {
		t.Fatalf("exit should run once, ran %d", exits)
	}
}

func TestLoop_NilSafe(t *testing.T) {
	var l *Loop
	l.Tick()
	scheduled := 0
	NewLoop(nil, nil, func() { scheduled++ }).Tick()
	if scheduled != 1 {
		t.Fatalf("expected schedule callback, got %d", scheduled)
	}
}
