package view

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/autofish-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView is the status window: state, counters, capture health, run time
// and the Pause/Resume and Exit buttons. All methods must be called on the
// Tk goroutine.
type RootView struct {
	logger *slog.Logger

	RunTime RunTimeStats

	stateLbl    *TLabelWidget
	countersLbl *TLabelWidget
	captureLbl  *TLabelWidget
	toggleBtn   *TButtonWidget
	afterID     string
}

func NewRootView(title string, logger *slog.Logger) *RootView {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	App.WmTitle(title)
	return &RootView{logger: logger}
}

// Build constructs the layout. onToggle and onExit run on button presses;
// onExit also runs when the window is closed.
func (rv *RootView) Build(hotkey string, onToggle, onExit func()) {
	if rv == nil {
		return
	}
	theme.InitStyles()
	WmProtocol(App, "WM_DELETE_WINDOW", onExit)

	frame := TFrame(Padding("4p"))
	Grid(frame, Row(0), Column(0), Sticky("news"))

	rv.stateLbl = TLabel(Style(theme.StylePausedLabel), Txt("Paused"))
	Grid(rv.stateLbl, In(frame), Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.RunTime = NewRunTimeStats(frame, 1, 0)

	rv.countersLbl = TLabel(Style(theme.StyleInfoLabel), Txt(""))
	Grid(rv.countersLbl, In(frame), Row(2), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"))
	rv.captureLbl = TLabel(Style(theme.StyleInfoLabel), Txt("Capture: waiting"))
	Grid(rv.captureLbl, In(frame), Row(3), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"))
	hint := TLabel(Style(theme.StyleInfoLabel), Txt(fmt.Sprintf("Hotkey: %s", hotkey)))
	Grid(hint, In(frame), Row(4), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"))

	btnFrame := TFrame()
	Grid(btnFrame, In(frame), Row(0), Column(2), Rowspan(5), Sticky("ne"), Padx("0.3m"), Pady("0.3m"))
	rv.toggleBtn = TButton(Style(theme.StylePrimaryButton), Txt("Resume"), Command(onToggle))
	Grid(rv.toggleBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := TButton(Style(theme.StyleDangerButton), Txt("Exit"), Command(onExit))
	Grid(exitBtn, In(btnFrame), Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
}

func (rv *RootView) SetState(text string, paused bool) {
	if rv != nil && rv.stateLbl != nil {
		rv.stateLbl.Configure(Txt(text), Style(theme.StateStyle(paused)))
	}
}

func (rv *RootView) SetCounters(text string) {
	if rv != nil && rv.countersLbl != nil {
		rv.countersLbl.Configure(Txt(text))
	}
}

func (rv *RootView) SetCapture(text string) {
	if rv != nil && rv.captureLbl != nil {
		rv.captureLbl.Configure(Txt(text))
	}
}

func (rv *RootView) SetToggleLabel(text string) {
	if rv != nil && rv.toggleBtn != nil {
		rv.toggleBtn.Configure(Txt(text))
	}
}

// SetRunTime updates both run-time labels.
func (rv *RootView) SetRunTime(run, total time.Duration) {
	if rv == nil || rv.RunTime == nil {
		return
	}
	rv.RunTime.SetRun(run)
	rv.RunTime.SetTotal(total)
}

// Schedule queues fn on the Tk event loop after d.
func (rv *RootView) Schedule(d time.Duration, fn func()) {
	if rv != nil {
		rv.afterID = TclAfter(d, fn)
	}
}

// Wait runs the Tk event loop until the window is destroyed.
func (rv *RootView) Wait() { App.Wait() }

// Close cancels the pending refresh and destroys the window.
func (rv *RootView) Close() {
	if rv == nil {
		return
	}
	if rv.afterID != "" {
		TclAfterCancel(rv.afterID)
		rv.afterID = ""
	}
	Destroy(App)
}
