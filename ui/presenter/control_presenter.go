package presenter

// Toggler flips the pause flag and returns the new value.
type Toggler interface{ Toggle() bool }

// ControlView reflects the pause flag on the toggle button.
type ControlView interface {
	SetToggleLabel(text string)
}

// ControlPresenter handles the Pause/Resume and Exit buttons.
type ControlPresenter struct {
	toggler Toggler
	exit    func()
	view    ControlView
	exited  bool
}

func NewControlPresenter(toggler Toggler, exit func(), view ControlView) *ControlPresenter {
	return &ControlPresenter{toggler: toggler, exit: exit, view: view}
}

// ToggleLabel names the action the toggle button performs next.
func ToggleLabel(paused bool) string {
	if paused {
		return "Resume"
	}
	return "Pause"
}

// Sync sets the button label from the current pause flag.
func (p *ControlPresenter) Sync(paused bool) {
	if p != nil && p.view != nil {
		p.view.SetToggleLabel(ToggleLabel(paused))
	}
}

func (p *ControlPresenter) Toggle() {
	if p == nil || p.toggler == nil {
		return
	}
	p.Sync(p.toggler.Toggle())
}

// Exit runs the exit callback once.
func (p *ControlPresenter) Exit() {
	if p == nil || p.exited {
		return
	}
	p.exited = true
	if p.exit != nil {
		p.exit()
	}
}
