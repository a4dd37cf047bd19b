package main

import (
	"context"

	"github.com/soocke/autofish-go/app"
	"github.com/soocke/autofish-go/ui/model"
	"github.com/soocke/autofish-go/ui/presenter"
	"github.com/soocke/autofish-go/ui/view"
)

const windowTitle = "autofish"

// statusWindow shows the status window and blocks until it closes. Closing
// the window or pressing Exit cancels the bot; a cancelled ctx closes the
// window.
func statusWindow(ctx context.Context, cancel context.CancelFunc, c *app.Container) {
	rv := view.NewRootView(windowTitle, c.Logger.With("component", "ui"))
	control := presenter.NewControlPresenter(c.Toggler, func() {
		cancel()
		rv.Close()
	}, rv)
	rv.Build(c.Config.Global.PauseKey, control.Toggle, control.Exit)
	control.Sync(c.State.Paused())

	status := presenter.NewStatusPresenter(c.State, c.Capture, rv)
	runTime := presenter.NewRunTimePresenter(model.NewRunTimeModel(), c.State, rv)
	var loop *presenter.Loop
	loop = presenter.NewLoop(runTime, status, func() {
		if ctx.Err() != nil {
			control.Exit()
			return
		}
		control.Sync(c.State.Paused())
		rv.Schedule(c.Config.UI.Refresh, loop.Tick)
	})
	rv.Schedule(c.Config.UI.Refresh, loop.Tick)
	rv.Wait()
}
