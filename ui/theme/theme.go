package theme

// Palette and ttk styles for the status window.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	ColorBg      = "#f7f9fb"
	ColorSurface = "#ffffff"
	ColorPrimary = "#2563eb"
	ColorDanger  = "#dc2626"
	ColorAccent  = "#10b981"
	ColorWarn    = "#d97706"
	ColorText    = "#1e293b"
)

// style names used with Style("running.TLabel") etc.
const (
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleRunningLabel  = "running.TLabel"
	StylePausedLabel   = "paused.TLabel"
	StyleInfoLabel     = "info.TLabel"
)

// StateStyle picks the state label style for the pause flag.
func StateStyle(paused bool) string {
	if paused {
		return StylePausedLabel
	}
	return StyleRunningLabel
}

// InitStyles activates the base theme and configures the semantic styles.
// Call once on the Tk goroutine before building widgets.
func InitStyles() {
	_ = ActivateTheme("azure light")
	App.Configure(Background(ColorBg))

	StyleConfigure(StylePrimaryButton, Background(ColorPrimary), Foreground("white"),
		Padding("4p 3p"), Borderwidth(1), Relief("ridge"))
	StyleConfigure(StyleDangerButton, Background(ColorDanger), Foreground("white"),
		Padding("4p 3p"), Borderwidth(1), Relief("ridge"))
	state := func(name, bg string) {
		StyleConfigure(name, Foreground("white"), Background(bg),
			Padding("4p 2p"), Borderwidth(1), Relief("groove"))
	}
	state(StyleRunningLabel, ColorAccent)
	state(StylePausedLabel, ColorWarn)
	StyleConfigure(StyleInfoLabel, Foreground(ColorText), Background(ColorSurface), Padding("2p 1p"))
}
