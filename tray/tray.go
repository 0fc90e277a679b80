// Package tray puts a status icon in the system tray with quick actions
// for the overlay and the clipboard watcher.
package tray

import (
	"log"

	"github.com/getlantern/systray"
)

// Config wires tray menu actions to the application. Callbacks run on
// the tray's own goroutine; they must post work elsewhere, never block.
type Config struct {
	Tooltip         string
	OnShowOverlay   func()
	OnHideOverlay   func()
	OnPauseToggle   func(paused bool)
	OnCopyResponse  func()
	OnAnalyzeScreen func()
	OnExit          func()
}

// Run starts the tray icon and blocks until Quit. Callers run it on a
// dedicated goroutine.
func Run(cfg Config) {
	systray.Run(func() { onReady(cfg) }, func() {
		if cfg.OnExit != nil {
			cfg.OnExit()
		}
	})
}

// Quit removes the tray icon and unblocks Run.
func Quit() {
	systray.Quit()
}

func onReady(cfg Config) {
	systray.SetTitle("AI Context")
	systray.SetTooltip(cfg.Tooltip)

	mShow := systray.AddMenuItem("Show overlay", "Bring the overlay window to the front")
	mHide := systray.AddMenuItem("Hide overlay", "Hide the overlay window")
	mPause := systray.AddMenuItemCheckbox("Pause watching", "Stop reacting to clipboard changes", false)
	mCopy := systray.AddMenuItem("Copy last response", "Copy the most recent answer to the clipboard")
	mAnalyze := systray.AddMenuItem("Analyze screen", "Send a screenshot to the vision model")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Quit the application")

	go func() {
		for {
			select {
			case <-mShow.ClickedCh:
				if cfg.OnShowOverlay != nil {
					cfg.OnShowOverlay()
				}
			case <-mHide.ClickedCh:
				if cfg.OnHideOverlay != nil {
					cfg.OnHideOverlay()
				}
			case <-mPause.ClickedCh:
				if mPause.Checked() {
					mPause.Uncheck()
				} else {
					mPause.Check()
				}
				if cfg.OnPauseToggle != nil {
					cfg.OnPauseToggle(mPause.Checked())
				}
			case <-mCopy.ClickedCh:
				if cfg.OnCopyResponse != nil {
					cfg.OnCopyResponse()
				}
			case <-mAnalyze.ClickedCh:
				if cfg.OnAnalyzeScreen != nil {
					cfg.OnAnalyzeScreen()
				}
			case <-mQuit.ClickedCh:
				log.Printf("Quit requested from tray")
				systray.Quit()
				return
			}
		}
	}()
}
