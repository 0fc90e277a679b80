// Package app wires the clipboard watcher, text filter, prompt source,
// model provider and overlay into the single detect-process-display
// sequence, and runs the UI tick loop.
package app

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"

	"github.com/smr10110/ai-subtitle-contextualizer/clipboard"
	"github.com/smr10110/ai-subtitle-contextualizer/config"
	"github.com/smr10110/ai-subtitle-contextualizer/llm"
	"github.com/smr10110/ai-subtitle-contextualizer/logutil"
	"github.com/smr10110/ai-subtitle-contextualizer/overlay"
	"github.com/smr10110/ai-subtitle-contextualizer/prompt"
	"github.com/smr10110/ai-subtitle-contextualizer/screenshot"
	"github.com/smr10110/ai-subtitle-contextualizer/textfilter"
	"github.com/smr10110/ai-subtitle-contextualizer/watcher"
)

// TickInterval is the UI drain cadence, roughly 20 renders per second.
const TickInterval = 50 * time.Millisecond

// App orchestrates one processing pipeline. At most one cycle is in
// flight at a time; clipboard changes arriving mid-cycle are dropped.
type App struct {
	cfg      *config.Config
	provider llm.Provider
	prompts  *prompt.Manager
	filter   textfilter.Filter
	queue    *overlay.Queue
	window   *overlay.Window
	watcher  *watcher.Watcher

	processing atomic.Bool
	paused     atomic.Bool

	mu           sync.Mutex
	lastResponse string
}

// New wires the pipeline. The watcher is created here so its callback
// closes over the orchestrator.
func New(cfg *config.Config, provider llm.Provider, prompts *prompt.Manager, queue *overlay.Queue, window *overlay.Window) *App {
	a := &App{
		cfg:      cfg,
		provider: provider,
		prompts:  prompts,
		filter:   textfilter.New(cfg.MinTextLength),
		queue:    queue,
		window:   window,
	}
	a.watcher = watcher.New(watcher.Options{PollInterval: cfg.PollInterval}, a.onClipboardText)
	return a
}

func (a *App) onClipboardText(text string) {
	if a.paused.Load() {
		log.Printf("Watching paused, ignoring clipboard change")
		return
	}
	if !a.cfg.AutoProcess {
		log.Printf("Auto-process disabled, ignoring clipboard change")
		return
	}
	a.HandleText(text)
}

// HandleText runs one text-processing cycle: filter, loading display,
// prompt build, provider call, result display. A second call while one
// is in flight is dropped, not queued.
func (a *App) HandleText(text string) {
	if !a.processing.CompareAndSwap(false, true) {
		log.Printf("Already processing, skipping")
		return
	}
	defer a.processing.Store(false)

	cleaned, ok := a.filter.Process(text)
	if !ok {
		return
	}
	log.Printf("Processing text: %q", logutil.Sanitize(cleaned))

	a.queue.Post(overlay.Command{Kind: overlay.Loading})

	systemPrompt := a.prompts.PromptForText(cleaned)
	response, err := a.provider.GetContext(cleaned, systemPrompt)
	if err != nil {
		log.Printf("Provider call failed: %v", err)
		a.queue.Post(overlay.Command{Kind: overlay.Error, Text: err.Error()})
		return
	}

	a.setLastResponse(response)
	a.queue.Post(overlay.Command{Kind: overlay.Content, Text: response})
}

// HandleScreenshot captures the screen and runs it through the vision
// prompt. Shares the in-flight guard with the text path.
func (a *App) HandleScreenshot() {
	if !a.processing.CompareAndSwap(false, true) {
		log.Printf("Already processing, skipping screenshot")
		return
	}
	defer a.processing.Store(false)

	imagePrompt, err := a.prompts.ImagePrompt()
	if err != nil {
		log.Printf("Image prompt unavailable: %v", err)
		a.queue.Post(overlay.Command{Kind: overlay.Error, Text: err.Error()})
		return
	}

	a.queue.Post(overlay.Command{Kind: overlay.Loading})

	pngData, err := screenshot.Capture()
	if err != nil {
		log.Printf("Screenshot failed: %v", err)
		a.queue.Post(overlay.Command{Kind: overlay.Error, Text: err.Error()})
		return
	}

	response, err := a.provider.DescribeImage(pngData, imagePrompt)
	if err != nil {
		log.Printf("Vision call failed: %v", err)
		a.queue.Post(overlay.Command{Kind: overlay.Error, Text: err.Error()})
		return
	}

	a.setLastResponse(response)
	a.queue.Post(overlay.Command{Kind: overlay.Content, Text: response})
}

// ProcessCurrent forces a cycle on whatever the clipboard holds right
// now, bypassing the auto-process and pause switches. Hotkey path.
func (a *App) ProcessCurrent() {
	text := clipboard.ReadText()
	if text == "" {
		log.Printf("Clipboard empty, nothing to process")
		return
	}
	a.HandleText(text)
}

// ShowOverlay and HideOverlay post commands on behalf of the tray menu.
func (a *App) ShowOverlay() { a.queue.Post(overlay.Command{Kind: overlay.Show}) }
func (a *App) HideOverlay() { a.queue.Post(overlay.Command{Kind: overlay.Hide}) }

// SetPaused toggles clipboard watching without stopping the poll loop.
func (a *App) SetPaused(paused bool) {
	a.paused.Store(paused)
	log.Printf("Watching paused: %v", paused)
}

// CopyLastResponse puts the most recent answer back on the clipboard.
func (a *App) CopyLastResponse() {
	a.mu.Lock()
	response := a.lastResponse
	a.mu.Unlock()
	if response == "" {
		log.Printf("No response to copy yet")
		return
	}
	if err := clipboard.Write(response); err != nil {
		log.Printf("Failed to copy response: %v", err)
	}
}

// LastResponse returns the most recent successful answer.
func (a *App) LastResponse() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastResponse
}

func (a *App) setLastResponse(response string) {
	a.mu.Lock()
	a.lastResponse = response
	a.mu.Unlock()
}

// Run starts the watcher and the 50ms UI tick loop, then blocks in the
// fyne event loop until the user closes the overlay, the tray quits, or
// ctx is cancelled. Shutdown stops the watcher with its bounded wait
// before returning.
func (a *App) Run(ctx context.Context, fyneApp fyne.App) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.watcher.Start()
	defer a.watcher.Stop()

	go func() {
		ticker := time.NewTicker(TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				fyne.Do(fyneApp.Quit)
				return
			case <-ticker.C:
				fyne.Do(a.window.Tick)
				if a.window.ShouldExit() {
					log.Printf("Overlay closed, shutting down")
					cancel()
					fyne.Do(fyneApp.Quit)
					return
				}
			}
		}
	}()

	fyneApp.Run()
	log.Printf("UI loop exited, cleaning up")
}
