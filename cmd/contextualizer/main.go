package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	fyneapp "fyne.io/fyne/v2/app"

	"github.com/smr10110/ai-subtitle-contextualizer/app"
	"github.com/smr10110/ai-subtitle-contextualizer/clipboard"
	"github.com/smr10110/ai-subtitle-contextualizer/config"
	"github.com/smr10110/ai-subtitle-contextualizer/hotkey"
	"github.com/smr10110/ai-subtitle-contextualizer/llm"
	"github.com/smr10110/ai-subtitle-contextualizer/logutil"
	"github.com/smr10110/ai-subtitle-contextualizer/overlay"
	"github.com/smr10110/ai-subtitle-contextualizer/prompt"
	"github.com/smr10110/ai-subtitle-contextualizer/tray"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logutil.Setup(cfg.EnableFileLogging)

	for _, warning := range cfg.Validate() {
		log.Printf("Config warning: %s", warning)
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}

	// Missing required prompt is a fatal configuration error.
	prompts, err := prompt.NewManager(cfg.PromptsDir)
	if err != nil {
		log.Fatalf("Failed to load prompts: %v", err)
	}

	provider := llm.Select(llm.Config{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
		Host:   cfg.Host,
	})
	if err := provider.Ping(); err != nil {
		// Degraded start: provider failures surface per-cycle as error
		// displays, so an unreachable backend is not fatal here.
		log.Printf("Provider ping failed: %v", err)
	}

	if err := clipboard.Init(); err != nil {
		log.Fatalf("Failed to initialize clipboard: %v", err)
	}

	log.Printf("AI Subtitle Contextualizer initialized")
	log.Printf("Using model: %s at %s", cfg.Model, cfg.Host)
	log.Printf("Poll interval: %v, hotkey: %s", cfg.PollInterval, cfg.Hotkey)

	fyneApp := fyneapp.New()
	queue := overlay.NewQueue()
	window := overlay.NewWindow(fyneApp, queue)
	a := app.New(cfg, provider, prompts, queue, window)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go tray.Run(tray.Config{
		Tooltip:        fmt.Sprintf("AI Context - Press %s to analyze the clipboard", cfg.Hotkey),
		OnShowOverlay:  a.ShowOverlay,
		OnHideOverlay:  a.HideOverlay,
		OnPauseToggle:  a.SetPaused,
		OnCopyResponse: a.CopyLastResponse,
		OnAnalyzeScreen: func() {
			go a.HandleScreenshot()
		},
		OnExit: cancel,
	})
	defer tray.Quit()

	// Global hotkey forces a cycle on the current clipboard even when
	// auto-processing is off or paused.
	hotkey.Listen(cfg.Hotkey, func() {
		go a.ProcessCurrent()
	})

	// SIGINT/SIGTERM is a normal shutdown path.
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		sig := <-ch
		log.Printf("Received signal %v, shutting down", sig)
		cancel()
	}()

	a.Run(ctx, fyneApp)
	log.Printf("Shutdown complete")
}
