package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/smr10110/ai-subtitle-contextualizer/config"
	"github.com/smr10110/ai-subtitle-contextualizer/overlay"
	"github.com/smr10110/ai-subtitle-contextualizer/prompt"
)

type fakeProvider struct {
	block    chan struct{}
	calls    atomic.Int32
	response string
	err      error
}

func (f *fakeProvider) GetContext(userText, systemPrompt string) (string, error) {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	return f.response, f.err
}

func (f *fakeProvider) DescribeImage(pngData []byte, prompt string) (string, error) {
	return f.response, f.err
}

func (f *fakeProvider) Ping() error { return nil }

func newTestApp(t *testing.T, provider *fakeProvider) (*App, *overlay.Queue) {
	t.Helper()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, prompt.SystemPromptName+".md"), []byte("Explain: {subtitle_text}"), 0644)
	if err != nil {
		t.Fatalf("Failed to write prompt: %v", err)
	}
	prompts, err := prompt.NewManager(dir)
	if err != nil {
		t.Fatalf("Failed to create prompt manager: %v", err)
	}

	cfg := &config.Config{
		AutoProcess:   true,
		PollInterval:  config.DefaultPollInterval,
		MinTextLength: 1,
		PromptsDir:    dir,
	}
	queue := overlay.NewQueue()
	return New(cfg, provider, prompts, queue, nil), queue
}

func drainKinds(q *overlay.Queue) []overlay.Kind {
	var kinds []overlay.Kind
	for {
		cmd, ok := q.TryNext()
		if !ok {
			return kinds
		}
		kinds = append(kinds, cmd.Kind)
	}
}

func TestHandleTextPostsLoadingThenContent(t *testing.T) {
	provider := &fakeProvider{response: "**explained**"}
	a, queue := newTestApp(t, provider)

	a.HandleText("what does this mean")

	kinds := drainKinds(queue)
	if len(kinds) != 2 || kinds[0] != overlay.Loading || kinds[1] != overlay.Content {
		t.Fatalf("Commands = %v, want [loading content]", kinds)
	}
	if a.LastResponse() != "**explained**" {
		t.Errorf("LastResponse = %q", a.LastResponse())
	}
}

func TestHandleTextProviderErrorPostsError(t *testing.T) {
	provider := &fakeProvider{err: fmt.Errorf("backend down")}
	a, queue := newTestApp(t, provider)

	a.HandleText("some text")

	first, _ := queue.TryNext()
	second, ok := queue.TryNext()
	if first.Kind != overlay.Loading || !ok || second.Kind != overlay.Error {
		t.Fatalf("Commands = %v then %v, want Loading then Error", first.Kind, second.Kind)
	}
	if second.Text != "backend down" {
		t.Errorf("Error text = %q", second.Text)
	}
	if a.LastResponse() != "" {
		t.Error("LastResponse must not be set on failure")
	}
}

func TestHandleTextDropsFilteredInput(t *testing.T) {
	provider := &fakeProvider{response: "x"}
	a, queue := newTestApp(t, provider)

	a.HandleText("   \n  ")

	if kinds := drainKinds(queue); len(kinds) != 0 {
		t.Errorf("Commands = %v, want none for filtered input", kinds)
	}
	if provider.calls.Load() != 0 {
		t.Error("Provider must not be called for filtered input")
	}
}

func TestSecondChangeDroppedWhileProcessing(t *testing.T) {
	provider := &fakeProvider{response: "ok", block: make(chan struct{})}
	a, _ := newTestApp(t, provider)

	done := make(chan struct{})
	go func() {
		a.HandleText("first change")
		close(done)
	}()

	// Wait for the first cycle to reach the provider call.
	deadline := time.Now().Add(time.Second)
	for provider.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("First cycle never reached the provider")
		}
		time.Sleep(time.Millisecond)
	}

	// A second change while in flight is dropped, not queued.
	a.HandleText("second change")
	if n := provider.calls.Load(); n != 1 {
		t.Fatalf("Provider calls = %d, want 1 (drop while processing)", n)
	}

	close(provider.block)
	<-done

	// After the flag clears, processing resumes.
	provider.block = nil
	a.HandleText("third change")
	if n := provider.calls.Load(); n != 2 {
		t.Errorf("Provider calls = %d, want 2 after flag cleared", n)
	}
}

func TestHandleScreenshotRequiresImagePrompt(t *testing.T) {
	provider := &fakeProvider{response: "x"}
	a, queue := newTestApp(t, provider)

	// No image prompt file exists, so the cycle fails before Loading.
	a.HandleScreenshot()

	cmd, ok := queue.TryNext()
	if !ok || cmd.Kind != overlay.Error {
		t.Fatalf("Command = %+v, %v; want Error", cmd, ok)
	}
}

func TestSetPausedBlocksClipboardPath(t *testing.T) {
	provider := &fakeProvider{response: "x"}
	a, queue := newTestApp(t, provider)

	a.SetPaused(true)
	a.onClipboardText("copied while paused")
	if provider.calls.Load() != 0 {
		t.Error("Provider must not be called while paused")
	}
	if kinds := drainKinds(queue); len(kinds) != 0 {
		t.Errorf("Commands = %v, want none while paused", kinds)
	}

	a.SetPaused(false)
	a.onClipboardText("copied after resume")
	if provider.calls.Load() != 1 {
		t.Error("Expected processing to resume after unpause")
	}
}

func TestAutoProcessOffIgnoresClipboard(t *testing.T) {
	provider := &fakeProvider{response: "x"}
	a, _ := newTestApp(t, provider)
	a.cfg.AutoProcess = false

	a.onClipboardText("copied text")
	if provider.calls.Load() != 0 {
		t.Error("Provider must not be called with auto-process off")
	}

	// The explicit path still works.
	a.HandleText("forced text")
	if provider.calls.Load() != 1 {
		t.Error("Expected HandleText to bypass the auto-process switch")
	}
}
