package overlay

import (
	"log"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	windowTitle  = "AI Context"
	windowWidth  = 450
	windowHeight = 350

	loadingText = "Processing...\n\nAnalyzing the captured text."
)

// Window is the single-threaded consumer of the command queue. All
// widget mutation happens in Tick, which must run on the fyne UI thread
// (the orchestrator wraps it in fyne.Do).
type Window struct {
	win     fyne.Window
	rich    *widget.RichText
	queue   *Queue
	visible bool

	shouldExit atomic.Bool
}

// NewWindow builds the overlay window, hidden until the first Show
// command arrives. The user closing the window requests application
// shutdown rather than destroying the window.
func NewWindow(a fyne.App, queue *Queue) *Window {
	w := &Window{queue: queue}

	w.win = a.NewWindow(windowTitle)
	w.win.Resize(fyne.NewSize(windowWidth, windowHeight))
	w.rich = widget.NewRichText()
	w.rich.Wrapping = fyne.TextWrapWord
	w.win.SetContent(container.NewScroll(w.rich))

	// Close button runs on the UI thread already, so it flips the exit
	// flag directly instead of going through the queue.
	w.win.SetCloseIntercept(func() {
		log.Printf("Overlay closed by user")
		w.shouldExit.Store(true)
		w.win.Hide()
		w.visible = false
	})

	log.Printf("Overlay window created")
	return w
}

// ShouldExit reports whether the user closed the window. Read by the
// orchestrator's run loop to decide termination.
func (w *Window) ShouldExit() bool {
	return w.shouldExit.Load()
}

// Visible reports the window state as of the last applied command.
func (w *Window) Visible() bool {
	return w.visible
}

// Tick drains every currently queued command in FIFO order and applies
// it. It never partially drains: draining stops only when the queue is
// momentarily empty.
func (w *Window) Tick() {
	for {
		cmd, ok := w.queue.TryNext()
		if !ok {
			return
		}
		w.apply(cmd)
	}
}

func (w *Window) apply(cmd Command) {
	switch cmd.Kind {
	case Show:
		w.show()
	case Hide:
		w.win.Hide()
		w.visible = false
	case Loading:
		w.setPlain(loadingText)
		w.show()
	case Content:
		w.setMarkup(cmd.Text)
		w.show()
		log.Printf("Overlay updated (%d chars)", len(cmd.Text))
	case Error:
		w.setError(cmd.Text)
		w.show()
	default:
		log.Printf("Overlay: unknown command kind %v", cmd.Kind)
	}
}

func (w *Window) show() {
	w.win.Show()
	w.win.RequestFocus()
	w.visible = true
}

func (w *Window) setPlain(text string) {
	w.rich.Segments = []widget.RichTextSegment{
		&widget.TextSegment{Text: text, Style: widget.RichTextStyleInline},
	}
	w.rich.Refresh()
}

func (w *Window) setError(msg string) {
	w.rich.Segments = []widget.RichTextSegment{
		&widget.TextSegment{
			Text:  "Error\n\n",
			Style: widget.RichTextStyle{TextStyle: fyne.TextStyle{Bold: true}},
		},
		&widget.TextSegment{Text: msg, Style: widget.RichTextStyleInline},
	}
	w.rich.Refresh()
}

func (w *Window) setMarkup(text string) {
	spans := ParseMarkup(text)
	segments := make([]widget.RichTextSegment, 0, len(spans))
	for _, s := range spans {
		segments = append(segments, &widget.TextSegment{
			Text: s.Text,
			Style: widget.RichTextStyle{
				Inline:    true,
				TextStyle: fyne.TextStyle{Bold: s.Bold, Italic: s.Italic},
			},
		})
	}
	w.rich.Segments = segments
	w.rich.Refresh()
}
