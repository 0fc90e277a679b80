package clipboard

import (
	"golang.design/x/clipboard"
)

// Init must be called once before any read or write. It fails when the
// platform has no clipboard access (e.g. headless X11 without xclip).
func Init() error {
	return clipboard.Init()
}

// ReadText returns the current clipboard text, or "" when the clipboard
// holds no text content.
func ReadText() string {
	return string(clipboard.Read(clipboard.FmtText))
}

// Write replaces the clipboard text content.
func Write(text string) error {
	// Write to clipboard - this returns a channel, not an error
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
