package textfilter

import (
	"strings"
	"unicode"
)

// Filter decides whether captured clipboard text is worth sending to the
// model and normalizes it first. The defaults are deliberately permissive:
// content-based filtering is the model's job, not ours.
type Filter struct {
	MinLength int
}

// New creates a filter with the given minimum rune count. Values below 1
// are clamped to 1 so empty strings are always rejected.
func New(minLength int) Filter {
	if minLength < 1 {
		minLength = 1
	}
	return Filter{MinLength: minLength}
}

// ShouldProcess reports whether text passes the length gate. Empty and
// whitespace-only strings never pass.
func (f Filter) ShouldProcess(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	min := f.MinLength
	if min < 1 {
		min = 1
	}
	return len([]rune(trimmed)) >= min
}

// Process cleans raw text for the model. It returns ok=false when the
// text fails ShouldProcess or cleans down to nothing.
func (f Filter) Process(raw string) (string, bool) {
	if !f.ShouldProcess(raw) {
		return "", false
	}
	cleaned := Clean(raw)
	if cleaned == "" {
		return "", false
	}
	return cleaned, true
}

// Clean collapses whitespace runs (including newlines) into a single
// space, drops characters outside a conservative printable allow-list,
// and trims. Applying Clean to already-clean text is a no-op.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(raw))
	space := false
	for _, r := range raw {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if !allowed(r) {
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

// allowed keeps letters, digits and the punctuation that commonly
// survives OCR'd or copied subtitles. Everything else is an artifact.
func allowed(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case '.', ',', '!', '?', ':', ';', '-', '\'', '"', '‘', '’', '“', '”':
		return true
	}
	return false
}
