package overlay

import "strings"

// Span is a run of text with inline styling resolved.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
}

// ParseMarkup splits model output into styled spans. It recognizes
// ***bold italic***, **bold** and *italic* delimiters, checked in that
// order so triple markers are never half-eaten by the shorter patterns.
// Unmatched markers stay literal. Nested or overlapping spans are not
// handled; first match wins.
func ParseMarkup(text string) []Span {
	var spans []Span
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			spans = append(spans, Span{Text: plain.String()})
			plain.Reset()
		}
	}

	markers := []struct {
		token  string
		bold   bool
		italic bool
	}{
		{"***", true, true},
		{"**", true, false},
		{"*", false, true},
	}

	i := 0
	for i < len(text) {
		if text[i] != '*' {
			j := strings.IndexByte(text[i:], '*')
			if j < 0 {
				plain.WriteString(text[i:])
				break
			}
			plain.WriteString(text[i : i+j])
			i += j
			continue
		}
		matched := false
		for _, m := range markers {
			if !strings.HasPrefix(text[i:], m.token) {
				continue
			}
			start := i + len(m.token)
			end := strings.Index(text[start:], m.token)
			if end < 1 {
				// No closer (or empty span): not a match at this tier.
				continue
			}
			flush()
			spans = append(spans, Span{
				Text:   text[start : start+end],
				Bold:   m.bold,
				Italic: m.italic,
			})
			i = start + end + len(m.token)
			matched = true
			break
		}
		if !matched {
			plain.WriteByte(text[i])
			i++
		}
	}
	flush()
	return spans
}
