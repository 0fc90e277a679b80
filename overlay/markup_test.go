package overlay

import "testing"

func TestParseMarkupTripleMarker(t *testing.T) {
	spans := ParseMarkup("***x***")
	if len(spans) != 1 {
		t.Fatalf("Got %d spans, want 1: %+v", len(spans), spans)
	}
	s := spans[0]
	if s.Text != "x" || !s.Bold || !s.Italic {
		t.Errorf("Span = %+v, want bold italic 'x'", s)
	}
}

func TestParseMarkupBoldAndItalic(t *testing.T) {
	spans := ParseMarkup("a **b** c *d* e")
	want := []Span{
		{Text: "a "},
		{Text: "b", Bold: true},
		{Text: " c "},
		{Text: "d", Italic: true},
		{Text: " e"},
	}
	if len(spans) != len(want) {
		t.Fatalf("Got %d spans, want %d: %+v", len(spans), len(want), spans)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("Span %d = %+v, want %+v", i, spans[i], want[i])
		}
	}
}

func TestParseMarkupUnmatchedMarkersStayLiteral(t *testing.T) {
	spans := ParseMarkup("2 * 3 = 6")
	if len(spans) != 1 || spans[0] != (Span{Text: "2 * 3 = 6"}) {
		t.Errorf("Spans = %+v, want single literal span", spans)
	}
}

func TestParseMarkupPrecedence(t *testing.T) {
	// The triple marker must not be half-eaten by ** or *.
	spans := ParseMarkup("**bold** and ***both***")
	if len(spans) != 3 {
		t.Fatalf("Got %d spans: %+v", len(spans), spans)
	}
	if spans[0] != (Span{Text: "bold", Bold: true}) {
		t.Errorf("Span 0 = %+v", spans[0])
	}
	if spans[2] != (Span{Text: "both", Bold: true, Italic: true}) {
		t.Errorf("Span 2 = %+v", spans[2])
	}
}

func TestParseMarkupEmptySpanNotMatched(t *testing.T) {
	// "**" with nothing inside is not a span; the markers stay literal.
	spans := ParseMarkup("****")
	var got string
	for _, s := range spans {
		if s.Bold || s.Italic {
			t.Fatalf("Unexpected styled span: %+v", s)
		}
		got += s.Text
	}
	if got != "****" {
		t.Errorf("Reassembled = %q, want \"****\"", got)
	}
}

func TestParseMarkupPlainText(t *testing.T) {
	spans := ParseMarkup("no markup here")
	if len(spans) != 1 || spans[0].Text != "no markup here" {
		t.Errorf("Spans = %+v", spans)
	}
}
