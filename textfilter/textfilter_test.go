package textfilter

import "testing"

func TestShouldProcessRejectsBlank(t *testing.T) {
	f := New(1)
	for _, s := range []string{"", " ", "\t", "\n\n", "  \r\n  "} {
		if f.ShouldProcess(s) {
			t.Errorf("ShouldProcess(%q) = true, want false", s)
		}
	}
}

func TestShouldProcessIsPermissive(t *testing.T) {
	f := New(1)
	for _, s := range []string{"a", "hi", "Loading", "12:34:56", "anything at all, really"} {
		if !f.ShouldProcess(s) {
			t.Errorf("ShouldProcess(%q) = false, want true", s)
		}
	}
}

func TestShouldProcessMinLength(t *testing.T) {
	f := New(5)
	if f.ShouldProcess("abcd") {
		t.Error("expected 4 runes to fail a min length of 5")
	}
	if !f.ShouldProcess("abcde") {
		t.Error("expected 5 runes to pass a min length of 5")
	}
	// Length is counted after trimming.
	if f.ShouldProcess("  ab  ") {
		t.Error("expected trimmed length to be used")
	}
}

func TestCleanCollapsesWhitespace(t *testing.T) {
	got := Clean("hello   world\n\nsecond\tline")
	want := "hello world second line"
	if got != want {
		t.Errorf("Clean = %q, want %q", got, want)
	}
}

func TestCleanStripsArtifacts(t *testing.T) {
	got := Clean("wh@t is §this§?")
	want := "wht is this?"
	if got != want {
		t.Errorf("Clean = %q, want %q", got, want)
	}
}

func TestCleanKeepsPunctuation(t *testing.T) {
	in := "Don't panic! Really: it's fine; ok?"
	if got := Clean(in); got != in {
		t.Errorf("Clean = %q, want unchanged %q", got, in)
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"already clean text.",
		"  messy\n\ninput\t with   gaps  ",
		"symbols @#$ removed",
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestProcessReturnsCleanedText(t *testing.T) {
	f := New(1)
	got, ok := f.Process("  what   does\nthis mean?  ")
	if !ok {
		t.Fatal("expected ok")
	}
	if got != "what does this mean?" {
		t.Errorf("Process = %q", got)
	}
}

func TestProcessRejectsBlankAndEmptyAfterClean(t *testing.T) {
	f := New(1)
	if _, ok := f.Process("   "); ok {
		t.Error("expected whitespace-only input to be rejected")
	}
	// Characters that all get stripped leave nothing to send.
	if _, ok := f.Process("@#$%^&"); ok {
		t.Error("expected input that cleans to empty to be rejected")
	}
}
