package cleaner

import (
	"strings"
	"testing"
)

func TestClean_EmptyInput(t *testing.T) {
	if got := Clean(""); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
	if got := Clean("   \n\t\n  "); got != "" {
		t.Errorf("expected empty output for whitespace-only input, got %q", got)
	}
}

func TestClean_CollapsesWhitespaceRuns(t *testing.T) {
	got := Clean("The  quick\t\tbrown   fox jumps over it.")
	want := "The quick brown fox jumps over it."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestClean_RemovesPageNumberLines(t *testing.T) {
	input := "A full sentence of real prose content.\n  42  \nAnother full sentence of prose."
	got := Clean(input)
	if strings.Contains(got, "42") {
		t.Errorf("page number line survived cleaning: %q", got)
	}
	if !strings.Contains(got, "real prose content") {
		t.Errorf("prose was lost: %q", got)
	}
}

func TestClean_RemovesPageHeaderLines(t *testing.T) {
	for _, header := range []string{"Page 3", "page 12", "PAGE 7 of 20"} {
		input := "First sentence of the document body.\n" + header + "\nSecond sentence of the body."
		got := Clean(input)
		if strings.Contains(strings.ToLower(got), "page") {
			t.Errorf("header %q survived cleaning: %q", header, got)
		}
	}
}

func TestClean_DropsShortNoiseLines(t *testing.T) {
	input := "A complete sentence that carries content.\nCh 3\nAnother complete sentence here."
	got := Clean(input)
	if strings.Contains(got, "Ch 3") {
		t.Errorf("short noise line survived: %q", got)
	}
}

func TestClean_KeepsShortSentenceFragments(t *testing.T) {
	// Short lines with terminal punctuation are real content.
	got := Clean("It works.")
	if got != "It works." {
		t.Errorf("expected short sentence to survive, got %q", got)
	}
}

func TestClean_CollapsesBlankLineRuns(t *testing.T) {
	input := "First paragraph of content here.\n\n\n\n\nSecond paragraph of content here."
	got := Clean(input)
	want := "First paragraph of content here.\n\nSecond paragraph of content here."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"Some content here.\n\n\n\n42\n\nPage 9\nMore content follows here.",
		"  leading  spaces and a sentence.  \n\n\nshort\nThe next real line of prose.",
		"Single line of perfectly clean prose already.",
		"",
	}
	for _, in := range inputs {
		once := Clean(in)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q:\n first: %q\nsecond: %q", in, once, twice)
		}
	}
}

func TestClean_NoLeadingOrTrailingBlankLines(t *testing.T) {
	got := Clean("\n\n\nActual content sentence here.\n\n\n")
	if strings.HasPrefix(got, "\n") || strings.HasSuffix(got, "\n") {
		t.Errorf("expected no surrounding blank lines, got %q", got)
	}
}
