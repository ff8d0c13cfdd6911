package tui

import (
	"strings"
	"testing"
)

func TestWrapTextBreaksAtWords(t *testing.T) {
	got := WrapText("try the ardougne rooftop course", 12)
	want := "try the\nardougne\nrooftop\ncourse"
	if got != want {
		t.Fatalf("unexpected wrap:\n%q\nwant\n%q", got, want)
	}
}

func TestWrapTextKeepsShortLines(t *testing.T) {
	got := WrapText("short line", 40)
	if got != "short line" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapTextPreservesNewlines(t *testing.T) {
	got := WrapText("first paragraph\nsecond paragraph", 40)
	if got != "first paragraph\nsecond paragraph" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapTextBreaksLongWords(t *testing.T) {
	got := WrapText("abcdefghij", 4)
	want := "abcd\nefgh\nij"
	if got != want {
		t.Fatalf("unexpected wrap: %q", got)
	}
	for _, line := range strings.Split(got, "\n") {
		if len(line) > 4 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
}

func TestWrapTextZeroWidth(t *testing.T) {
	if got := WrapText("anything", 0); got != "anything" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}
