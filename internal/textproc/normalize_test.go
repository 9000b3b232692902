package textproc

import (
	"strings"
	"testing"
)

func TestCleanRemovesURLsAndSlashes(t *testing.T) {
	got := Clean("Check http://x.com/y out!! Great/Bad")

	if strings.Contains(got, "http") {
		t.Errorf("Clean() left an http token: %q", got)
	}
	if strings.Contains(got, "/") {
		t.Errorf("Clean() left a slash: %q", got)
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapses whitespace", "too   many\t\nspaces", "too many spaces"},
		{"trims", "  padded  ", "padded"},
		{"backslashes become spaces", `path\to\thing`, "path to thing"},
		{"markdown link keeps anchor text", "see [the spec sheet](https://example.com/a) here", "see the spec sheet here"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanIsDeterministic(t *testing.T) {
	input := "Check http://x.com/y out!! Great/Bad"
	if Clean(input) != Clean(input) {
		t.Error("Clean() is not deterministic")
	}
}

func TestStripArtifacts(t *testing.T) {
	got := StripArtifacts("**EDIT:** the hinge x200B broke")
	if strings.Contains(got, "EDIT") {
		t.Errorf("bold span not removed: %q", got)
	}
	if strings.Contains(got, "x200B") {
		t.Errorf("zero-width artifact not removed: %q", got)
	}
}

func TestConvertMarkdownToText(t *testing.T) {
	got := ConvertMarkdownToText("# Title\n\nSome **bold** text")
	if strings.Contains(got, "#") || strings.Contains(got, "**") || strings.Contains(got, "<") {
		t.Errorf("markdown artifacts remain: %q", got)
	}
	if !strings.Contains(got, "bold") {
		t.Errorf("content lost: %q", got)
	}
}

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"IdeaPad Slim 5", "ideapad_slim_5"},
		{"  IdeaPad   Slim 5  ", "ideapad_slim_5"},
		{"THINKPAD X1", "thinkpad_x1"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CanonicalKey(tt.input); got != tt.want {
			t.Errorf("CanonicalKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCanonicalKeyCollapsesSpellings(t *testing.T) {
	if CanonicalKey("IdeaPad Slim 5") != CanonicalKey("ideapad  slim 5") {
		t.Error("different spellings of one model should share a cache key")
	}
}
