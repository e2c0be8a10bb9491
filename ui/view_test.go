package ui

import (
	"testing"

	"github.com/skimreader/skim/reader"
)

func TestSplitFocus(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		left  string
		focus string
		right string
	}{
		{
			name:  "single short word",
			text:  "go",
			left:  "g",
			focus: "o",
			right: "",
		},
		{
			name:  "single letter",
			text:  "a",
			left:  "",
			focus: "a",
			right: "",
		},
		{
			name:  "three words focuses middle",
			text:  "over the lazy",
			left:  "over t",
			focus: "h",
			right: "e lazy",
		},
		{
			name:  "two words focuses second",
			text:  "hello world",
			left:  "hello w",
			focus: "o",
			right: "rld",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, focus, right := splitFocus(tt.text)
			if left != tt.left || focus != tt.focus || right != tt.right {
				t.Errorf("splitFocus(%q) = %q|%q|%q, want %q|%q|%q",
					tt.text, left, focus, right, tt.left, tt.focus, tt.right)
			}
		})
	}
}

// TestSplitFocusLossless checks the three parts always reassemble into
// the original text.
func TestSplitFocusLossless(t *testing.T) {
	texts := []string{"a", "hi", "hello,", "one two", "a much longer phrase here", "incomprehensibilities"}
	for _, text := range texts {
		left, focus, right := splitFocus(text)
		if got := left + focus + right; got != text {
			t.Errorf("splitFocus(%q) reassembles to %q", text, got)
		}
	}
}

func TestFocusIndex(t *testing.T) {
	tests := []struct {
		n, expected int
	}{
		{1, 0},
		{2, 1},
		{5, 1},
		{6, 2},
		{9, 2},
		{10, 3},
		{13, 3},
		{20, 4},
	}

	for _, tt := range tests {
		if got := focusIndex(tt.n); got != tt.expected {
			t.Errorf("focusIndex(%d) = %d, want %d", tt.n, got, tt.expected)
		}
		if got := focusIndex(tt.n); got >= tt.n {
			t.Errorf("focusIndex(%d) = %d, out of range", tt.n, got)
		}
	}
}

func TestStateLabel(t *testing.T) {
	tests := []struct {
		state    reader.PlaybackState
		expected string
	}{
		{reader.StateIdle, "○ idle"},
		{reader.StatePlaying, "▶ playing"},
		{reader.StatePaused, "⏸ paused"},
		{reader.StateFinished, "■ finished"},
	}

	for _, tt := range tests {
		if got := stateLabel(tt.state); got != tt.expected {
			t.Errorf("stateLabel(%v) = %q, want %q", tt.state, got, tt.expected)
		}
	}
}
