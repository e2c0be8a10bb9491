package reader

import (
	"testing"
	"time"
)

// TestTotalsAverageWPM checks the running-average metric against the
// canonical three-chunk scenario.
func TestTotalsAverageWPM(t *testing.T) {
	var totals Totals
	totals.Add(1, 100*time.Millisecond)
	totals.Add(1, 200*time.Millisecond)
	totals.Add(1, 300*time.Millisecond)

	// 3 words over 600ms is 300 WPM.
	if got := totals.AverageWPM(); got != 300 {
		t.Errorf("AverageWPM() = %d, want 300", got)
	}
}

func TestTotalsAverageWPMZero(t *testing.T) {
	var totals Totals
	if got := totals.AverageWPM(); got != 0 {
		t.Errorf("AverageWPM() on zero totals = %d, want 0", got)
	}
}

func TestInstantWPM(t *testing.T) {
	tests := []struct {
		words    int
		d        time.Duration
		expected int
	}{
		{1, 200 * time.Millisecond, 300},
		{2, 200 * time.Millisecond, 600},
		{1, 580 * time.Millisecond, 103},
		{1, 0, 60000}, // zero duration guarded to 1ms
	}

	for _, tt := range tests {
		if got := InstantWPM(tt.words, tt.d); got != tt.expected {
			t.Errorf("InstantWPM(%d, %v) = %d, want %d", tt.words, tt.d, got, tt.expected)
		}
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		cursor, total int
		expected      float64
	}{
		{0, 0, 0},
		{0, 4, 0},
		{2, 4, 0.5},
		{4, 4, 1},
		{10, 4, 1}, // clamped
	}

	for _, tt := range tests {
		if got := Progress(tt.cursor, tt.total); got != tt.expected {
			t.Errorf("Progress(%d, %d) = %v, want %v", tt.cursor, tt.total, got, tt.expected)
		}
	}
}
