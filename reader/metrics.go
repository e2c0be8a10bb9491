package reader

import (
	"math"
	"time"
)

// Totals accumulates words displayed and display time elapsed since the
// last reset. It feeds the running-average speed metric and nothing else.
type Totals struct {
	Words  int
	Millis int64
}

// Add folds a displayed chunk's word count and duration into the totals.
func (t *Totals) Add(words int, d time.Duration) {
	t.Words += words
	t.Millis += d.Milliseconds()
}

// AverageWPM returns the running-average reading speed in words per minute.
func (t Totals) AverageWPM() int {
	ms := t.Millis
	if ms < 1 {
		ms = 1
	}
	return int(math.Round(float64(t.Words) / float64(ms) * 60000))
}

// InstantWPM returns the instantaneous reading speed implied by displaying
// the given word count for the given duration.
func InstantWPM(words int, d time.Duration) int {
	ms := d.Milliseconds()
	if ms < 1 {
		ms = 1
	}
	return int(math.Round(float64(words) / float64(ms) * 60000))
}

// Progress returns the fraction of known chunks already passed, in [0, 1].
func Progress(cursor, totalKnown int) float64 {
	if totalKnown < 1 {
		totalKnown = 1
	}
	return clamp01(float64(cursor) / float64(totalKnown))
}
