package reader

import (
	"math"
	"strings"
	"time"
)

// Display duration bounds. The floor prevents unreadable flicker, the
// ceiling prevents stalls from pathological inputs.
const (
	MinChunkDuration = 50 * time.Millisecond
	MaxChunkDuration = 5 * time.Second
)

// TimingConfig holds the pacing parameters for chunk display. The zero
// value is not usable; start from DefaultTimingConfig.
type TimingConfig struct {
	// BaseWPM is the reading speed baseline in words per minute.
	BaseWPM int

	// Additive pauses in milliseconds for chunks ending in the
	// corresponding punctuation class.
	PauseCommaSemicolon int
	PauseColonDash      int
	PauseSentenceEnd    int
}

// DefaultTimingConfig returns the default pacing parameters.
func DefaultTimingConfig() TimingConfig {
	return TimingConfig{
		BaseWPM:             300,
		PauseCommaSemicolon: 80,
		PauseColonDash:      120,
		PauseSentenceEnd:    220,
	}
}

// WordCount counts whitespace-delimited tokens. Every chunk counts as at
// least one word so durations never collapse to zero.
func WordCount(text string) int {
	n := len(strings.Fields(text))
	if n < 1 {
		return 1
	}
	return n
}

// ComplexityMultiplier maps a complexity score to a duration multiplier
// in [0.6, 1.8]. The score is clamped to [0, 1] first.
func ComplexityMultiplier(complexity float64) float64 {
	return 0.6 + 1.2*clamp01(complexity)
}

// Duration computes the display duration for a chunk under this config.
// Pure and deterministic; the result is always within
// [MinChunkDuration, MaxChunkDuration].
func (c TimingConfig) Duration(chunk Chunk) time.Duration {
	wpm := c.BaseWPM
	if wpm < 1 {
		wpm = 1
	}

	words := WordCount(chunk.Text)
	baseMs := 60000.0 / float64(wpm) * float64(words)

	ms := math.Round(baseMs*ComplexityMultiplier(chunk.Complexity) + float64(c.punctuationBonus(chunk.Text)))

	d := time.Duration(ms) * time.Millisecond
	if d < MinChunkDuration {
		return MinChunkDuration
	}
	if d > MaxChunkDuration {
		return MaxChunkDuration
	}
	return d
}

// punctuationBonus returns the added milliseconds for the chunk's trailing
// character. The class rules are evaluated independently; only the final
// rune is tested, so at most one class matches in practice.
func (c TimingConfig) punctuationBonus(text string) int {
	runes := []rune(strings.TrimRight(text, " \t"))
	if len(runes) == 0 {
		return 0
	}
	last := runes[len(runes)-1]

	bonus := 0
	switch last {
	case ',', ';':
		bonus += c.PauseCommaSemicolon
	}
	switch last {
	case ':', '-', '–', '—': // colon, hyphen, en dash, em dash
		bonus += c.PauseColonDash
	}
	switch last {
	case '.', '!', '?':
		bonus += c.PauseSentenceEnd
	}
	return bonus
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
