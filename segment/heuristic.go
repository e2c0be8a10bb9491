package segment

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"unicode"
)

// defaultMaxPhraseWords caps the heuristic phrase length. Short phrases
// read well at RSVP speeds.
const defaultMaxPhraseWords = 3

// Heuristic is the offline segmenter: it splits the document into short
// phrases on punctuation and length and estimates complexity locally. It
// emits the same newline-framed records as the LLM segmenter through a
// pipe, so the consumer path is identical.
type Heuristic struct {
	// MaxPhraseWords is the phrase length cap; zero means the default.
	MaxPhraseWords int
}

// Segment emits chunk records for the document on the returned reader.
// The writer side runs in a goroutine and honors ctx cancellation.
func (h Heuristic) Segment(ctx context.Context, document string) (io.ReadCloser, error) {
	maxWords := h.MaxPhraseWords
	if maxWords < 1 {
		maxWords = defaultMaxPhraseWords
	}

	pr, pw := io.Pipe()
	go func() {
		enc := json.NewEncoder(pw)
		for _, phrase := range SplitPhrases(document, maxWords) {
			if err := ctx.Err(); err != nil {
				pw.CloseWithError(err)
				return
			}
			rec := Record{Text: phrase, Complexity: EstimateComplexity(phrase)}
			if err := enc.Encode(rec); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		pw.Close()
	}()
	return pr, nil
}

// SplitPhrases groups whitespace-delimited words into phrases. A phrase
// ends at the word cap or at a word carrying trailing phrase punctuation,
// whichever comes first.
func SplitPhrases(text string, maxWords int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var phrases []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			phrases = append(phrases, strings.Join(current, " "))
			current = current[:0]
		}
	}

	for _, word := range words {
		current = append(current, word)
		if len(current) >= maxWords || endsPhrase(word) {
			flush()
		}
	}
	flush()
	return phrases
}

// endsPhrase reports whether the word's final rune is phrase-ending
// punctuation.
func endsPhrase(word string) bool {
	runes := []rune(word)
	switch runes[len(runes)-1] {
	case ',', ';', ':', '.', '!', '?', '-', '–', '—':
		return true
	}
	return false
}

// EstimateComplexity scores a phrase in [0, 1] from the signals a local
// heuristic can see: digits, interior punctuation, and long words.
func EstimateComplexity(phrase string) float64 {
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return 0
	}

	complexity := 0.0

	digits := 0
	punctuation := 0
	for _, r := range phrase {
		switch {
		case unicode.IsDigit(r):
			digits++
		case strings.ContainsRune(",;:-()", r):
			punctuation++
		}
	}
	complexity += float64(digits) * 0.05
	complexity += float64(punctuation) * 0.03

	longWords := 0
	for _, word := range words {
		if len(word) > 8 {
			longWords++
		}
	}
	complexity += float64(longWords) / float64(len(words)) * 0.5

	if complexity > 1 {
		complexity = 1
	}
	return complexity
}
