package segment

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/skimreader/skim/reader"
)

var (
	// ErrIncompleteRecord indicates a record missing a required field.
	ErrIncompleteRecord = errors.New("segment: record missing required field")
	// ErrEmptyText indicates a record whose text field is empty.
	ErrEmptyText = errors.New("segment: record text is empty")
)

// Record is one chunk frame on the wire: a JSON object with a required
// non-empty text and a required numeric complexity in [0, 1].
type Record struct {
	Text       string  `json:"text"`
	Complexity float64 `json:"complexity"`
}

// Chunk converts the record into a playback chunk.
func (r Record) Chunk() reader.Chunk {
	return reader.Chunk{Text: r.Text, Complexity: r.Complexity}
}

// ParseRecord validates one wire frame. Pointer fields distinguish a
// missing field from a zero value; wrong types and non-object lines fail
// in the unmarshal itself. Complexity is clamped to [0, 1].
func ParseRecord(line []byte) (Record, error) {
	var aux struct {
		Text       *string  `json:"text"`
		Complexity *float64 `json:"complexity"`
	}
	if err := json.Unmarshal(line, &aux); err != nil {
		return Record{}, fmt.Errorf("segment: malformed record: %w", err)
	}
	if aux.Text == nil || aux.Complexity == nil {
		return Record{}, ErrIncompleteRecord
	}
	if *aux.Text == "" {
		return Record{}, ErrEmptyText
	}

	complexity := *aux.Complexity
	if complexity < 0 {
		complexity = 0
	}
	if complexity > 1 {
		complexity = 1
	}
	return Record{Text: *aux.Text, Complexity: complexity}, nil
}
