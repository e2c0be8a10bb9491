package reader

import "errors"

// Common errors for the playback engine.
var (
	// ErrBufferClosed is returned when appending to a closed buffer.
	ErrBufferClosed = errors.New("chunk buffer is closed")

	// ErrEmptyChunk is returned when appending a chunk with no text.
	ErrEmptyChunk = errors.New("chunk text is empty")

	// ErrEmptyDocument is returned when an empty document is submitted.
	ErrEmptyDocument = errors.New("document is empty")
)
