package reader

import (
	"sync"
	"time"
)

// Chunk is the smallest unit of text shown at once. Chunks are immutable
// once accepted into a Buffer.
type Chunk struct {
	Text       string  // display text, never empty
	Complexity float64 // complexity score in [0, 1]
}

// Words returns the chunk's word count.
func (c Chunk) Words() int {
	return WordCount(c.Text)
}

// BufferStats tracks buffer activity for the current session.
type BufferStats struct {
	TotalAppended int64
	LastAppend    time.Time
	ClosedAt      time.Time
}

// Buffer is an append-only ordered sequence of chunks. It has exactly one
// writer (the stream consumer) and is read by index from the scheduler;
// once appended, a chunk is never removed or reordered. Close marks the
// stream complete and is idempotent.
type Buffer struct {
	mu     sync.RWMutex
	chunks []Chunk
	closed bool
	stats  BufferStats
}

// NewBuffer creates an empty, open buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append adds a validated chunk to the end of the buffer. The complexity
// score is clamped to [0, 1] on the way in.
func (b *Buffer) Append(chunk Chunk) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBufferClosed
	}
	if chunk.Text == "" {
		return ErrEmptyChunk
	}

	chunk.Complexity = clamp01(chunk.Complexity)
	b.chunks = append(b.chunks, chunk)
	b.stats.TotalAppended++
	b.stats.LastAppend = time.Now()
	return nil
}

// Get returns the chunk at the given index.
func (b *Buffer) Get(i int) (Chunk, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if i < 0 || i >= len(b.chunks) {
		return Chunk{}, false
	}
	return b.chunks[i], true
}

// Len returns the number of chunks observed so far.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.chunks)
}

// Close marks the buffer complete: no more chunks will arrive. Closing an
// already-closed buffer is a no-op.
func (b *Buffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	b.stats.ClosedAt = time.Now()
}

// Closed reports whether the stream has been marked complete.
func (b *Buffer) Closed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.closed
}

// Snapshot returns a copy of all chunks observed so far.
func (b *Buffer) Snapshot() []Chunk {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Chunk, len(b.chunks))
	copy(out, b.chunks)
	return out
}

// Stats returns buffer statistics for the current session.
func (b *Buffer) Stats() BufferStats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.stats
}

// Reset discards all chunks and reopens the buffer, beginning a new
// session. The append-only invariant holds within a session.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.chunks = nil
	b.closed = false
	b.stats = BufferStats{}
}
