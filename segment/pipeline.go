package segment

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/skimreader/skim/reader"
)

// Segmenter produces the newline-framed chunk stream for a document.
type Segmenter interface {
	Segment(ctx context.Context, document string) (io.ReadCloser, error)
}

// ChunkCache stores segmentation results keyed by document content.
type ChunkCache interface {
	Get(document string) ([]reader.Chunk, bool)
	Put(document string, chunks []reader.Chunk) error
}

// Pipeline is the document processor: flatten markdown, consult the
// cache, stream from the segmenter, and fill the playback buffer. It
// closes the buffer exactly once on every path.
type Pipeline struct {
	seg   Segmenter
	cache ChunkCache // nil disables caching
}

// NewPipeline creates a pipeline over the given segmenter. A nil cache
// disables caching.
func NewPipeline(seg Segmenter, cache ChunkCache) *Pipeline {
	return &Pipeline{seg: seg, cache: cache}
}

var _ reader.Processor = (*Pipeline)(nil)

// Process implements reader.Processor.
func (p *Pipeline) Process(ctx context.Context, document string, buf *reader.Buffer) error {
	text := Flatten(document)
	if text == "" {
		// Documents that are all markup flatten to nothing; segment the
		// raw text rather than producing an empty session.
		text = strings.TrimSpace(document)
	}

	if p.cache != nil {
		if chunks, ok := p.cache.Get(text); ok {
			log.Debug("chunk cache hit", "chunks", len(chunks))
			defer buf.Close()
			for _, c := range chunks {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := buf.Append(c); err != nil {
					return fmt.Errorf("replaying cached chunk: %w", err)
				}
			}
			return nil
		}
	}

	rc, err := p.seg.Segment(ctx, text)
	if err != nil {
		buf.Close()
		return fmt.Errorf("starting segmentation: %w", err)
	}
	defer rc.Close()

	if err := Consume(ctx, rc, buf); err != nil {
		return err
	}

	if p.cache != nil {
		if chunks := buf.Snapshot(); len(chunks) > 0 {
			if err := p.cache.Put(text, chunks); err != nil {
				log.Debug("chunk cache write failed", "err", err)
			}
		}
	}
	return nil
}
