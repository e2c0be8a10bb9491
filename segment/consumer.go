package segment

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/skimreader/skim/reader"
)

// maxRecordBytes bounds a single wire frame. Chunks are a few words, so
// anything near this size is garbage, not data.
const maxRecordBytes = 64 * 1024

// Consume reads newline-framed chunk records from r and appends them to
// buf until end of stream, read error, or cancellation. Malformed and
// incomplete records are skipped; partial lines are buffered across read
// boundaries. The buffer is closed exactly once on every exit path, so a
// torn-down stream still yields a playable session from whatever arrived.
func Consume(ctx context.Context, r io.Reader, buf *reader.Buffer) error {
	defer buf.Close()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxRecordBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		rec, err := ParseRecord(line)
		if err != nil {
			log.Debug("skipping malformed chunk record", "err", err)
			continue
		}
		if err := buf.Append(rec.Chunk()); err != nil {
			return fmt.Errorf("appending chunk: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("reading chunk stream: %w", err)
	}
	return nil
}
