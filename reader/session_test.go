package reader

import (
	"context"
	"errors"
	"testing"
	"time"
)

// scriptedProcessor appends a fixed set of chunks, optionally blocking
// until cancellation afterwards.
type scriptedProcessor struct {
	chunks []Chunk
	err    error
	block  bool
}

func (p *scriptedProcessor) Process(ctx context.Context, document string, buf *Buffer) error {
	defer buf.Close()

	for _, c := range p.chunks {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := buf.Append(c); err != nil {
			return err
		}
	}
	if p.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return p.err
}

func TestSessionAutoPlaysAfterIngestion(t *testing.T) {
	proc := &scriptedProcessor{chunks: []Chunk{{Text: "one"}, {Text: "two"}}}
	s := NewSession(proc, fastConfig())

	if err := s.ProcessDocument(context.Background(), "one two"); err != nil {
		t.Fatalf("ProcessDocument error: %v", err)
	}

	waitFor(t, 2*time.Second, "ingestion and playback", func() bool {
		snap := s.Snapshot()
		return !snap.Processing && snap.State != StateIdle
	})

	snap := s.Snapshot()
	if snap.TotalChunks != 2 {
		t.Errorf("TotalChunks = %d, want 2", snap.TotalChunks)
	}
	if !snap.StreamClosed {
		t.Error("StreamClosed = false after ingestion")
	}
	if snap.Document != "one two" {
		t.Errorf("Document = %q, want %q", snap.Document, "one two")
	}

	waitFor(t, 2*time.Second, "finished state", func() bool {
		return s.Snapshot().State == StateFinished
	})
}

func TestSessionRejectsEmptyDocument(t *testing.T) {
	s := NewSession(&scriptedProcessor{}, DefaultTimingConfig())

	for _, document := range []string{"", "   ", "\n\t"} {
		err := s.ProcessDocument(context.Background(), document)
		if !errors.Is(err, ErrEmptyDocument) {
			t.Errorf("ProcessDocument(%q) error = %v, want %v", document, err, ErrEmptyDocument)
		}
	}

	if snap := s.Snapshot(); snap.Processing || snap.Document != "" {
		t.Errorf("rejected document left state behind: %+v", snap)
	}
}

// TestSessionProcessorErrorStillPlays checks that a failed stream plays
// back whatever arrived before the failure.
func TestSessionProcessorErrorStillPlays(t *testing.T) {
	proc := &scriptedProcessor{
		chunks: []Chunk{{Text: "partial"}},
		err:    errors.New("stream torn down"),
	}
	s := NewSession(proc, slowConfig())

	if err := s.ProcessDocument(context.Background(), "doc"); err != nil {
		t.Fatalf("ProcessDocument error: %v", err)
	}

	waitFor(t, 2*time.Second, "partial content playing", func() bool {
		snap := s.Snapshot()
		return snap.State == StatePlaying && snap.Current != nil
	})

	if got := s.Snapshot().Current.Text; got != "partial" {
		t.Errorf("Current.Text = %q, want %q", got, "partial")
	}
}

func TestSessionResetCancelsInFlight(t *testing.T) {
	proc := &scriptedProcessor{chunks: []Chunk{{Text: "one"}}, block: true}
	s := NewSession(proc, slowConfig())

	if err := s.ProcessDocument(context.Background(), "doc"); err != nil {
		t.Fatalf("ProcessDocument error: %v", err)
	}
	waitFor(t, time.Second, "first chunk ingested", func() bool {
		return s.Snapshot().TotalChunks == 1
	})

	s.Reset()

	snap := s.Snapshot()
	if snap.State != StateIdle {
		t.Errorf("State = %v after reset, want %v", snap.State, StateIdle)
	}
	if snap.Processing || snap.Document != "" || snap.TotalChunks != 0 {
		t.Errorf("session state survived reset: %+v", snap)
	}

	// The cancelled run must not trigger auto-play against the new buffer.
	time.Sleep(100 * time.Millisecond)
	if got := s.Snapshot().State; got != StateIdle {
		t.Errorf("State = %v after cancelled run drained, want %v", got, StateIdle)
	}
}

func TestSessionResubmitSupersedes(t *testing.T) {
	first := &scriptedProcessor{chunks: []Chunk{{Text: "old"}}, block: true}
	s := NewSession(first, slowConfig())

	if err := s.ProcessDocument(context.Background(), "first"); err != nil {
		t.Fatalf("ProcessDocument error: %v", err)
	}
	waitFor(t, time.Second, "first run ingested", func() bool {
		return s.Snapshot().TotalChunks == 1
	})

	s.mu.Lock()
	s.proc = &scriptedProcessor{chunks: []Chunk{{Text: "new one"}, {Text: "new two"}}}
	s.mu.Unlock()
	if err := s.ProcessDocument(context.Background(), "second"); err != nil {
		t.Fatalf("ProcessDocument error: %v", err)
	}

	waitFor(t, 2*time.Second, "second run playing", func() bool {
		snap := s.Snapshot()
		return snap.Document == "second" && snap.TotalChunks == 2 && !snap.Processing
	})

	snap := s.Snapshot()
	for _, c := range snap.Chunks {
		if c.Text == "old" {
			t.Errorf("chunk from superseded run leaked into buffer: %+v", snap.Chunks)
		}
	}
}

func TestSessionTimingSurvivesReset(t *testing.T) {
	s := NewSession(&scriptedProcessor{}, DefaultTimingConfig())

	cfg := DefaultTimingConfig()
	cfg.BaseWPM = 450
	s.SetTiming(cfg)
	s.Reset()

	if got := s.Timing(); got != cfg {
		t.Errorf("Timing() = %+v after reset, want %+v", got, cfg)
	}
}

func TestSessionTogglePlay(t *testing.T) {
	proc := &scriptedProcessor{chunks: []Chunk{{Text: "one"}, {Text: "two"}}}
	s := NewSession(proc, slowConfig())

	if err := s.ProcessDocument(context.Background(), "doc"); err != nil {
		t.Fatalf("ProcessDocument error: %v", err)
	}
	waitFor(t, 2*time.Second, "playing", func() bool {
		return s.Snapshot().State == StatePlaying
	})

	s.TogglePlay()
	if got := s.Snapshot().State; got != StatePaused {
		t.Fatalf("State = %v after toggle, want %v", got, StatePaused)
	}
	s.TogglePlay()
	if got := s.Snapshot().State; got != StatePlaying {
		t.Fatalf("State = %v after second toggle, want %v", got, StatePlaying)
	}
}

func TestSessionNextPrev(t *testing.T) {
	proc := &scriptedProcessor{chunks: []Chunk{{Text: "a"}, {Text: "b"}, {Text: "c"}}}
	s := NewSession(proc, slowConfig())

	if err := s.ProcessDocument(context.Background(), "doc"); err != nil {
		t.Fatalf("ProcessDocument error: %v", err)
	}
	waitFor(t, 2*time.Second, "playing", func() bool {
		return s.Snapshot().State == StatePlaying
	})
	s.Pause()

	s.Next()
	if got := s.Snapshot().Index; got != 1 {
		t.Errorf("Index = %d after Next, want 1", got)
	}
	s.Next()
	s.Next() // clamped at the last chunk
	if got := s.Snapshot().Index; got != 2 {
		t.Errorf("Index = %d after Next past end, want 2", got)
	}
	s.Prev()
	if got := s.Snapshot().Index; got != 1 {
		t.Errorf("Index = %d after Prev, want 1", got)
	}
}

func TestSessionUpdatesSignal(t *testing.T) {
	proc := &scriptedProcessor{chunks: []Chunk{{Text: "one"}}}
	s := NewSession(proc, slowConfig())

	if err := s.ProcessDocument(context.Background(), "doc"); err != nil {
		t.Fatalf("ProcessDocument error: %v", err)
	}

	select {
	case <-s.Updates():
	case <-time.After(time.Second):
		t.Fatal("no update signal after ProcessDocument")
	}
}
