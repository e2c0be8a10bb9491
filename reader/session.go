package reader

import (
	"context"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Processor turns a document into chunk records appended to the buffer.
// Implementations must close the buffer exactly once, on success, failure,
// and cancellation alike.
type Processor interface {
	Process(ctx context.Context, document string, buf *Buffer) error
}

// SessionState is the observable state exposed to the UI.
type SessionState struct {
	Document     string
	Processing   bool
	StreamClosed bool
	Chunks       []Chunk
	Index        int
	Current      *Chunk
	Playing      bool
	State        PlaybackState
	InstantWPM   int
	AverageWPM   int
	Progress     float64
	TotalChunks  int
}

// Session is the control surface: it aggregates the buffer, scheduler, and
// processor, exposes playback operations and the observable state, and
// owns the lifecycle of in-flight ingestion. It is not itself stateful
// beyond that aggregation.
type Session struct {
	mu    sync.Mutex
	buf   *Buffer
	sched *Scheduler
	proc  Processor

	document   string
	processing bool
	cancel     context.CancelFunc

	// run identifies the current ingestion; completions belonging to a
	// superseded run must not trigger auto-play.
	run uint64

	updates chan struct{}
}

// NewSession creates a session with the given processor and pacing config.
func NewSession(proc Processor, cfg TimingConfig) *Session {
	buf := NewBuffer()
	s := &Session{
		buf:     buf,
		sched:   NewScheduler(buf, cfg),
		proc:    proc,
		updates: make(chan struct{}, 1),
	}
	s.sched.SetNotify(s.signal)
	return s
}

// Updates returns a channel that receives a signal after every observable
// change. The channel is never closed; reads should be paired with a
// Snapshot call.
func (s *Session) Updates() <-chan struct{} {
	return s.updates
}

// ProcessDocument cancels any in-flight ingestion, resets playback, and
// starts segmenting the given document. Empty documents are rejected
// before any request is issued. When ingestion completes or is cancelled
// with a non-empty buffer, playback starts automatically.
func (s *Session) ProcessDocument(ctx context.Context, document string) error {
	if strings.TrimSpace(document) == "" {
		return ErrEmptyDocument
	}

	buf := NewBuffer()

	s.mu.Lock()
	s.cancelLocked()
	s.run++
	run := s.run
	s.document = document
	s.processing = true
	s.buf = buf
	proc := s.proc

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	s.sched.Rebind(buf)
	s.signal()

	go func() {
		err := proc.Process(ctx, document, buf)
		if err != nil && ctx.Err() == nil {
			// A failed stream is treated like normal completion: the
			// buffer is closed and whatever arrived plays back.
			log.Debug("document processing ended with error", "err", err)
		}

		s.mu.Lock()
		stale := s.run != run
		if !stale {
			s.processing = false
		}
		s.mu.Unlock()

		if stale {
			return
		}
		if buf.Len() > 0 {
			s.sched.Play()
		}
		s.signal()
	}()

	return nil
}

// Play starts or resumes playback.
func (s *Session) Play() { s.sched.Play() }

// Pause pauses playback, retaining the cursor and displayed chunk.
func (s *Session) Pause() { s.sched.Pause() }

// TogglePlay pauses when playing and plays otherwise.
func (s *Session) TogglePlay() {
	if s.sched.State() == StatePlaying {
		s.sched.Pause()
		return
	}
	s.sched.Play()
}

// Seek moves the cursor to the given index, clamped to the known buffer.
func (s *Session) Seek(index int) { s.sched.Seek(index) }

// Next advances to the following chunk.
func (s *Session) Next() { s.sched.Seek(s.sched.Snapshot().Cursor + 1) }

// Prev steps back to the preceding chunk.
func (s *Session) Prev() { s.sched.Seek(s.sched.Snapshot().Cursor - 1) }

// Reset cancels in-flight ingestion and clears all session state except
// the timing config.
func (s *Session) Reset() {
	buf := NewBuffer()

	s.mu.Lock()
	s.cancelLocked()
	s.run++
	s.document = ""
	s.processing = false
	s.buf = buf
	s.mu.Unlock()

	s.sched.Rebind(buf)
	s.signal()
}

// SetTiming replaces the pacing parameters, re-pacing the current chunk
// immediately when playing.
func (s *Session) SetTiming(cfg TimingConfig) {
	s.sched.SetConfig(cfg)
	s.signal()
}

// Timing returns the current pacing parameters.
func (s *Session) Timing() TimingConfig { return s.sched.Config() }

// Snapshot returns the full observable state.
func (s *Session) Snapshot() SessionState {
	s.mu.Lock()
	document := s.document
	processing := s.processing
	buf := s.buf
	s.mu.Unlock()

	snap := s.sched.Snapshot()
	return SessionState{
		Document:     document,
		Processing:   processing,
		StreamClosed: snap.StreamClosed,
		Chunks:       buf.Snapshot(),
		Index:        snap.Cursor,
		Current:      snap.Chunk,
		Playing:      snap.State == StatePlaying,
		State:        snap.State,
		InstantWPM:   snap.InstantWPM,
		AverageWPM:   snap.AverageWPM,
		Progress:     snap.Progress,
		TotalChunks:  snap.TotalChunks,
	}
}

// cancelLocked cancels the in-flight ingestion, if any. Idempotent; must
// be called with the session lock held.
func (s *Session) cancelLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// signal performs a non-blocking send on the updates channel.
func (s *Session) signal() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}
