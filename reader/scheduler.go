// Package reader implements the playback scheduler and adaptive timing
// engine for rapid serial visual presentation of text chunks.
package reader

import (
	"sync"
	"time"
)

// retryInterval is the polling interval used while the cursor has outrun
// the buffer but the stream is still open.
const retryInterval = 50 * time.Millisecond

// activeTiming records the chunk currently being timed on screen.
type activeTiming struct {
	chunk    Chunk
	start    time.Time
	duration time.Duration
}

// Snapshot is a consistent view of the scheduler state. The displayed
// chunk and the instantaneous speed metric are always captured together.
type Snapshot struct {
	State        PlaybackState
	Cursor       int
	Chunk        *Chunk // displayed chunk, nil when none
	Duration     time.Duration
	InstantWPM   int
	AverageWPM   int
	Progress     float64
	TotalChunks  int
	StreamClosed bool
}

// Scheduler drives the display loop: it decides which chunk is current,
// for how long, and when to advance. All state lives behind one mutex and
// is manipulated only through the scheduler's own operations; the armed
// one-shot timers are the only suspension points.
type Scheduler struct {
	mu      sync.Mutex
	buf     *Buffer
	cfg     TimingConfig
	machine *StateMachine

	cursor  int
	display *Chunk
	active  *activeTiming

	// Timer discipline: at most one armed timer per scheduler. Every arm
	// cancels the predecessor, and the generation counter invalidates
	// callbacks that were superseded by pause/seek/reset/re-pace.
	timer *time.Timer
	gen   uint64

	totals  Totals
	instant int
	average int

	notify func()
}

// NewScheduler creates a scheduler reading from buf with the given pacing
// config.
func NewScheduler(buf *Buffer, cfg TimingConfig) *Scheduler {
	return &Scheduler{
		buf:     buf,
		cfg:     cfg,
		machine: NewStateMachine(),
	}
}

// SetNotify registers a callback fired after every published change. The
// callback runs with the scheduler lock held and must not call back into
// the scheduler; a non-blocking channel send is the intended use.
func (s *Scheduler) SetNotify(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify = fn
}

// Play starts or resumes playback. When the cursor has reached the end of
// the known buffer it rewinds to the start first, so playing a finished
// document replays it.
func (s *Scheduler) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine.Current() == StatePlaying {
		return
	}

	if s.cursor >= s.buf.Len() {
		s.cursor = 0
	}

	if !s.machine.Transition(StatePlaying) {
		return
	}
	s.step()
}

// Pause stops the loop, cancelling any pending timer. The cursor and the
// displayed chunk are retained. Resuming restarts the current chunk's
// timing from a fresh full duration.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine.Current() != StatePlaying {
		return
	}

	s.cancelTimer()
	s.active = nil
	s.machine.Transition(StatePaused)
	s.emit()
}

// Seek moves the cursor to the given index, clamped to the known buffer.
// Seeking an empty buffer is a no-op. When playing, the loop restarts at
// the new cursor with a fresh duration; otherwise only the displayed
// chunk updates and no timer is armed.
func (s *Scheduler) Seek(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.buf.Len()
	if n == 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > n-1 {
		index = n - 1
	}

	s.cursor = index
	s.cancelTimer()
	s.active = nil

	if s.machine.Current() == StatePlaying {
		s.step()
		return
	}

	chunk, _ := s.buf.Get(s.cursor)
	s.publish(chunk, s.cfg.Duration(chunk))
}

// Reset cancels any pending timer, clears the buffer, totals, cursor,
// displayed chunk, and metrics, and returns to Idle. The timing config
// survives resets.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.Reset()
	s.clear()
}

// Rebind points the scheduler at a fresh buffer and clears all playback
// state like Reset. A late append from a superseded stream consumer lands
// in the orphaned buffer and never reaches the new session.
func (s *Scheduler) Rebind(buf *Buffer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf = buf
	s.clear()
}

// clear resets playback state to Idle. Must be called with the lock held.
func (s *Scheduler) clear() {
	s.cancelTimer()
	s.cursor = 0
	s.display = nil
	s.active = nil
	s.totals = Totals{}
	s.instant = 0
	s.average = 0
	s.machine.Transition(StateIdle)
	s.emit()
}

// SetConfig replaces the timing config. When a chunk is actively timed,
// its duration is recomputed under the new config and the advance timer
// re-armed counting from now, so a parameter change always takes effect
// immediately. In the wait-for-data path the loop simply restarts with
// the new config.
func (s *Scheduler) SetConfig(cfg TimingConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cfg = cfg

	if s.machine.Current() != StatePlaying {
		return
	}
	// step re-times the current chunk (rePace) or re-arms the retry timer
	// (waitForData) as appropriate.
	s.step()
}

// Config returns the current timing config.
func (s *Scheduler) Config() TimingConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// State returns the current playback state.
func (s *Scheduler) State() PlaybackState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Current()
}

// Snapshot returns a consistent view of the scheduler state.
func (s *Scheduler) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:        s.machine.Current(),
		Cursor:       s.cursor,
		InstantWPM:   s.instant,
		AverageWPM:   s.average,
		Progress:     Progress(s.cursor, s.buf.Len()),
		TotalChunks:  s.buf.Len(),
		StreamClosed: s.buf.Closed(),
	}
	if s.display != nil {
		chunk := *s.display
		snap.Chunk = &chunk
	}
	if s.active != nil {
		snap.Duration = s.active.duration
	}
	return snap
}

// step runs one loop iteration: time the chunk under the cursor, finish
// when the closed buffer is exhausted, or wait for the stream consumer to
// catch up. Must be called with the lock held while Playing.
func (s *Scheduler) step() {
	n := s.buf.Len()

	switch {
	case s.cursor < n:
		chunk, _ := s.buf.Get(s.cursor)
		d := s.cfg.Duration(chunk)
		s.active = &activeTiming{chunk: chunk, start: time.Now(), duration: d}
		s.publish(chunk, d)
		s.arm(d, s.advance)

	case s.buf.Closed():
		s.cancelTimer()
		s.active = nil
		s.display = nil
		s.instant = 0
		s.machine.Transition(StateFinished)
		s.emit()

	default:
		// waitForData: the cursor has outrun the buffer but the stream is
		// still open.
		s.active = nil
		s.arm(retryInterval, s.step)
	}
}

// advance moves past the just-displayed chunk: fold its words and duration
// into the running totals, recompute the running average, and re-run the
// loop step. Must be called with the lock held.
func (s *Scheduler) advance() {
	if s.active != nil {
		s.totals.Add(s.active.chunk.Words(), s.active.duration)
		s.average = s.totals.AverageWPM()
		s.active = nil
	}
	s.cursor++
	s.step()
}

// publish sets the displayed chunk together with its instantaneous speed
// metric; the pair never changes separately. Must be called with the lock
// held.
func (s *Scheduler) publish(chunk Chunk, d time.Duration) {
	c := chunk
	s.display = &c
	s.instant = InstantWPM(chunk.Words(), d)
	s.emit()
}

// arm schedules fn after d, replacing any pending timer. The generation
// counter makes superseded callbacks no-ops, so a cancelled timer can
// never double-advance the cursor.
func (s *Scheduler) arm(d time.Duration, fn func()) {
	s.cancelTimer()
	s.gen++
	gen := s.gen
	s.timer = time.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.gen != gen || s.machine.Current() != StatePlaying {
			return
		}
		fn()
	})
}

// cancelTimer stops the pending timer, if any, and invalidates its
// callback. Must be called with the lock held.
func (s *Scheduler) cancelTimer() {
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// emit fires the notify callback. Must be called with the lock held.
func (s *Scheduler) emit() {
	if s.notify != nil {
		s.notify()
	}
}
