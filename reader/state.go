package reader

// PlaybackState represents the current state of the playback engine.
type PlaybackState int

const (
	// StateIdle indicates no document is loaded or the session was reset.
	StateIdle PlaybackState = iota
	// StatePlaying indicates the display loop is active and a timer is
	// pending for the current chunk (or the loop is polling for data).
	StatePlaying
	// StatePaused indicates the loop is stopped with the cursor retained.
	StatePaused
	// StateFinished indicates the cursor exhausted a closed buffer.
	StateFinished
)

// String returns the string representation of the state.
func (s PlaybackState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// IsActive returns true if playback is in an active state.
func (s PlaybackState) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// StateMachine manages playback state transitions.
type StateMachine struct {
	current     PlaybackState
	transitions map[PlaybackState][]PlaybackState
}

// NewStateMachine creates a state machine with the valid playback transitions.
func NewStateMachine() *StateMachine {
	return &StateMachine{
		current: StateIdle,
		transitions: map[PlaybackState][]PlaybackState{
			StateIdle:     {StatePlaying},
			StatePlaying:  {StatePaused, StateFinished, StateIdle},
			StatePaused:   {StatePlaying, StateFinished, StateIdle},
			StateFinished: {StatePlaying, StateIdle},
		},
	}
}

// Transition attempts to transition to the specified state.
// Transitioning to the current state is a no-op and reports success.
func (sm *StateMachine) Transition(to PlaybackState) bool {
	if to == sm.current {
		return true
	}

	valid, ok := sm.transitions[sm.current]
	if !ok {
		return false
	}

	for _, state := range valid {
		if state == to {
			sm.current = to
			return true
		}
	}

	return false
}

// Current returns the current state.
func (sm *StateMachine) Current() PlaybackState {
	return sm.current
}
