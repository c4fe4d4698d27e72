package state

// GameState represents the current state of the session
type GameState int

const (
	StateLoading GameState = iota
	StateRunning
	StatePaused
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Toggle switches between running and paused. Loading is left alone.
func (s GameState) Toggle() GameState {
	switch s {
	case StateRunning:
		return StatePaused
	case StatePaused:
		return StateRunning
	default:
		return s
	}
}
