package engine

// Mode is the playback state of an Engine.
type Mode int

const (
	// Stopped is the initial mode, and the mode after completion.
	Stopped Mode = iota
	// Playing means a step is pending on the clock.
	Playing
	// Paused keeps the position and waits for Play.
	Paused
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}
