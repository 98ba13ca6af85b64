package game

type State int

const (
	Splash State = iota
	Running
	Paused
	GameOver
	Error
)

func (s State) String() string {
	switch s {
	case Splash:
		return "splash"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case GameOver:
		return "game over"
	case Error:
		return "error"
	}
	return "unknown"
}

// Event describes what a tick changed, so front ends can redraw only the
// cells involved.
type Event struct {
	Moved    bool
	Head     Cell
	PrevHead Cell

	// Vacated is the old tail when the body moved without growing.
	Vacated    Cell
	HasVacated bool

	Ate     bool
	Over    bool
	Won     bool
	NewHigh bool
	Err     error
}
