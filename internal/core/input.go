package core

// Action represents a semantic player intent, abstracted from physical keys.
// The platform maps keys to actions; the engine itself only sees sensor
// samples and start requests.
type Action int

const (
	ActionNone      Action = iota
	ActionTiltLeft         // Left, A - tilt the device left
	ActionTiltRight        // Right, D - tilt the device right
	ActionStart            // Space, Enter - tap to start / play again
	ActionBack             // Esc, B - abandon the run, back to the title
	ActionLight            // L - toggle the ambient light level
	ActionHelp             // ? - toggle full help
	ActionQuit             // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionTiltLeft:
		return "TiltLeft"
	case ActionTiltRight:
		return "TiltRight"
	case ActionStart:
		return "Start"
	case ActionBack:
		return "Back"
	case ActionLight:
		return "Light"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
