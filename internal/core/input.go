package core

// Action represents a semantic player intent, abstracted from physical keys.
// The shell translates actions into trial events.
type Action int

const (
	ActionNone    Action = iota
	ActionTap            // 1..9 - tap the glyph in a board slot
	ActionUp             // K, Up arrow - menu navigation
	ActionDown           // J, Down arrow - menu navigation
	ActionConfirm        // Enter, Space - confirm selection, begin a run
	ActionBack           // B, Escape - go back to menu
	ActionRetry          // R key - retry after the run ended
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionTap:
		return "Tap"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRetry:
		return "Retry"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Command is one decoded input: an action plus, for taps, the zero-based
// board slot that was tapped.
type Command struct {
	Action Action
	Slot   int
}

// Tap returns a tap command for a board slot.
func Tap(slot int) Command {
	return Command{Action: ActionTap, Slot: slot}
}

// Is reports whether the command carries the given action.
func (c Command) Is(a Action) bool {
	return c.Action == a
}
