package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the simulation host to work with high-level intents rather than
// raw input. Ability casts are carried separately by the platform because they
// target a specific ability, not a fixed action slot.
type Action int

const (
	ActionNone     Action = iota
	ActionMoveN           // W, Up arrow - move north
	ActionMoveS           // S, Down arrow - move south
	ActionMoveW           // A, Left arrow - move west
	ActionMoveE           // D, Right arrow - move east
	ActionSprint          // Uppercase movement key - sprint while moving
	ActionTongue          // O - tongue attack
	ActionInteract        // E - doors, closets, beds, pickups
	ActionUnstuck         // U - nudge out of geometry
	ActionShop            // Tab - toggle shop overlay
	ActionConfirm         // Enter - confirm selection
	ActionBack            // Escape - close overlay / go back
	ActionRestart         // R - restart session after game over
	ActionQuit            // Q, Ctrl+C - exit game/session
	ActionPause           // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveN:
		return "MoveN"
	case ActionMoveS:
		return "MoveS"
	case ActionMoveW:
		return "MoveW"
	case ActionMoveE:
		return "MoveE"
	case ActionSprint:
		return "Sprint"
	case ActionTongue:
		return "Tongue"
	case ActionInteract:
		return "Interact"
	case ActionUnstuck:
		return "Unstuck"
	case ActionShop:
		return "Shop"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
