package core

// Action represents a semantic tank command, abstracted from physical key presses.
// Pilots and remote players both produce actions; the game never sees devices.
type Action int

const (
	ActionNone          Action = iota
	ActionForward              // Drive along the current heading
	ActionReverse              // Drive against the current heading
	ActionTurnLeft             // Continuous counter-clockwise turn
	ActionTurnRight            // Continuous clockwise turn
	ActionTurnStepLeft         // Snap one compass point counter-clockwise
	ActionTurnStepRight        // Snap one compass point clockwise
	ActionFire                 // Fire a bullet if allowed
	ActionPause                // Pause/unpause the match
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionForward:
		return "Forward"
	case ActionReverse:
		return "Reverse"
	case ActionTurnLeft:
		return "TurnLeft"
	case ActionTurnRight:
		return "TurnRight"
	case ActionTurnStepLeft:
		return "TurnStepLeft"
	case ActionTurnStepRight:
		return "TurnStepRight"
	case ActionFire:
		return "Fire"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// PlayerID identifies one side of a match.
type PlayerID int

const (
	Player1 PlayerID = iota + 1
	Player2
)

// Other returns the opposing side.
func (p PlayerID) Other() PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// String returns "P1" or "P2".
func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	default:
		return "none"
	}
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Frame builds an input frame with the given actions set.
func Frame(actions ...Action) InputFrame {
	f := NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
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

// MultiInputFrame contains input from both sides for a single tick.
type MultiInputFrame struct {
	ByPlayer map[PlayerID]InputFrame
}

// NewMultiInputFrame creates an empty multi-input frame.
func NewMultiInputFrame() MultiInputFrame {
	return MultiInputFrame{
		ByPlayer: make(map[PlayerID]InputFrame),
	}
}

// Player returns the input frame for a specific player.
// Returns an empty frame if player has no input.
func (m MultiInputFrame) Player(id PlayerID) InputFrame {
	if m.ByPlayer == nil {
		return NewInputFrame()
	}
	if frame, ok := m.ByPlayer[id]; ok {
		return frame
	}
	return NewInputFrame()
}

// SetPlayer sets the input frame for a specific player.
func (m *MultiInputFrame) SetPlayer(id PlayerID, frame InputFrame) {
	if m.ByPlayer == nil {
		m.ByPlayer = make(map[PlayerID]InputFrame)
	}
	m.ByPlayer[id] = frame
}
