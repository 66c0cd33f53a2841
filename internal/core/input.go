package core

// Action is a semantic simulator command, abstracted from physical keys
// and mouse buttons so the session never sees Bubble Tea messages.
type Action int

const (
	ActionNone Action = iota
	ActionPanUp
	ActionPanDown
	ActionPanLeft
	ActionPanRight
	ActionCursorUp
	ActionCursorDown
	ActionCursorLeft
	ActionCursorRight
	ActionPlace     // Enter, left mouse: place the selected cell at the cursor
	ActionErase     // x, Delete, right mouse
	ActionRotateCW  // E
	ActionRotateCCW // Q
	ActionNextKind  // X
	ActionPrevKind  // Z
	ActionPause     // Space
	ActionStep      // N: one forced step
	ActionBack      // Esc
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPanUp:
		return "PanUp"
	case ActionPanDown:
		return "PanDown"
	case ActionPanLeft:
		return "PanLeft"
	case ActionPanRight:
		return "PanRight"
	case ActionCursorUp:
		return "CursorUp"
	case ActionCursorDown:
		return "CursorDown"
	case ActionCursorLeft:
		return "CursorLeft"
	case ActionCursorRight:
		return "CursorRight"
	case ActionPlace:
		return "Place"
	case ActionErase:
		return "Erase"
	case ActionRotateCW:
		return "RotateCW"
	case ActionRotateCCW:
		return "RotateCCW"
	case ActionNextKind:
		return "NextKind"
	case ActionPrevKind:
		return "PrevKind"
	case ActionPause:
		return "Pause"
	case ActionStep:
		return "Step"
	case ActionBack:
		return "Back"
	default:
		return "Unknown"
	}
}

// Point is a screen position in terminal cells.
type Point struct {
	X, Y int
}

// InputFrame collects everything the user did during one frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Pointer is the last mouse position, valid when HasPointer is set.
	// A place or erase action with a pointer targets the cell under it
	// instead of the keyboard cursor.
	Pointer    Point
	HasPointer bool
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

// SetPointer records a mouse position for this frame.
func (f *InputFrame) SetPointer(x, y int) {
	f.Pointer = Point{X: x, Y: y}
	f.HasPointer = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Empty reports whether nothing happened this frame.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && !f.HasPointer
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.HasPointer = false
	f.Pointer = Point{}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Pointer = f.Pointer
	clone.HasPointer = f.HasPointer
	return clone
}
