package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cellmachine/internal/core"
)

// SimKeyMap defines the key bindings of the simulator screen.
type SimKeyMap struct {
	PanUp       key.Binding
	PanDown     key.Binding
	PanLeft     key.Binding
	PanRight    key.Binding
	CursorUp    key.Binding
	CursorDown  key.Binding
	CursorLeft  key.Binding
	CursorRight key.Binding
	Place       key.Binding
	Erase       key.Binding
	RotateCW    key.Binding
	RotateCCW   key.Binding
	NextKind    key.Binding
	PrevKind    key.Binding
	Pause       key.Binding
	Step        key.Binding
	Screenshot  key.Binding
	Help        key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SimKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Step, k.Place, k.NextKind, k.RotateCW, k.Help, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k SimKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PanUp, k.PanDown, k.PanLeft, k.PanRight},
		{k.CursorUp, k.CursorDown, k.CursorLeft, k.CursorRight},
		{k.Place, k.Erase, k.RotateCW, k.RotateCCW, k.NextKind, k.PrevKind},
		{k.Pause, k.Step, k.Screenshot, k.Help, k.Back, k.Quit},
	}
}

// DefaultSimKeyMap returns default key bindings.
func DefaultSimKeyMap() SimKeyMap {
	return SimKeyMap{
		PanUp:       key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "pan up")),
		PanDown:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "pan down")),
		PanLeft:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "pan left")),
		PanRight:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "pan right")),
		CursorUp:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "cursor up")),
		CursorDown:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "cursor down")),
		CursorLeft:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("left/h", "cursor left")),
		CursorRight: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("right/l", "cursor right")),
		Place:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter/click", "place")),
		Erase:       key.NewBinding(key.WithKeys("delete", "backspace"), key.WithHelp("del/right-click", "erase")),
		RotateCW:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "rotate cw")),
		RotateCCW:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "rotate ccw")),
		NextKind:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "next kind")),
		PrevKind:    key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "prev kind")),
		Pause:       key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "pause")),
		Step:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "single step")),
		Screenshot:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "title screen")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// KeyMapper translates Bubble Tea key and mouse messages to simulator
// actions. This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys SimKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultSimKeyMap()}
}

// Keys returns the bindings, for help rendering.
func (km *KeyMapper) Keys() SimKeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionNone, true
	case key.Matches(msg, k.Back):
		return core.ActionBack, false
	case key.Matches(msg, k.PanUp):
		return core.ActionPanUp, false
	case key.Matches(msg, k.PanDown):
		return core.ActionPanDown, false
	case key.Matches(msg, k.PanLeft):
		return core.ActionPanLeft, false
	case key.Matches(msg, k.PanRight):
		return core.ActionPanRight, false
	case key.Matches(msg, k.CursorUp):
		return core.ActionCursorUp, false
	case key.Matches(msg, k.CursorDown):
		return core.ActionCursorDown, false
	case key.Matches(msg, k.CursorLeft):
		return core.ActionCursorLeft, false
	case key.Matches(msg, k.CursorRight):
		return core.ActionCursorRight, false
	case key.Matches(msg, k.Place):
		return core.ActionPlace, false
	case key.Matches(msg, k.Erase):
		return core.ActionErase, false
	case key.Matches(msg, k.RotateCW):
		return core.ActionRotateCW, false
	case key.Matches(msg, k.RotateCCW):
		return core.ActionRotateCCW, false
	case key.Matches(msg, k.NextKind):
		return core.ActionNextKind, false
	case key.Matches(msg, k.PrevKind):
		return core.ActionPrevKind, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	case key.Matches(msg, k.Step):
		return core.ActionStep, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MapMouseToFrame records a mouse press: left places, right erases.
// Returns true if the message produced an action.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) bool {
	if msg.Action != tea.MouseActionPress {
		return false
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		frame.Set(core.ActionPlace)
	case tea.MouseButtonRight:
		frame.Set(core.ActionErase)
	default:
		return false
	}
	frame.SetPointer(msg.X, msg.Y)
	return true
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
