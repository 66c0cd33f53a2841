package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cellmachine/internal/core"
)

// MenuChoice is an entry of the title screen.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoiceNewBoard
	ChoiceOpenBoard
	ChoiceHistory
	ChoiceExit
)

// MenuItem represents a selectable title screen entry.
type MenuItem struct {
	Choice MenuChoice
	Label  string
}

var titleItems = []MenuItem{
	{Choice: ChoiceNewBoard, Label: "New board"},
	{Choice: ChoiceOpenBoard, Label: "Open board"},
	{Choice: ChoiceHistory, Label: "Run history"},
	{Choice: ChoiceExit, Label: "Exit"},
}

// MenuModel is the Bubble Tea model for the title screen.
// The cursor wraps around at both ends.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	theme     Theme
	quitting  bool
	selected  MenuChoice
}

// NewMenuModel creates a new title screen model.
func NewMenuModel(cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:     titleItems,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		theme:     CurrentTheme(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = (m.cursor - 1 + len(m.items)) % len(m.items)

	case MenuActionDown:
		m.cursor = (m.cursor + 1) % len(m.items)

	case MenuActionSelect:
		m.selected = m.items[m.cursor].Choice
		if m.selected == ChoiceExit {
			m.quitting = true
		}
		return m, tea.Quit
	}

	return m, nil
}

// View renders the title screen.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	top := (m.height - len(m.items) - 8) / 2
	if top > 0 {
		b.WriteString(strings.Repeat("\n", top))
	}

	b.WriteString(centerText(m.theme.MenuTitle.Render("C E L L   M A C H I N E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("movers, pushers and generators"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		b.WriteString(centerText(style.Render(cursor+item.Label), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Q: Quit"
	b.WriteString(centerText(m.theme.MenuDescription.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Cursor returns the highlighted item index.
func (m MenuModel) Cursor() int {
	return m.cursor
}

// Selected returns the chosen entry, or ChoiceNone.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width. Width is measured in
// printable cells so styled strings center correctly.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the title screen.
type MenuResult struct {
	Choice MenuChoice
	Config core.RuntimeConfig
	Quit   bool
}

// RunMenu runs the title screen and returns the selection result.
func RunMenu(cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config(), Choice: m.Selected()}
	if m.IsQuitting() || m.Selected() == ChoiceNone {
		result.Quit = true
	}
	return result, nil
}
