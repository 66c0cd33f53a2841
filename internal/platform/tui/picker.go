package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cellmachine/internal/core"
	"github.com/vovakirdan/cellmachine/internal/scenarios"
)

// PickerModel is the board picker shown by "Open board". It lists the
// built-in boards followed by the board files found on disk.
type PickerModel struct {
	entries      []scenarios.Entry
	cursor       int
	scrollOffset int
	width        int
	height       int
	keyMapper    *KeyMapper
	theme        Theme
	selected     *scenarios.Entry
	quitting     bool
	back         bool
}

// NewPickerModel creates a picker over the given catalog.
func NewPickerModel(entries []scenarios.Entry, width, height int) PickerModel {
	return PickerModel{
		entries:   entries,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		theme:     CurrentTheme(),
	}
}

// Init initializes the model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.entries)-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if len(m.entries) > 0 {
			e := m.entries[m.cursor]
			m.selected = &e
			return m, tea.Quit
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// visibleItems is the number of list rows that fit between header and footer.
func (m PickerModel) visibleItems() int {
	return max(m.height-10, 3)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *PickerModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the board list.
func (m PickerModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("O P E N   B O A R D"), m.width))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("No boards found"), m.width))
		b.WriteString("\n")
		return b.String()
	}

	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}

	endIdx := min(m.scrollOffset+m.visibleItems(), len(m.entries))
	for i := m.scrollOffset; i < endIdx; i++ {
		e := m.entries[i]
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		line := fmt.Sprintf("%s%-24s %-8s", cursor, e.Title, e.Source)
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	if endIdx < len(m.entries) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	current := m.entries[m.cursor]
	desc := current.Description
	if current.Source == scenarios.SourceFile {
		desc = current.Path
	}
	b.WriteString(centerText(m.theme.MenuDescription.Render(desc), m.width))
	b.WriteString("\n\n")

	controls := "Up/Down: Navigate  |  Enter: Open  |  Esc: Back  |  Q: Quit"
	b.WriteString(centerText(m.theme.MenuDescription.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen entry, or nil.
func (m PickerModel) Selected() *scenarios.Entry {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m PickerModel) WantsBack() bool {
	return m.back
}

// RunPicker runs the board picker. A nil entry with quit false means
// the user went back to the title screen.
func RunPicker(entries []scenarios.Entry, cfg core.RuntimeConfig) (entry *scenarios.Entry, quit bool, err error) {
	model := NewPickerModel(entries, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, false, err
	}

	m, ok := finalModel.(PickerModel)
	if !ok {
		return nil, true, nil
	}
	if m.IsQuitting() {
		return nil, true, nil
	}
	return m.Selected(), false, nil
}
