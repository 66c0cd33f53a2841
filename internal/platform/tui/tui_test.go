package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cellmachine/internal/core"
	"github.com/vovakirdan/cellmachine/internal/machine"
	"github.com/vovakirdan/cellmachine/internal/scenarios"
	"github.com/vovakirdan/cellmachine/internal/session"
	"github.com/vovakirdan/cellmachine/internal/storage"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapperSimulatorKeys(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		key  string
		want core.Action
	}{
		{"w", core.ActionPanUp},
		{"a", core.ActionPanLeft},
		{"s", core.ActionPanDown},
		{"d", core.ActionPanRight},
		{"up", core.ActionCursorUp},
		{"j", core.ActionCursorDown},
		{"enter", core.ActionPlace},
		{"q", core.ActionRotateCCW},
		{"e", core.ActionRotateCW},
		{"x", core.ActionNextKind},
		{"z", core.ActionPrevKind},
		{" ", core.ActionPause},
		{"n", core.ActionStep},
		{"esc", core.ActionBack},
		{"y", core.ActionNone},
	}

	for _, tt := range tests {
		got, quit := km.MapKey(keyMsg(tt.key))
		if got != tt.want || quit {
			t.Errorf("MapKey(%q) = %v, %v; expected %v, false", tt.key, got, quit, tt.want)
		}
	}

	if _, quit := km.MapKey(keyMsg("ctrl+c")); !quit {
		t.Error("ctrl+c should quit")
	}
}

func TestKeyMapperMouse(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	press := tea.MouseMsg{X: 7, Y: 9, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	if !km.MapMouseToFrame(press, &frame) {
		t.Fatal("left press should map")
	}
	if !frame.Has(core.ActionPlace) || !frame.HasPointer || frame.Pointer != (core.Point{X: 7, Y: 9}) {
		t.Errorf("frame = %+v", frame)
	}

	frame.Clear()
	motion := tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionMotion}
	if km.MapMouseToFrame(motion, &frame) {
		t.Error("motion should not map")
	}

	right := tea.MouseMsg{X: 2, Y: 3, Button: tea.MouseButtonRight, Action: tea.MouseActionPress}
	km.MapMouseToFrame(right, &frame)
	if !frame.Has(core.ActionErase) {
		t.Error("right press should erase")
	}
}

func TestMenuWrapsAround(t *testing.T) {
	var m tea.Model = NewMenuModel(core.DefaultConfig())

	m, _ = m.Update(keyMsg("up"))
	if got := m.(MenuModel).Cursor(); got != len(titleItems)-1 {
		t.Errorf("cursor after up = %d, expected last item", got)
	}
	m, _ = m.Update(keyMsg("down"))
	if got := m.(MenuModel).Cursor(); got != 0 {
		t.Errorf("cursor after down = %d, expected wrap to 0", got)
	}

	m, _ = m.Update(keyMsg("down"))
	m, cmd := m.Update(keyMsg("enter"))
	if got := m.(MenuModel).Selected(); got != ChoiceOpenBoard {
		t.Errorf("Selected() = %v, expected ChoiceOpenBoard", got)
	}
	if cmd == nil {
		t.Error("selecting should quit the menu program")
	}
}

func TestMenuExit(t *testing.T) {
	var m tea.Model = NewMenuModel(core.DefaultConfig())
	m, _ = m.Update(keyMsg("up"))
	m, _ = m.Update(keyMsg("enter"))
	if !m.(MenuModel).IsQuitting() {
		t.Error("Exit should quit")
	}
}

func TestPickerSelect(t *testing.T) {
	entries := []scenarios.Entry{
		{Source: scenarios.SourceBuiltin},
		{Source: scenarios.SourceFile, Path: "/tmp/b.yaml"},
	}
	var m tea.Model = NewPickerModel(entries, 80, 24)
	m, _ = m.Update(keyMsg("down"))
	m, _ = m.Update(keyMsg("down")) // stays on the last entry
	m, _ = m.Update(keyMsg("enter"))

	sel := m.(PickerModel).Selected()
	if sel == nil || sel.Ref() != "/tmp/b.yaml" {
		t.Errorf("Selected() = %+v", sel)
	}
}

func TestFPSViewer(t *testing.T) {
	f := NewFPSViewer()
	start := time.Unix(0, 0)

	f.Tick(start)
	if f.Current() != 0 {
		t.Errorf("first tick should only set the reference, got %v", f.Current())
	}
	f.Tick(start.Add(time.Second / 60))
	if got := f.Current(); got < 59.9 || got > 60.1 {
		t.Errorf("Current() = %v, expected 60", got)
	}

	f.Push(30)
	line := []rune(f.Sparkline(3))
	if len(line) != 3 {
		t.Fatalf("Sparkline(3) has %d runes", len(line))
	}
	if line[0] != '▁' || line[1] != '█' || line[2] != sparkBlocks[3] {
		t.Errorf("Sparkline(3) = %q", string(line))
	}
	if got := len([]rune(f.Sparkline(500))); got != fpsHistory {
		t.Errorf("Sparkline width capped at %d, got %d", fpsHistory, got)
	}

	scr := core.NewScreen(20, 1)
	f.Draw(scr, 0, 0, 60)
	if !strings.HasPrefix(scr.Row(0), "FPS: 30") {
		t.Errorf("Draw() row = %q", scr.Row(0))
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	scr := core.NewScreen(6, 2)
	scr.DrawTextColor(0, 0, "ab", core.ColorMover)
	scr.DrawText(2, 1, "cd")

	out := RenderScreenTheme(scr, MonochromeTheme())
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[1], "  cd  ") {
		t.Errorf("rendered = %q", out)
	}
}

func TestThemeByName(t *testing.T) {
	for _, name := range ThemeNames() {
		if _, ok := ThemeByName(name); !ok {
			t.Errorf("ThemeByName(%q) not found", name)
		}
	}
	if _, ok := ThemeByName("sepia"); ok {
		t.Error("unknown theme should report false")
	}
}

func TestModelStepsSessionOnTick(t *testing.T) {
	g, err := machine.ParseGrid(">...")
	if err != nil {
		t.Fatal(err)
	}
	g.SetPaused(false)
	cfg := core.DefaultConfig()
	sess := session.FromGrid("tick", g, cfg, nil)

	var m tea.Model = NewModel(sess, nil, cfg, nil)
	m, cmd := m.Update(TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if sess.State().Generation != 1 {
		t.Errorf("generation = %d, expected 1 after the first frame", sess.State().Generation)
	}

	m, _ = m.Update(keyMsg(" "))
	m, _ = m.Update(TickMsg(time.Now()))
	if !sess.Grid().Paused() {
		t.Error("space should pause on the next frame")
	}

	if view := m.View(); !strings.Contains(view, "Paused: true") {
		t.Errorf("view missing HUD:\n%s", view)
	}

	m, _ = m.Update(keyMsg("esc"))
	m, cmd = m.Update(TickMsg(time.Now()))
	if !m.(Model).WentBack() || cmd == nil {
		t.Error("esc should return to the title screen")
	}
}

func TestHistoryRows(t *testing.T) {
	runs := []storage.Run{{
		BoardID:   "head-on",
		Steps:     1200,
		Moves:     3,
		Duration:  90 * time.Second,
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}}
	rows := historyRows(runs)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row[0] != "2 hours ago" || row[1] != "head-on" || row[2] != "1,200" || row[5] != "1m30s" {
		t.Errorf("row = %v", row)
	}
}
