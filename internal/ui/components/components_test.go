package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

func TestMenuSkipsDisabled(t *testing.T) {
	picked := ""
	pick := func(id string) func() tea.Cmd {
		return func() tea.Cmd {
			picked = id
			return nil
		}
	}
	m := NewMenu([]MenuItem{
		{Label: "a", Disabled: true},
		{Label: "b", Action: pick("b")},
		{Label: "c", Disabled: true},
		{Label: "d", Action: pick("d")},
	})
	if m.Selected != 1 {
		t.Fatalf("first enabled item should be selected, got %d", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("down should skip the disabled item, got %d", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if picked != "d" {
		t.Errorf("enter activated %q, want d", picked)
	}
}

func TestMenuViewMarksSelection(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "JULIE", Detail: "RA-ILD"}, {Label: "ROBERT"}})
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "▸ JULIE  RA-ILD") {
		t.Errorf("expected a marker on the selected item, got:\n%s", view)
	}
	if strings.Contains(view, "▸ ROBERT") {
		t.Error("only the selected item gets the marker")
	}
}

func TestChecklistToggle(t *testing.T) {
	var got []string
	c := NewChecklist([]string{"a", "b"}, func(label string) tea.Cmd {
		got = append(got, label)
		return nil
	})

	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	c, _ = c.Update(tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})

	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("toggled %v, want [a b]", got)
	}
	if c.Cursor != 1 {
		t.Errorf("cursor should stop at the last option, got %d", c.Cursor)
	}
}

func TestChecklistView(t *testing.T) {
	c := NewChecklist([]string{"a", "b"}, nil)
	view := ansi.Strip(c.View(true, func(l string) bool { return l == "b" }))
	if !strings.Contains(view, "▸ [ ] a") || !strings.Contains(view, "[x] b") {
		t.Errorf("unexpected checklist:\n%s", view)
	}
}

func TestButtonStates(t *testing.T) {
	if NewButton("Submit", true, true).Pressable() {
		t.Error("a disabled button is not pressable")
	}
	if !strings.Contains(ansi.Strip(NewButton("Submit", true, false).View()), "▸ Submit") {
		t.Error("a focused button shows the marker")
	}
	if strings.Contains(ansi.Strip(NewButton("Submit", true, true).View()), "▸") {
		t.Error("a disabled button never shows focus")
	}
}

func TestZoomMeter(t *testing.T) {
	tests := []struct {
		zoom float64
		want float64
	}{
		{0.5, 0},
		{1.75, 0.5},
		{3, 1},
		{4, 1},
	}
	for _, tt := range tests {
		if got := NewZoomMeter(tt.zoom, 0.5, 3, 40).Fraction(); got != tt.want {
			t.Errorf("Fraction(%v) = %v, want %v", tt.zoom, got, tt.want)
		}
	}
	if !strings.Contains(ansi.Strip(NewZoomMeter(1.25, 0.5, 3, 40).View()), "125%") {
		t.Error("meter should show the zoom percentage")
	}
}

func TestScrollerRewrapsOnWidthChange(t *testing.T) {
	renders := 0
	s := NewScroller(2, func(width int) string {
		renders++
		return strings.Repeat("line\n", 20) + strings.Repeat("w", width)
	})

	s.SetSize(100, 12)
	if renders != 1 || s.Width() != ContentWidth(100) {
		t.Fatalf("expected one render at %d, got %d renders at %d", ContentWidth(100), renders, s.Width())
	}
	s.SetSize(100, 12)
	if renders != 1 {
		t.Error("same size should not render again")
	}
	if s.AtBottom() {
		t.Fatal("content should overflow 10 rows")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.YOffset() != 1 {
		t.Errorf("expected offset 1, got %d", s.YOffset())
	}
	s.Refresh()
	if renders != 2 || s.YOffset() != 0 {
		t.Errorf("Refresh should render again from the top, got %d renders offset %d", renders, s.YOffset())
	}

	s.SetSize(60, 12)
	if renders != 3 || s.Width() != ContentWidth(60) {
		t.Errorf("a narrower frame should re-wrap, got %d renders at %d", renders, s.Width())
	}
}
