package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/scanquiz/internal/ui/theme"
)

// Button is a styled button component. A disabled button renders muted
// and never reports a press.
type Button struct {
	Label    string
	Focused  bool
	Disabled bool
}

// NewButton creates a new button.
func NewButton(label string, focused, disabled bool) Button {
	return Button{
		Label:    label,
		Focused:  focused,
		Disabled: disabled,
	}
}

// Pressable reports whether activating the button should do anything.
func (b Button) Pressable() bool {
	return !b.Disabled
}

// View renders the button.
func (b Button) View() string {
	switch {
	case b.Disabled:
		return theme.ButtonDisabled.Render("  " + b.Label)
	case b.Focused:
		return theme.ButtonActive.Render("▸ " + b.Label)
	default:
		return theme.ButtonInactive.Render("  " + b.Label)
	}
}

// Buttons renders a row of buttons separated by a gap.
func Buttons(buttons ...Button) string {
	parts := make([]string, 0, 2*len(buttons))
	for i, b := range buttons {
		if i > 0 {
			parts = append(parts, "  ")
		}
		parts = append(parts, b.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}
