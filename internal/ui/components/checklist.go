package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/scanquiz/internal/ui/theme"
)

// Checklist is a multi-select list. It owns only the cursor; whether an
// option is checked is supplied by the caller on every render.
type Checklist struct {
	Options  []string
	Cursor   int
	OnToggle func(label string) tea.Cmd
}

// NewChecklist creates a checklist over the given options.
func NewChecklist(options []string, onToggle func(label string) tea.Cmd) Checklist {
	return Checklist{
		Options:  options,
		OnToggle: onToggle,
	}
}

// Update handles cursor movement and toggling.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", " ":
		return c, c.toggle()
	}

	return c, nil
}

func (c Checklist) toggle() tea.Cmd {
	if c.OnToggle == nil || c.Cursor < 0 || c.Cursor >= len(c.Options) {
		return nil
	}
	return c.OnToggle(c.Options[c.Cursor])
}

// View renders the options with a box reflecting checked(label).
func (c Checklist) View(focused bool, checked func(label string) bool) string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if focused && i == c.Cursor {
			prefix = "▸ "
		}

		box := "[ ]"
		style := theme.Unselected
		if checked(opt) {
			box = "[x]"
			style = theme.Checked
		}
		if focused && i == c.Cursor {
			style = style.Foreground(theme.Primary)
		}

		b.WriteString(style.Render(prefix+box+" "+opt) + "\n")
	}
	return b.String()
}

