package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/scanquiz/internal/ui/theme"
)

// ContentWidth returns the reading width used for narrative screens.
// Long lines wrap at this width so paragraphs stay legible on wide terminals.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 88 {
		w = 88
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Padding(0, 2).
		Render(content)
}

// Diagnosis renders the final diagnosis panel of a results narrative.
func Diagnosis(heading, text string, cw int) string {
	body := theme.Highlight.Render(heading)
	if text != "" {
		body += "\n\n" + theme.Body.Render(text)
	}
	return theme.DiagnosisBox.Width(cw).Render(body)
}
