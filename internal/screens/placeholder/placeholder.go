package placeholder

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/scanquiz/internal/screen"
	"github.com/abhisek/scanquiz/internal/ui/layout"
	"github.com/abhisek/scanquiz/internal/ui/theme"
)

// PlaceholderScreen stands in for a patient that is not in the catalog.
type PlaceholderScreen struct {
	patientID string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)
var _ screen.KeyHintProvider = (*PlaceholderScreen)(nil)

// New creates a new PlaceholderScreen for the missing patient id.
func New(patientID string) *PlaceholderScreen {
	return &PlaceholderScreen{patientID: patientID}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	msg := fmt.Sprintf("╌╌ Case not found ╌╌\n\nThere is no patient %q in this catalog.", p.patientID)
	content := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(msg)

	return content
}

func (p *PlaceholderScreen) Title() string {
	return "Not found"
}

func (p *PlaceholderScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "x", Description: "Patients"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
