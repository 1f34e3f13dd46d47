package selection

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/scanquiz/internal/catalog"
	"github.com/abhisek/scanquiz/internal/router"
	"github.com/abhisek/scanquiz/internal/screen"
	"github.com/abhisek/scanquiz/internal/ui/components"
	"github.com/abhisek/scanquiz/internal/ui/layout"
	"github.com/abhisek/scanquiz/internal/ui/theme"
)

// SelectionScreen lists the patients of the catalog.
type SelectionScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*SelectionScreen)(nil)
var _ screen.KeyHintProvider = (*SelectionScreen)(nil)

// New creates a SelectionScreen over cases, in catalog order.
func New(cases []catalog.PatientCase) *SelectionScreen {
	items := make([]components.MenuItem, 0, len(cases))
	for _, c := range cases {
		id := c.ID
		items = append(items, components.MenuItem{
			Label:  c.Name,
			Detail: c.Condition,
			Action: func() tea.Cmd {
				return func() tea.Msg { return router.SelectPatientMsg{ID: id} }
			},
		})
	}
	return &SelectionScreen{menu: components.NewMenu(items)}
}

func (s *SelectionScreen) Init() tea.Cmd {
	return nil
}

func (s *SelectionScreen) Title() string {
	return "Choose a patient"
}

func (s *SelectionScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open case"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *SelectionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SelectionScreen) View(width, height int) string {
	var b strings.Builder
	bannerWidth := width
	if layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		bannerWidth = 0
	}
	b.WriteString(RenderBanner(bannerWidth) + "\n\n")
	b.WriteString(theme.Subtitle.Render("Spot the findings on each patient's HRCT scan.") + "\n\n")
	if len(s.menu.Items) == 0 {
		b.WriteString(theme.Hint.Render("The catalog has no patients."))
	} else {
		b.WriteString(s.menu.View())
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
