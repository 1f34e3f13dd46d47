package intro

import (
	"slices"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/scanquiz/internal/catalog"
	"github.com/abhisek/scanquiz/internal/router"
	"github.com/abhisek/scanquiz/internal/screen"
	"github.com/abhisek/scanquiz/internal/ui/components"
	"github.com/abhisek/scanquiz/internal/ui/layout"
	"github.com/abhisek/scanquiz/internal/ui/theme"
)

// actionRows is the space below the narrative: a blank line and the button.
const actionRows = 2

type keyMap struct {
	Scan   key.Binding
	Scroll key.Binding
}

var keys = keyMap{
	Scan: key.NewBinding(
		key.WithKeys("enter", "s"),
		key.WithHelp("Enter", "See the scan"),
	),
	Scroll: key.NewBinding(
		key.WithKeys("up", "down", "pgup", "pgdown"),
		key.WithHelp("↑↓", "Scroll"),
	),
}

// IntroScreen presents the clinical vignette of a patient.
type IntroScreen struct {
	patient catalog.PatientCase
	body    components.Scroller
}

var _ screen.Screen = (*IntroScreen)(nil)
var _ screen.KeyHintProvider = (*IntroScreen)(nil)

// New creates an IntroScreen for the patient in p.
func New(p screen.Props) *IntroScreen {
	return &IntroScreen{
		patient: p.Case,
		body: components.NewScroller(actionRows, func(width int) string {
			return Body(p.Case, width)
		}),
	}
}

func (s *IntroScreen) Init() tea.Cmd {
	return nil
}

func (s *IntroScreen) Title() string {
	return s.patient.Name
}

func (s *IntroScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: keys.Scan.Help().Key, Description: keys.Scan.Help().Desc},
		{Key: keys.Scroll.Help().Key, Description: keys.Scroll.Help().Desc},
		{Key: "Esc", Description: "Back"},
		{Key: "x", Description: "Close"},
	}
}

func (s *IntroScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.body.SetSize(msg.Width, msg.Height)
		return s, nil
	case tea.KeyPressMsg:
		if key.Matches(msg, keys.Scan) {
			id := s.patient.ID
			return s, func() tea.Msg { return router.SeeScanMsg{ID: id} }
		}
	}

	return s, s.body.Update(msg)
}

func (s *IntroScreen) View(width, height int) string {
	action := components.NewButton("See the scan", true, false).View()
	if !s.body.AtBottom() {
		action += "  " + theme.Hint.Render("↓ more")
	}

	content := s.body.View() + "\n\n" + action
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

// Body renders the vignette wrapped to width.
func Body(p catalog.PatientCase, width int) string {
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(theme.Title.Render(p.Intro.Heading) + "\n")
	b.WriteString(theme.Subtitle.Render(p.Name+" · "+p.Condition) + "\n\n")

	for _, para := range p.Intro.Paragraphs {
		if para == "" {
			b.WriteString("\n")
			continue
		}
		style := theme.Body
		if slices.Contains(p.Intro.Highlights, para) {
			style = theme.Highlight
		}
		b.WriteString(wrap.Render(style.Render(para)) + "\n")
	}

	if len(p.Intro.Captions) > 0 {
		b.WriteString("\n")
		for _, c := range p.Intro.Captions {
			b.WriteString(wrap.Render(theme.Caption.Render(c)) + "\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

