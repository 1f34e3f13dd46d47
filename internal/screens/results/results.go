package results

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/scanquiz/internal/catalog"
	"github.com/abhisek/scanquiz/internal/quiz"
	"github.com/abhisek/scanquiz/internal/router"
	"github.com/abhisek/scanquiz/internal/screen"
	"github.com/abhisek/scanquiz/internal/ui/components"
	"github.com/abhisek/scanquiz/internal/ui/layout"
	"github.com/abhisek/scanquiz/internal/ui/theme"
)

const actionRows = 2

type keyMap struct {
	Scan       key.Binding
	References key.Binding
}

var keys = keyMap{
	Scan: key.NewBinding(
		key.WithKeys("enter", "s"),
		key.WithHelp("Enter", "Annotated scan"),
	),
	References: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "References"),
	),
}

// ResultsScreen shows the outcome narrative of an attempt. A new instance
// is built on every entry, so scrolling starts at the top each time.
type ResultsScreen struct {
	patient  catalog.PatientCase
	outcome  quiz.Outcome
	showRefs bool
	body     components.Scroller
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen for the outcome in p.
func New(p screen.Props) *ResultsScreen {
	s := &ResultsScreen{
		patient: p.Case,
		outcome: p.State.Outcome,
	}
	s.body = components.NewScroller(actionRows, func(width int) string {
		if s.showRefs {
			return References(s.patient, width)
		}
		return Body(s.patient, s.outcome, width)
	})
	return s
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return s.patient.Name + " · results"
}

// Outcome returns the evaluated outcome shown by the screen.
func (s *ResultsScreen) Outcome() quiz.Outcome {
	return s.outcome
}

// ShowingReferences reports whether the reference list replaces the
// narrative.
func (s *ResultsScreen) ShowingReferences() bool {
	return s.showRefs
}

func (s *ResultsScreen) hasReferences() bool {
	return len(s.patient.References) > 0
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: keys.Scan.Help().Key, Description: keys.Scan.Help().Desc},
	}
	if s.hasReferences() {
		desc := keys.References.Help().Desc
		if s.showRefs {
			desc = "Hide references"
		}
		hints = append(hints, layout.KeyHint{Key: keys.References.Help().Key, Description: desc})
	}
	return append(hints,
		layout.KeyHint{Key: "↑↓", Description: "Scroll"},
		layout.KeyHint{Key: "Esc", Description: "Try again"},
		layout.KeyHint{Key: "x", Description: "Close"},
	)
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.body.SetSize(msg.Width, msg.Height)
		return s, nil
	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, keys.Scan):
			id := s.patient.ID
			return s, func() tea.Msg { return router.SeeScanMsg{ID: id} }
		case key.Matches(msg, keys.References) && s.hasReferences():
			s.showRefs = !s.showRefs
			s.body.Refresh()
			return s, nil
		}
	}

	return s, s.body.Update(msg)
}

func (s *ResultsScreen) View(width, height int) string {
	var action string
	if s.hasReferences() {
		action = components.Buttons(
			components.NewButton("See the annotated scan", !s.showRefs, false),
			components.NewButton("References", s.showRefs, false),
		)
	} else {
		action = components.NewButton("See the annotated scan", true, false).View()
	}
	if !s.body.AtBottom() {
		action += "  " + theme.Hint.Render("↓ more")
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s.body.View()+"\n\n"+action)
}

// References renders the numbered reference list of a case as a card.
func References(p catalog.PatientCase, width int) string {
	wrap := lipgloss.NewStyle().Width(width - 6)

	var b strings.Builder
	b.WriteString(theme.Title.Render("References") + "\n\n")
	for _, r := range p.References {
		b.WriteString(wrap.Render(theme.Caption.Render(r)) + "\n")
	}
	b.WriteString("\n" + theme.Hint.Render("r to return to the results"))
	return components.Card(b.String(), width-2)
}

// Body renders the narrative for outcome wrapped to width.
func Body(p catalog.PatientCase, outcome quiz.Outcome, width int) string {
	n := p.Result(outcome == quiz.Correct)
	wrap := lipgloss.NewStyle().Width(width)

	banner := theme.Correct.Render("✓ Correct")
	if outcome == quiz.Incorrect {
		banner = theme.Incorrect.Render("✗ Not quite")
	}

	var b strings.Builder
	b.WriteString(banner + "\n\n")
	b.WriteString(theme.Title.Render(n.Heading) + "\n\n")
	for _, para := range n.Paragraphs {
		if para == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(wrap.Render(theme.Body.Render(para)) + "\n")
	}

	if outcome == quiz.Incorrect {
		b.WriteString("\n" + wrap.Render(theme.Subtitle.Render("The findings on this scan were: "+strings.Join(p.CorrectAnswers, ", "))) + "\n")
	}

	if n.Diagnosis.Heading != "" || len(n.Diagnosis.Text) > 0 {
		b.WriteString("\n" + components.Diagnosis(n.Diagnosis.Heading, strings.Join(n.Diagnosis.Text, "\n"), width-2) + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
