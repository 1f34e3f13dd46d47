package quiz

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/scanquiz/internal/router"
	"github.com/abhisek/scanquiz/internal/screen"
	"github.com/abhisek/scanquiz/internal/ui/components"
	"github.com/abhisek/scanquiz/internal/ui/layout"
	"github.com/abhisek/scanquiz/internal/ui/theme"
)

type keyMap struct {
	Toggle key.Binding
	Scan   key.Binding
	Submit key.Binding
}

var keys = keyMap{
	Toggle: key.NewBinding(
		key.WithKeys("space"),
		key.WithHelp("Space", "Toggle"),
	),
	Scan: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "See the scan"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "Submit"),
	),
}

// QuizScreen is the findings checklist. Checked state lives in the router;
// the screen only keeps the cursor and re-reads selections on Sync.
type QuizScreen struct {
	props     screen.Props
	checklist components.Checklist
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Syncer = (*QuizScreen)(nil)

// New creates a QuizScreen for the patient in p.
func New(p screen.Props) *QuizScreen {
	toggle := func(label string) tea.Cmd {
		return func() tea.Msg { return router.ToggleOptionMsg{Label: label} }
	}
	return &QuizScreen{
		props:     p,
		checklist: components.NewChecklist(p.Case.QuizOptions, toggle),
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return s.props.Case.Name
}

// Sync takes the selections after a toggle.
func (s *QuizScreen) Sync(p screen.Props) {
	s.props = p
}

// CanSubmit reports whether at least one finding is selected.
func (s *QuizScreen) CanSubmit() bool {
	return s.props.Selections.Len() > 0
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: keys.Toggle.Help().Key, Description: keys.Toggle.Help().Desc},
		{Key: keys.Scan.Help().Key, Description: keys.Scan.Help().Desc},
	}
	if s.CanSubmit() {
		hints = append(hints, layout.KeyHint{Key: keys.Submit.Help().Key, Description: keys.Submit.Help().Desc})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	id := s.props.Case.ID
	switch {
	case key.Matches(kmsg, keys.Scan):
		return s, func() tea.Msg { return router.SeeScanMsg{ID: id} }
	case key.Matches(kmsg, keys.Submit):
		if !s.CanSubmit() {
			return s, nil
		}
		return s, func() tea.Msg { return router.SubmitQuizMsg{ID: id} }
	}

	var cmd tea.Cmd
	s.checklist, cmd = s.checklist.Update(msg)
	return s, cmd
}

func (s *QuizScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("What do you see on "+s.props.Case.Name+"'s HRCT?") + "\n")
	b.WriteString(theme.Subtitle.Render("Select all findings that apply.") + "\n\n")
	b.WriteString(s.checklist.View(true, s.props.Selections.Has) + "\n")

	b.WriteString(components.Buttons(
		components.NewButton("See the scan (s)", false, false),
		components.NewButton("Submit (enter)", s.CanSubmit(), !s.CanSubmit()),
	))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
