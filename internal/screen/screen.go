package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/scanquiz/internal/catalog"
	"github.com/abhisek/scanquiz/internal/nav"
	"github.com/abhisek/scanquiz/internal/quiz"
	"github.com/abhisek/scanquiz/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Props is the read-only snapshot of navigation state a screen is built
// from. Screens never mutate it; they report intent with router messages.
type Props struct {
	State nav.State
	// Case is the patient of State. Found is false when the id is not in
	// the catalog, in which case Case is the zero value.
	Case       catalog.PatientCase
	Found      bool
	Selections quiz.Selection
	// Step is the header step, 0 when the state shows none.
	Step  int
	Epoch int
}

// Syncer is implemented by screens that take fresh props in place, such as
// the quiz checklist after an option toggle.
type Syncer interface {
	Sync(p Props)
}

// Factory builds the screen for a navigation snapshot.
type Factory func(p Props) Screen
