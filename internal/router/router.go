package router

import (
	"io"
	"log"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/scanquiz/internal/nav"
	"github.com/abhisek/scanquiz/internal/screen"
	"github.com/abhisek/scanquiz/internal/transition"
)

// Router is the single owner of navigation state. It applies intent
// messages to the state machine, rebuilds the active screen when the state
// changes and plays the page animation.
type Router struct {
	machine  *nav.Machine
	lookup   nav.Lookup
	factory  screen.Factory
	director transition.Director
	animator *transition.Animator
	logger   *log.Logger

	active screen.Screen
	built  uint64
	shown  nav.State

	// size is the last content area size, replayed to every new screen.
	size *tea.WindowSizeMsg
}

// New creates a Router. A nil logger discards navigation logs.
func New(machine *nav.Machine, lookup nav.Lookup, factory screen.Factory, anim *transition.Animator, logger *log.Logger) *Router {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if anim == nil {
		anim = transition.NewAnimator(transition.Options{})
	}
	return &Router{
		machine:  machine,
		lookup:   lookup,
		factory:  factory,
		animator: anim,
		logger:   logger,
	}
}

// Init builds the screen for the machine's current state.
func (r *Router) Init() tea.Cmd {
	return r.rebuild()
}

// Active returns the screen being shown.
func (r *Router) Active() screen.Screen {
	return r.active
}

// State returns the current navigation state.
func (r *Router) State() nav.State {
	return r.machine.Current()
}

// Step returns the header step of the current state.
func (r *Router) Step() (int, bool) {
	return r.machine.Step()
}

// Transition returns the animation class of the last screen change.
func (r *Router) Transition() transition.Type {
	return r.director.Current()
}

// Animating reports whether a page animation is playing.
func (r *Router) Animating() bool {
	return r.animator.Running()
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case transition.FrameMsg:
		return r.animator.Update(msg)
	case tea.WindowSizeMsg:
		r.size = &msg
	case SelectPatientMsg:
		r.machine.SelectPatient(msg.ID)
		return r.sync()
	case BackMsg:
		r.machine.GoBack()
		return r.sync()
	case CloseMsg:
		r.machine.Close()
		return r.sync()
	case SeeScanMsg:
		switch r.machine.Current().Kind {
		case nav.KindIntro:
			r.machine.IntroSeeScan(msg.ID)
		case nav.KindQuiz:
			r.machine.QuizSeeScan(msg.ID)
		case nav.KindResults:
			r.machine.ResultsSeeScan(msg.ID)
		}
		return r.sync()
	case ToggleOptionMsg:
		r.machine.ToggleOption(msg.Label)
		return r.sync()
	case SubmitQuizMsg:
		r.machine.SubmitQuiz(msg.ID, r.machine.Selections())
		return r.sync()
	case ScanViewerCloseMsg:
		r.machine.ScanViewerClose(msg.ID, msg.Source)
		return r.sync()
	}

	if r.active == nil {
		return nil
	}
	updated, cmd := r.active.Update(msg)
	r.active = updated
	return cmd
}

// View renders the active screen with the current animation frame applied.
func (r *Router) View(width, height int) string {
	if r.active == nil {
		return ""
	}
	return r.animator.Render(r.active.View(width, height), width)
}

// sync rebuilds the active screen after a state change, or refreshes it in
// place when only the selection changed.
func (r *Router) sync() tea.Cmd {
	if r.active != nil && r.machine.Revision() == r.built {
		if s, ok := r.active.(screen.Syncer); ok {
			s.Sync(r.props())
		}
		return nil
	}
	return r.rebuild()
}

func (r *Router) rebuild() tea.Cmd {
	rev := r.machine.Revision()
	st := r.machine.Current()

	typ := r.director.Observe(rev, st)
	if st.Kind == nav.KindScanViewer {
		typ = transition.Fade
	}
	if r.active != nil {
		r.logger.Printf("nav %s -> %s (%s)", r.shown, st, typ)
	} else {
		r.logger.Printf("nav start %s", st)
	}

	r.active = r.factory(r.props())
	r.built = rev
	r.shown = st

	cmds := []tea.Cmd{r.active.Init()}
	if r.size != nil {
		var cmd tea.Cmd
		r.active, cmd = r.active.Update(*r.size)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(append(cmds, r.animator.Start(typ))...)
}

func (r *Router) props() screen.Props {
	st := r.machine.Current()
	p := screen.Props{
		State:      st,
		Selections: r.machine.Selections(),
		Epoch:      r.machine.ResultsEpoch(),
	}
	if step, ok := st.Step(); ok {
		p.Step = step
	}
	if st.PatientID != "" {
		p.Case, p.Found = r.lookup.Get(st.PatientID)
	}
	return p
}
