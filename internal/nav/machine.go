package nav

import (
	"github.com/abhisek/scanquiz/internal/catalog"
	"github.com/abhisek/scanquiz/internal/quiz"
)

// Lookup resolves patient cases. *catalog.Catalog satisfies it.
type Lookup interface {
	Get(id string) (catalog.PatientCase, bool)
}

// Machine owns the current state, the answer selection and the results
// epoch. Every operation is total: a call that does not apply to the current
// state leaves the machine untouched.
type Machine struct {
	lookup     Lookup
	current    State
	selections quiz.Selection
	epoch      int
	revision   uint64
}

// NewMachine starts a machine on the selection screen.
func NewMachine(lookup Lookup) *Machine {
	return &Machine{
		lookup:  lookup,
		current: Selection(),
	}
}

// Current returns the current state.
func (m *Machine) Current() State {
	return m.current
}

// Selections returns a copy of the current answer selection.
func (m *Machine) Selections() quiz.Selection {
	return m.selections.Clone()
}

// ResultsEpoch counts entries into the results screen.
func (m *Machine) ResultsEpoch() int {
	return m.epoch
}

// Revision increments on every applied state change. Selection toggles do not
// change it.
func (m *Machine) Revision() uint64 {
	return m.revision
}

// Step is the header step of the current state.
func (m *Machine) Step() (int, bool) {
	return m.current.Step()
}

// SelectPatient opens a patient's vignette from the selection screen.
func (m *Machine) SelectPatient(id string) {
	if m.current.Kind != KindSelection {
		return
	}
	m.selections.Clear()
	m.enter(Intro(id))
}

// GoBack applies the context-dependent inverse transition.
func (m *Machine) GoBack() {
	cur := m.current
	switch cur.Kind {
	case KindSelection:
		return
	case KindIntro:
		m.selections.Clear()
		m.enter(Selection())
	case KindQuiz:
		m.selections.Clear()
		m.enter(Intro(cur.PatientID))
	case KindScanViewer:
		m.leaveScanViewer(cur)
	case KindResults:
		m.selections.Clear()
		m.enter(Quiz(cur.PatientID))
	}
}

// Close returns to the selection screen from anywhere.
func (m *Machine) Close() {
	m.selections.Clear()
	if m.current.Kind == KindSelection {
		return
	}
	m.enter(Selection())
}

// IntroSeeScan moves from a patient's vignette to the quiz.
func (m *Machine) IntroSeeScan(id string) {
	if !m.at(KindIntro, id) {
		return
	}
	m.enter(Quiz(id))
}

// QuizSeeScan opens the quiz scan in the viewer. The selection is kept.
func (m *Machine) QuizSeeScan(id string) {
	if !m.at(KindQuiz, id) {
		return
	}
	m.enter(ScanViewer(id, SourceQuiz))
}

// ToggleOption flips one label in the answer selection.
func (m *Machine) ToggleOption(label string) {
	m.selections.Toggle(label)
}

// SubmitQuiz evaluates selections against the patient's answers and shows
// the outcome. Unknown patients are ignored.
func (m *Machine) SubmitQuiz(id string, selections quiz.Selection) {
	if !m.at(KindQuiz, id) {
		return
	}
	p, ok := m.lookup.Get(id)
	if !ok {
		return
	}
	m.epoch++
	m.enter(Results(id, quiz.Evaluate(p.CorrectAnswers, selections)))
}

// ScanViewerClose leaves the viewer. Viewers opened from the results page
// always land on the correct-outcome framing.
func (m *Machine) ScanViewerClose(id string, src Source) {
	if m.current != ScanViewer(id, src) {
		return
	}
	m.leaveScanViewer(m.current)
}

// ResultsSeeScan opens the results scan in the viewer.
func (m *Machine) ResultsSeeScan(id string) {
	if !m.at(KindResults, id) {
		return
	}
	m.enter(ScanViewer(id, SourceResults))
}

func (m *Machine) leaveScanViewer(cur State) {
	if cur.Source == SourceQuiz {
		m.enter(Quiz(cur.PatientID))
		return
	}
	m.epoch++
	m.enter(Results(cur.PatientID, quiz.Correct))
}

func (m *Machine) at(k Kind, id string) bool {
	return m.current.Kind == k && m.current.PatientID == id
}

func (m *Machine) enter(s State) {
	m.current = s
	m.revision++
}
