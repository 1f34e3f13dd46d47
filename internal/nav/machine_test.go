package nav

import (
	"testing"

	"github.com/abhisek/scanquiz/internal/catalog"
	"github.com/abhisek/scanquiz/internal/quiz"
)

type fakeLookup map[string]catalog.PatientCase

func (f fakeLookup) Get(id string) (catalog.PatientCase, bool) {
	p, ok := f[id]
	return p, ok
}

func newTestMachine() *Machine {
	return NewMachine(fakeLookup{
		"robert": {ID: "robert", QuizOptions: []string{"Air trapping", "Honeycombing", "Peripheral reticulation"}, CorrectAnswers: []string{"Air trapping", "Peripheral reticulation"}},
		"julie":  {ID: "julie", QuizOptions: []string{"Honeycombing"}, CorrectAnswers: []string{"Honeycombing"}},
	})
}

// machineAt drives a fresh machine into s through public operations.
func machineAt(t *testing.T, s State) *Machine {
	t.Helper()
	m := newTestMachine()
	if s.Kind == KindSelection {
		return m
	}
	m.SelectPatient(s.PatientID)
	if s.Kind == KindIntro {
		return m
	}
	m.IntroSeeScan(s.PatientID)
	switch s.Kind {
	case KindScanViewer:
		if s.Source == SourceQuiz {
			m.QuizSeeScan(s.PatientID)
			break
		}
		m.SubmitQuiz(s.PatientID, quiz.NewSelection())
		m.ResultsSeeScan(s.PatientID)
	case KindResults:
		sel := quiz.NewSelection()
		if s.Outcome == quiz.Correct {
			sel = quiz.NewSelection("Air trapping", "Peripheral reticulation")
		}
		m.SubmitQuiz(s.PatientID, sel)
	}
	if m.Current() != s {
		t.Fatalf("setup reached %s, want %s", m.Current(), s)
	}
	return m
}

func TestStartsOnSelection(t *testing.T) {
	m := newTestMachine()
	if m.Current() != Selection() {
		t.Errorf("expected selection, got %s", m.Current())
	}
	if m.Revision() != 0 || m.ResultsEpoch() != 0 {
		t.Errorf("fresh machine should have zero revision and epoch")
	}
}

func TestGoBackTable(t *testing.T) {
	tests := []struct {
		name      string
		from      State
		want      State
		clears    bool
		epochBump bool
	}{
		{"selection is a no-op", Selection(), Selection(), false, false},
		{"intro to selection", Intro("robert"), Selection(), true, false},
		{"quiz to intro", Quiz("robert"), Intro("robert"), true, false},
		{"quiz scan to quiz", ScanViewer("robert", SourceQuiz), Quiz("robert"), false, false},
		{"results scan to correct results", ScanViewer("robert", SourceResults), Results("robert", quiz.Correct), false, true},
		{"incorrect results to quiz", Results("robert", quiz.Incorrect), Quiz("robert"), true, false},
		{"correct results to quiz", Results("robert", quiz.Correct), Quiz("robert"), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := machineAt(t, tt.from)
			m.ToggleOption("Honeycombing")
			epoch := m.ResultsEpoch()

			m.GoBack()

			if m.Current() != tt.want {
				t.Errorf("GoBack from %s = %s, want %s", tt.from, m.Current(), tt.want)
			}
			if cleared := m.Selections().Len() == 0; cleared != tt.clears {
				t.Errorf("selections cleared = %v, want %v", cleared, tt.clears)
			}
			if bumped := m.ResultsEpoch() == epoch+1; bumped != tt.epochBump {
				t.Errorf("epoch bumped = %v, want %v", bumped, tt.epochBump)
			}
		})
	}
}

func TestSelectPatientRoundTrip(t *testing.T) {
	m := newTestMachine()
	m.SelectPatient("julie")
	if m.Current() != Intro("julie") {
		t.Fatalf("expected intro(julie), got %s", m.Current())
	}
	m.GoBack()
	if m.Current() != Selection() {
		t.Errorf("expected selection, got %s", m.Current())
	}
	if m.Selections().Len() != 0 {
		t.Errorf("expected empty selections, got %v", m.Selections().Labels())
	}
}

func TestSelectPatientOnlyFromSelection(t *testing.T) {
	m := machineAt(t, Quiz("robert"))
	rev := m.Revision()
	m.SelectPatient("julie")
	if m.Current() != Quiz("robert") || m.Revision() != rev {
		t.Errorf("SelectPatient outside selection should be a no-op, got %s", m.Current())
	}
}

func TestCloseFromEveryState(t *testing.T) {
	states := []State{
		Intro("robert"),
		Quiz("robert"),
		ScanViewer("robert", SourceQuiz),
		ScanViewer("robert", SourceResults),
		Results("robert", quiz.Incorrect),
	}
	for _, s := range states {
		t.Run(s.String(), func(t *testing.T) {
			m := machineAt(t, s)
			m.ToggleOption("Air trapping")
			m.Close()
			if m.Current() != Selection() {
				t.Errorf("Close from %s = %s", s, m.Current())
			}
			if m.Selections().Len() != 0 {
				t.Error("Close should clear selections")
			}
		})
	}
}

func TestCloseAtSelectionKeepsRevision(t *testing.T) {
	m := newTestMachine()
	m.ToggleOption("stray")
	m.Close()
	if m.Revision() != 0 {
		t.Errorf("expected revision 0, got %d", m.Revision())
	}
	if m.Selections().Len() != 0 {
		t.Error("Close should still clear selections")
	}
}

func TestScanDetourKeepsSelections(t *testing.T) {
	m := machineAt(t, Quiz("robert"))
	m.ToggleOption("Air trapping")
	m.QuizSeeScan("robert")
	if m.Current() != ScanViewer("robert", SourceQuiz) {
		t.Fatalf("expected quiz scan, got %s", m.Current())
	}
	m.ScanViewerClose("robert", SourceQuiz)
	if m.Current() != Quiz("robert") {
		t.Fatalf("expected quiz, got %s", m.Current())
	}
	if !m.Selections().Has("Air trapping") {
		t.Error("selection should survive the scan detour")
	}
}

func TestSubmitQuiz(t *testing.T) {
	m := machineAt(t, Quiz("robert"))
	m.ToggleOption("Air trapping")
	m.ToggleOption("Honeycombing")
	m.SubmitQuiz("robert", m.Selections())
	if m.Current() != Results("robert", quiz.Incorrect) {
		t.Errorf("expected incorrect, got %s", m.Current())
	}
	if m.ResultsEpoch() != 1 {
		t.Errorf("expected epoch 1, got %d", m.ResultsEpoch())
	}

	m = machineAt(t, Quiz("robert"))
	m.ToggleOption("Air trapping")
	m.ToggleOption("Honeycombing")
	m.ToggleOption("Honeycombing")
	m.ToggleOption("Peripheral reticulation")
	m.SubmitQuiz("robert", m.Selections())
	if m.Current() != Results("robert", quiz.Correct) {
		t.Errorf("expected correct, got %s", m.Current())
	}
}

func TestSubmitQuizUnknownPatient(t *testing.T) {
	m := NewMachine(fakeLookup{})
	m.SelectPatient("ghost")
	m.IntroSeeScan("ghost")
	rev := m.Revision()
	m.SubmitQuiz("ghost", quiz.NewSelection("x"))
	if m.Current() != Quiz("ghost") || m.Revision() != rev || m.ResultsEpoch() != 0 {
		t.Errorf("submit for unknown patient should be a no-op, got %s", m.Current())
	}
}

// The results scan always returns to the correct framing, even after an
// incorrect attempt.
func TestResultsScanReturnsToCorrect(t *testing.T) {
	m := machineAt(t, Results("robert", quiz.Incorrect))
	m.ResultsSeeScan("robert")
	m.ScanViewerClose("robert", SourceResults)
	if m.Current() != Results("robert", quiz.Correct) {
		t.Errorf("expected results(robert, correct), got %s", m.Current())
	}
	if m.ResultsEpoch() != 2 {
		t.Errorf("expected epoch 2, got %d", m.ResultsEpoch())
	}
}

func TestIllegalCallsAreNoOps(t *testing.T) {
	tests := []struct {
		name string
		from State
		op   func(*Machine)
	}{
		{"intro see scan on selection", Selection(), func(m *Machine) { m.IntroSeeScan("robert") }},
		{"intro see scan with other id", Intro("robert"), func(m *Machine) { m.IntroSeeScan("julie") }},
		{"quiz see scan on intro", Intro("robert"), func(m *Machine) { m.QuizSeeScan("robert") }},
		{"submit on intro", Intro("robert"), func(m *Machine) { m.SubmitQuiz("robert", quiz.NewSelection()) }},
		{"submit with other id", Quiz("robert"), func(m *Machine) { m.SubmitQuiz("julie", quiz.NewSelection()) }},
		{"viewer close on quiz", Quiz("robert"), func(m *Machine) { m.ScanViewerClose("robert", SourceQuiz) }},
		{"viewer close wrong source", ScanViewer("robert", SourceQuiz), func(m *Machine) { m.ScanViewerClose("robert", SourceResults) }},
		{"results see scan on quiz", Quiz("robert"), func(m *Machine) { m.ResultsSeeScan("robert") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := machineAt(t, tt.from)
			rev, epoch := m.Revision(), m.ResultsEpoch()
			tt.op(m)
			if m.Current() != tt.from || m.Revision() != rev || m.ResultsEpoch() != epoch {
				t.Errorf("expected no-op, got %s (rev %d→%d)", m.Current(), rev, m.Revision())
			}
		})
	}
}

func TestToggleDoesNotChangeRevision(t *testing.T) {
	m := machineAt(t, Quiz("robert"))
	rev := m.Revision()
	m.ToggleOption("Air trapping")
	m.ToggleOption("Cyst")
	if m.Revision() != rev {
		t.Errorf("toggles changed revision %d → %d", rev, m.Revision())
	}
}

func TestSelectionsIsACopy(t *testing.T) {
	m := machineAt(t, Quiz("robert"))
	m.ToggleOption("Air trapping")
	sel := m.Selections()
	sel.Toggle("Cyst")
	if m.Selections().Has("Cyst") {
		t.Error("mutating the returned selection leaked into the machine")
	}
}

func TestStep(t *testing.T) {
	tests := []struct {
		state State
		step  int
		ok    bool
	}{
		{Selection(), 1, true},
		{Intro("a"), 2, true},
		{Quiz("a"), 3, true},
		{Results("a", quiz.Correct), 4, true},
		{ScanViewer("a", SourceQuiz), 0, false},
	}
	for _, tt := range tests {
		step, ok := tt.state.Step()
		if step != tt.step || ok != tt.ok {
			t.Errorf("%s.Step() = (%d, %v), want (%d, %v)", tt.state, step, ok, tt.step, tt.ok)
		}
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		Selection():                        "selection",
		Intro("julie"):                     "intro(julie)",
		Quiz("julie"):                      "quiz(julie)",
		ScanViewer("julie", SourceResults): "scan(julie, results)",
		Results("robert", quiz.Incorrect):  "results(robert, incorrect)",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
