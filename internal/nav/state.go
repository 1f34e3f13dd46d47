// Package nav is the quiz's navigation state machine.
package nav

import (
	"fmt"

	"github.com/abhisek/scanquiz/internal/quiz"
)

// Kind identifies which screen a State shows.
type Kind int

const (
	KindSelection  Kind = iota // Patient list
	KindIntro                  // Clinical vignette
	KindQuiz                   // Findings checklist
	KindScanViewer             // Fullscreen zoomable scan
	KindResults                // Outcome and diagnosis
)

func (k Kind) String() string {
	switch k {
	case KindSelection:
		return "selection"
	case KindIntro:
		return "intro"
	case KindQuiz:
		return "quiz"
	case KindScanViewer:
		return "scan"
	case KindResults:
		return "results"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Source records which screen opened the scan viewer.
type Source int

const (
	SourceQuiz Source = iota
	SourceResults
)

func (s Source) String() string {
	if s == SourceResults {
		return "results"
	}
	return "quiz"
}

// TotalSteps is the number of numbered steps in the flow.
const TotalSteps = 4

// State is one navigation state. Build it with the constructors below; the
// payload fields are only meaningful for the kinds that carry them.
type State struct {
	Kind      Kind
	PatientID string
	Source    Source       // KindScanViewer only
	Outcome   quiz.Outcome // KindResults only
}

// Selection is the patient list state.
func Selection() State {
	return State{Kind: KindSelection}
}

// Intro is the vignette for a patient.
func Intro(id string) State {
	return State{Kind: KindIntro, PatientID: id}
}

// Quiz is the findings checklist for a patient.
func Quiz(id string) State {
	return State{Kind: KindQuiz, PatientID: id}
}

// ScanViewer is the fullscreen scan opened from src.
func ScanViewer(id string, src Source) State {
	return State{Kind: KindScanViewer, PatientID: id, Source: src}
}

// Results is the outcome page for a patient.
func Results(id string, o quiz.Outcome) State {
	return State{Kind: KindResults, PatientID: id, Outcome: o}
}

// Step returns the 1-based step shown in the header. The scan viewer has no
// step and returns ok=false.
func (s State) Step() (step int, ok bool) {
	switch s.Kind {
	case KindSelection:
		return 1, true
	case KindIntro:
		return 2, true
	case KindQuiz:
		return 3, true
	case KindResults:
		return 4, true
	}
	return 0, false
}

func (s State) String() string {
	switch s.Kind {
	case KindSelection:
		return "selection"
	case KindScanViewer:
		return fmt.Sprintf("scan(%s, %s)", s.PatientID, s.Source)
	case KindResults:
		return fmt.Sprintf("results(%s, %s)", s.PatientID, s.Outcome)
	}
	return fmt.Sprintf("%s(%s)", s.Kind, s.PatientID)
}
