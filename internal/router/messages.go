package router

import "github.com/abhisek/scanquiz/internal/nav"

// SelectPatientMsg opens a patient's case from the selection screen.
type SelectPatientMsg struct {
	ID string
}

// BackMsg steps back one screen.
type BackMsg struct{}

// CloseMsg returns to the patient list.
type CloseMsg struct{}

// SeeScanMsg advances from the vignette to the quiz, or opens the scan
// viewer from the quiz or results screen.
type SeeScanMsg struct {
	ID string
}

// ToggleOptionMsg flips one quiz option.
type ToggleOptionMsg struct {
	Label string
}

// SubmitQuizMsg submits the current selection for evaluation.
type SubmitQuizMsg struct {
	ID string
}

// ScanViewerCloseMsg leaves the scan viewer.
type ScanViewerCloseMsg struct {
	ID     string
	Source nav.Source
}
