package quiz

// Outcome classifies a submitted attempt.
type Outcome int

const (
	Incorrect Outcome = iota
	Correct
)

func (o Outcome) String() string {
	if o == Correct {
		return "correct"
	}
	return "incorrect"
}

// Evaluate compares a selection against the canonical answers. Only an exact
// set match is Correct; a missing or extra label makes the attempt Incorrect.
func Evaluate(correct []string, selected Selection) Outcome {
	want := NewSelection(correct...)
	if want.Len() != selected.Len() {
		return Incorrect
	}
	for l := range want.labels {
		if !selected.Has(l) {
			return Incorrect
		}
	}
	return Correct
}
