package catalog

// PatientCase is one quiz case: a vignette, a checklist of scan findings and
// the narratives shown after the attempt. Cases are immutable once loaded.
type PatientCase struct {
	ID             string   `yaml:"id" json:"id"`
	Name           string   `yaml:"name" json:"name"`
	Condition      string   `yaml:"condition" json:"condition"`
	Intro          Intro    `yaml:"intro" json:"intro"`
	QuizOptions    []string `yaml:"quiz_options" json:"quiz_options"`
	CorrectAnswers []string `yaml:"correct_answers" json:"correct_answers"`
	Scans          Scans    `yaml:"scans" json:"scans"`
	References     []string `yaml:"references,omitempty" json:"references,omitempty"`
	Results        Results  `yaml:"results" json:"results"`
}

// Intro is the clinical vignette shown before the quiz.
type Intro struct {
	Heading    string   `yaml:"heading" json:"heading"`
	Paragraphs []string `yaml:"paragraphs" json:"paragraphs"`
	Highlights []string `yaml:"highlights,omitempty" json:"highlights,omitempty"`
	Captions   []string `yaml:"captions,omitempty" json:"captions,omitempty"`
}

// Scans holds the two images of a case.
type Scans struct {
	Quiz    ScanRef `yaml:"quiz" json:"quiz"`
	Results ScanRef `yaml:"results" json:"results"`
}

// ScanRef points at a scan image. When Path is empty the scan is a
// synthetic phantom built from Seed and Findings.
type ScanRef struct {
	Path     string   `yaml:"path,omitempty" json:"path,omitempty"`
	Seed     int64    `yaml:"seed,omitempty" json:"seed,omitempty"`
	Findings []string `yaml:"findings,omitempty" json:"findings,omitempty"`
	Annotate bool     `yaml:"annotate,omitempty" json:"annotate,omitempty"`
	Aspect   *Aspect  `yaml:"aspect,omitempty" json:"aspect,omitempty"`
}

// Aspect holds the per-asset correction applied to the viewport footprint
// when computing pan bounds.
type Aspect struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// DefaultAspect matches the factors measured for the bundled scans.
var DefaultAspect = Aspect{Width: 1.0002, Height: 1.0356}

// AspectOrDefault returns the configured aspect or DefaultAspect.
func (r ScanRef) AspectOrDefault() Aspect {
	if r.Aspect == nil || r.Aspect.Width <= 0 || r.Aspect.Height <= 0 {
		return DefaultAspect
	}
	return *r.Aspect
}

// Synthetic reports whether the scan is generated rather than read from disk.
func (r ScanRef) Synthetic() bool {
	return r.Path == ""
}

// Results holds the narratives for both outcomes.
type Results struct {
	Correct   Narrative `yaml:"correct" json:"correct"`
	Incorrect Narrative `yaml:"incorrect" json:"incorrect"`
}

// Narrative is an outcome page body.
type Narrative struct {
	Heading    string    `yaml:"heading" json:"heading"`
	Paragraphs []string  `yaml:"paragraphs" json:"paragraphs"`
	Diagnosis  Diagnosis `yaml:"diagnosis" json:"diagnosis"`
}

// Diagnosis is the boxed diagnosis block of a narrative.
type Diagnosis struct {
	Heading string   `yaml:"heading" json:"heading"`
	Text    []string `yaml:"text" json:"text"`
}

// Scan returns the quiz scan, or the results scan when results is true.
func (p PatientCase) Scan(results bool) ScanRef {
	if results {
		return p.Scans.Results
	}
	return p.Scans.Quiz
}

// Result returns the narrative for the given outcome.
func (p PatientCase) Result(correct bool) Narrative {
	if correct {
		return p.Results.Correct
	}
	return p.Results.Incorrect
}

// HasOption reports whether label is one of the case's quiz options.
func (p PatientCase) HasOption(label string) bool {
	for _, o := range p.QuizOptions {
		if o == label {
			return true
		}
	}
	return false
}
