package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalCase = `
  - id: %s
    name: TEST
    condition: TEST PATIENT
    intro:
      heading: TEST
      paragraphs: ["hello"]
    quiz_options: [A, B, C]
    correct_answers: [%s]
    scans:
      quiz: {path: scans/quiz.png}
      results: {seed: 7, findings: [cyst], annotate: true}
    results:
      correct:
        heading: RIGHT
        paragraphs: []
        diagnosis: {heading: DX, text: []}
      incorrect:
        heading: WRONG
        paragraphs: []
        diagnosis: {heading: DX, text: []}
`

func doc(version string, cases ...string) []byte {
	out := "version: " + version + "\npatients:\n"
	for _, c := range cases {
		out += c
	}
	return []byte(out)
}

func caseYAML(id, answers string) string {
	return fmt.Sprintf(minimalCase, id, answers)
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	assert.Equal(t, []string{"stephanie", "julie", "caroline", "robert"}, c.IDs())
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, "v1.0.0", c.Version())
}

func TestCorrectAnswersSubsetOfOptions(t *testing.T) {
	for _, p := range Default().Cases() {
		t.Run(p.ID, func(t *testing.T) {
			require.NotEmpty(t, p.CorrectAnswers)
			for _, a := range p.CorrectAnswers {
				assert.Truef(t, p.HasOption(a), "correct answer %q missing from options", a)
			}
		})
	}
}

func TestRobertAnswers(t *testing.T) {
	p, ok := Default().Get("robert")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"Air trapping", "Peripheral reticulation"}, p.CorrectAnswers)
	assert.Equal(t, "DIAGNOSIS: CHP", p.Result(true).Diagnosis.Heading)
	assert.True(t, p.Scan(true).Annotate)
	assert.False(t, p.Scan(false).Annotate)
}

func TestGetUnknown(t *testing.T) {
	_, ok := Default().Get("nobody")
	assert.False(t, ok)
}

func TestIDsReturnsCopy(t *testing.T) {
	c := Default()
	ids := c.IDs()
	ids[0] = "mutated"
	assert.Equal(t, "stephanie", c.IDs()[0])
}

func TestParseRejectsAnswerOutsideOptions(t *testing.T) {
	_, err := Parse(doc("v1.0.0", caseYAML("x", "A, Z")), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
	assert.Contains(t, err.Error(), `"Z" is not a quiz option`)
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	_, err := Parse(doc("v1.0.0", caseYAML("x", "A"), caseYAML("x", "B")), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
	assert.Contains(t, err.Error(), "duplicate patient id")
}

func TestParseRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"no patients", []byte("version: v1.0.0\npatients: []\n")},
		{"empty correct answers", doc("v1.0.0", caseYAML("x", ""))},
		{"bad id", doc("v1.0.0", caseYAML("Not_Valid", "A"))},
		{"missing version", []byte("patients: []\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data, "")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestParseVersionGate(t *testing.T) {
	_, err := Parse(doc("v2.1.0", caseYAML("x", "A")), "")
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = Parse(doc("one", caseYAML("x", "A")), "")
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = Parse(doc("v1.4.2", caseYAML("x", "A")), "")
	assert.NoError(t, err)
}

func TestLoadResolvesScanPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, doc("v1.0.0", caseYAML("x", "A")), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	p, ok := c.Get("x")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "scans", "quiz.png"), p.Scans.Quiz.Path)
	assert.True(t, p.Scans.Results.Synthetic())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestAspectOrDefault(t *testing.T) {
	assert.Equal(t, DefaultAspect, ScanRef{}.AspectOrDefault())
	custom := Aspect{Width: 1.2, Height: 0.9}
	assert.Equal(t, custom, ScanRef{Aspect: &custom}.AspectOrDefault())
	assert.Equal(t, DefaultAspect, ScanRef{Aspect: &Aspect{}}.AspectOrDefault())
}
