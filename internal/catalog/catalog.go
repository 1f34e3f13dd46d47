// Package catalog holds the static patient cases the quiz is played on.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

//go:embed patients.yaml
var defaultYAML []byte

var (
	// ErrInvalidCatalog is returned when a catalog document breaks the schema
	// or a case invariant.
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrUnsupportedVersion is returned for catalog documents of another major version.
	ErrUnsupportedVersion = errors.New("unsupported catalog version")
)

// SupportedMajor is the catalog document major version this build reads.
const SupportedMajor = "v1"

// document is the on-disk layout of a catalog file.
type document struct {
	Version  string        `yaml:"version"`
	Patients []PatientCase `yaml:"patients"`
}

// Catalog is a read-only lookup of patient cases, in file order.
type Catalog struct {
	version string
	baseDir string
	order   []string
	cases   map[string]PatientCase
}

// Parse decodes and validates a catalog document. Relative scan paths are
// resolved against baseDir.
func Parse(data []byte, baseDir string) (*Catalog, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if !semver.IsValid(doc.Version) {
		return nil, fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, doc.Version)
	}
	if major := semver.Major(doc.Version); major != SupportedMajor {
		return nil, fmt.Errorf("%w: %s (want %s.x)", ErrUnsupportedVersion, doc.Version, SupportedMajor)
	}

	if err := checkInvariants(doc.Patients); err != nil {
		return nil, err
	}

	c := &Catalog{
		version: doc.Version,
		baseDir: baseDir,
		order:   make([]string, 0, len(doc.Patients)),
		cases:   make(map[string]PatientCase, len(doc.Patients)),
	}
	for _, p := range doc.Patients {
		p.Scans.Quiz = c.resolve(p.Scans.Quiz)
		p.Scans.Results = c.resolve(p.Scans.Results)
		c.order = append(c.order, p.ID)
		c.cases[p.ID] = p
	}
	return c, nil
}

// Load reads a catalog file from disk.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Default returns the catalog bundled with the binary.
func Default() *Catalog {
	c, err := Parse(defaultYAML, "")
	if err != nil {
		panic(fmt.Sprintf("bundled catalog: %v", err))
	}
	return c
}

// Get looks up a case by id. ok is false for unknown ids.
func (c *Catalog) Get(id string) (PatientCase, bool) {
	p, ok := c.cases[id]
	return p, ok
}

// IDs returns the case ids in file order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Cases returns all cases in file order.
func (c *Catalog) Cases() []PatientCase {
	out := make([]PatientCase, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.cases[id])
	}
	return out
}

// Len returns the number of cases.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Version returns the document version the catalog was read from.
func (c *Catalog) Version() string {
	return c.version
}

func (c *Catalog) resolve(ref ScanRef) ScanRef {
	if ref.Path != "" && c.baseDir != "" && !filepath.IsAbs(ref.Path) {
		ref.Path = filepath.Join(c.baseDir, ref.Path)
	}
	return ref
}

// checkInvariants enforces the rules the schema cannot express: unique ids and
// correct answers drawn from the case's own options.
func checkInvariants(cases []PatientCase) error {
	var errs []error
	seen := make(map[string]bool, len(cases))
	for _, p := range cases {
		if seen[p.ID] {
			errs = append(errs, fmt.Errorf("duplicate patient id %q", p.ID))
		}
		seen[p.ID] = true

		if len(p.CorrectAnswers) == 0 {
			errs = append(errs, fmt.Errorf("%s: no correct answers", p.ID))
		}
		for _, a := range p.CorrectAnswers {
			if !p.HasOption(a) {
				errs = append(errs, fmt.Errorf("%s: correct answer %q is not a quiz option", p.ID, a))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}
	return nil
}
