// Package scan produces the HRCT images shown by the viewer: synthetic axial
// chest phantoms, PNG/JPEG/DICOM files, and their half-block terminal
// rendering.
package scan

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"strings"
)

// PhantomSize is the edge length in pixels of generated scans.
const PhantomSize = 256

// ErrUnknownFinding is returned for a finding key the generator cannot draw.
var ErrUnknownFinding = errors.New("unknown finding")

// Finding is a radiological pattern the phantom generator can draw.
type Finding string

const (
	GroundGlass            Finding = "ground-glass"
	Reticulation           Finding = "reticulation"
	PeripheralReticulation Finding = "peripheral-reticulation"
	SubpleuralSparing      Finding = "subpleural-sparing"
	Honeycombing           Finding = "honeycombing"
	TractionBronchiectasis Finding = "traction-bronchiectasis"
	AirTrapping            Finding = "air-trapping"
	Cyst                   Finding = "cyst"
)

var knownFindings = map[Finding]bool{
	GroundGlass:            true,
	Reticulation:           true,
	PeripheralReticulation: true,
	SubpleuralSparing:      true,
	Honeycombing:           true,
	TractionBronchiectasis: true,
	AirTrapping:            true,
	Cyst:                   true,
}

// Label is the human-readable name drawn on annotated scans.
func (f Finding) Label() string {
	return strings.ToUpper(strings.ReplaceAll(string(f), "-", " "))
}

// ParseFindings validates finding keys.
func ParseFindings(keys []string) ([]Finding, error) {
	out := make([]Finding, 0, len(keys))
	for _, k := range keys {
		f := Finding(k)
		if !knownFindings[f] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFinding, k)
		}
		out = append(out, f)
	}
	return out, nil
}

// ellipse is an axis-aligned ellipse in normalized image coordinates, where
// both axes run from -1 to 1.
type ellipse struct {
	cx, cy, rx, ry float64
}

// radius is 1 on the boundary, below 1 inside.
func (e ellipse) radius(u, v float64) float64 {
	du := (u - e.cx) / e.rx
	dv := (v - e.cy) / e.ry
	return math.Sqrt(du*du + dv*dv)
}

type disc struct {
	x, y, r float64
}

func (d disc) dist(u, v float64) float64 {
	return math.Hypot(u-d.x, v-d.y)
}

var (
	bodyOuter  = ellipse{0, 0.02, 0.92, 0.7}
	bodyInner  = ellipse{0, 0.02, 0.85, 0.63}
	heart      = ellipse{0.06, 0.08, 0.2, 0.26}
	leftLung   = ellipse{-0.42, -0.02, 0.31, 0.5}
	rightLung  = ellipse{0.42, -0.02, 0.33, 0.5}
	spineDisc  = disc{0, 0.5, 0.1}
	aortaDisc  = disc{-0.1, 0.32, 0.06}
	lungShapes = []ellipse{leftLung, rightLung}
)

// phantom holds the randomized features of one generated slice.
type phantom struct {
	findings map[Finding]bool
	vessels  []disc
	ggo      []disc
	honey    []disc
	airways  []disc
	cysts    []disc
	lobules  []disc // r > 0 marks a trapped lobule
	anchors  map[Finding]image.Point
	rng      *rand.Rand
	size     int
}

// Generate draws a deterministic axial chest slice for seed showing the given
// findings.
func Generate(seed int64, findings []Finding, size int) *image.Gray {
	img, _ := generate(seed, findings, size)
	return img
}

// GenerateAnnotated is Generate with each finding labelled on the image.
func GenerateAnnotated(seed int64, findings []Finding, size int) *image.Gray {
	img, anchors := generate(seed, findings, size)
	labels := make([]Label, 0, len(findings))
	for _, f := range findings {
		if at, ok := anchors[f]; ok {
			labels = append(labels, Label{Text: f.Label(), At: at})
		}
	}
	return Annotate(img, labels)
}

func generate(seed int64, findings []Finding, size int) (*image.Gray, map[Finding]image.Point) {
	if size <= 0 {
		size = PhantomSize
	}
	p := newPhantom(seed, findings, size)
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			u := 2*(float64(x)+0.5)/float64(size) - 1
			v := 2*(float64(y)+0.5)/float64(size) - 1
			d := p.density(u, v) + (p.rng.Float64()-0.5)*0.03
			img.SetGray(x, y, color.Gray{Y: uint8(math.Round(clamp01(d) * 255))})
		}
	}
	return img, p.anchors
}

func newPhantom(seed int64, findings []Finding, size int) *phantom {
	p := &phantom{
		findings: make(map[Finding]bool, len(findings)),
		anchors:  make(map[Finding]image.Point),
		rng:      rand.New(rand.NewPCG(uint64(seed), uint64(seed)*0x9E3779B97F4A7C15+1)),
		size:     size,
	}
	for _, f := range findings {
		p.findings[f] = true
	}

	p.vessels = p.scatter(70, 0, 0.9, 0.006, 0.014, nil)
	if p.findings[GroundGlass] {
		p.ggo = p.scatter(7, 0.1, 0.8, 0.12, 0.22, nil)
		p.anchorFirst(GroundGlass, p.ggo)
	}
	if p.findings[SubpleuralSparing] {
		// the spared rim sits just inside the left lung's lateral edge
		p.anchor(SubpleuralSparing, disc{x: leftLung.cx - leftLung.rx*0.9, y: leftLung.cy + 0.1})
	}
	if p.findings[Reticulation] {
		p.anchor(Reticulation, disc{x: rightLung.cx + rightLung.rx*0.5, y: rightLung.cy - 0.15})
	}
	if p.findings[PeripheralReticulation] {
		p.anchor(PeripheralReticulation, disc{x: rightLung.cx + rightLung.rx*0.85, y: rightLung.cy})
	}
	if p.findings[Honeycombing] {
		basal := func(lung ellipse, u, v float64) bool { return v > lung.cy+0.1 }
		p.honey = p.scatter(46, 0.8, 0.96, 0.018, 0.03, basal)
		p.anchorFirst(Honeycombing, p.honey)
	}
	if p.findings[TractionBronchiectasis] {
		p.airways = p.scatter(8, 0.45, 0.78, 0.02, 0.032, nil)
		p.anchorFirst(TractionBronchiectasis, p.airways)
	}
	if p.findings[AirTrapping] {
		p.lobules = p.scatter(36, 0, 0.95, 0, 0, nil)
		for i := range p.lobules {
			if p.rng.Float64() < 0.4 {
				p.lobules[i].r = 1
			}
		}
		for _, l := range p.lobules {
			if l.r > 0 {
				p.anchor(AirTrapping, l)
				break
			}
		}
	}
	if p.findings[Cyst] {
		p.cysts = p.scatter(4, 0.2, 0.75, 0.04, 0.07, nil)
		p.anchorFirst(Cyst, p.cysts)
	}
	return p
}

// scatter places n discs inside the lungs with a lung radius in [rmin, rmax]
// and a disc radius in [smin, smax]. keep, when set, filters candidates.
func (p *phantom) scatter(n int, rmin, rmax, smin, smax float64, keep func(ellipse, float64, float64) bool) []disc {
	out := make([]disc, 0, n)
	for tries := 0; len(out) < n && tries < n*200; tries++ {
		lung := lungShapes[p.rng.IntN(len(lungShapes))]
		u := lung.cx + (p.rng.Float64()*2-1)*lung.rx
		v := lung.cy + (p.rng.Float64()*2-1)*lung.ry
		r := lung.radius(u, v)
		if r < rmin || r > rmax || heart.radius(u, v) < 1.05 {
			continue
		}
		if keep != nil && !keep(lung, u, v) {
			continue
		}
		out = append(out, disc{x: u, y: v, r: smin + p.rng.Float64()*(smax-smin)})
	}
	return out
}

func (p *phantom) anchorFirst(f Finding, discs []disc) {
	if len(discs) > 0 {
		p.anchor(f, discs[0])
	}
}

func (p *phantom) anchor(f Finding, d disc) {
	x := int((d.x + 1) / 2 * float64(p.size))
	y := int((d.y + 1) / 2 * float64(p.size))
	p.anchors[f] = image.Pt(x, y)
}

// lungRadius is the normalized radius inside the lung containing (u, v), or
// ok=false outside both lungs.
func lungRadius(u, v float64) (float64, bool) {
	if heart.radius(u, v) <= 1 {
		return 0, false
	}
	for _, l := range lungShapes {
		if r := l.radius(u, v); r <= 1 {
			return r, true
		}
	}
	return 0, false
}

func (p *phantom) density(u, v float64) float64 {
	if math.Abs(v-0.86) < 0.015 && math.Abs(u) < 0.95 {
		return 0.5 // table
	}
	if bodyOuter.radius(u, v) > 1 {
		return 0.02
	}
	if d := spineDisc.dist(u, v); d <= spineDisc.r {
		if d > spineDisc.r*0.75 {
			return 0.95
		}
		return 0.72
	}
	if aortaDisc.dist(u, v) <= aortaDisc.r {
		return 0.56
	}
	lr, inLung := lungRadius(u, v)
	if !inLung {
		if heart.radius(u, v) <= 1 {
			return 0.5
		}
		if bodyInner.radius(u, v) > 1 {
			return 0.3 // subcutaneous fat
		}
		return 0.44
	}
	return p.lung(u, v, lr)
}

func (p *phantom) lung(u, v, lr float64) float64 {
	d := 0.07
	for _, c := range p.vessels {
		if c.dist(u, v) <= c.r {
			d = 0.42
			break
		}
	}

	if len(p.lobules) > 0 {
		nearest, best := disc{}, math.MaxFloat64
		for _, l := range p.lobules {
			if dd := l.dist(u, v); dd < best {
				nearest, best = l, dd
			}
		}
		if nearest.r > 0 {
			d -= 0.045
		} else {
			d += 0.035
		}
	}

	if len(p.ggo) > 0 {
		haze := 0.0
		for _, g := range p.ggo {
			dd := g.dist(u, v)
			haze += math.Exp(-(dd * dd) / (2 * g.r * g.r))
		}
		haze = math.Min(haze, 1) * 0.2
		if p.findings[SubpleuralSparing] && lr > 0.86 {
			haze *= 0.1
		}
		d += haze
	}

	if p.findings[Reticulation] && lr > 0.45 && reticular(u, v) {
		d += 0.17
	}
	if p.findings[PeripheralReticulation] && lr > 0.78 && reticular(u, v) {
		d += 0.2
	}

	if val, ok := ring(p.honey, u, v, 0.006, 0.46, 0.01); ok {
		return val
	}
	if val, ok := ring(p.airways, u, v, 0.009, 0.5, 0.0); ok {
		return val
	}
	if val, ok := ring(p.cysts, u, v, 0.005, 0.4, 0.0); ok {
		return val
	}
	return d
}

// ring draws thin-walled lucencies: wall on the boundary, lumen inside.
func ring(discs []disc, u, v, wall, wallValue, lumenValue float64) (float64, bool) {
	for _, c := range discs {
		dd := c.dist(u, v)
		switch {
		case math.Abs(dd-c.r) <= wall:
			return wallValue, true
		case dd < c.r:
			return lumenValue, true
		}
	}
	return 0, false
}

// reticular is a fine irregular net of intersecting lines.
func reticular(u, v float64) bool {
	a := math.Abs(math.Sin(u*62 + math.Sin(v*19)*2.2))
	b := math.Abs(math.Sin(v*57 + math.Sin(u*23)*1.8))
	return a < 0.11 || b < 0.11
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
