// Package transition decides and plays the page animation between screens.
package transition

import "github.com/abhisek/scanquiz/internal/nav"

// Type is the animation class for entering a screen.
type Type int

const (
	Fade       Type = iota
	SlideRight      // forward: the new page enters from the left
	SlideLeft       // backward: the new page enters from the right
)

func (t Type) String() string {
	switch t {
	case SlideRight:
		return "slide-right"
	case SlideLeft:
		return "slide-left"
	}
	return "fade"
}

// ordinal places a state in the linear flow. The scan viewer is a modal
// overlay and has no place in it.
func ordinal(k nav.Kind) (int, bool) {
	switch k {
	case nav.KindSelection:
		return 0, true
	case nav.KindIntro:
		return 1, true
	case nav.KindQuiz:
		return 2, true
	case nav.KindResults:
		return 3, true
	}
	return 0, false
}

// Decide picks the animation for moving from prev to next. prev is nil on the
// first screen of a run.
func Decide(prev *nav.State, next nav.State) Type {
	if prev == nil {
		return Fade
	}
	from, ok := ordinal(prev.Kind)
	if !ok {
		return Fade
	}
	to, ok := ordinal(next.Kind)
	if !ok {
		return Fade
	}
	switch {
	case to > from:
		return SlideRight
	case to < from:
		return SlideLeft
	}
	return Fade
}

// Director caches the decision per state revision so that redraws caused by
// anything other than a navigation never change the animation class.
type Director struct {
	seen     bool
	revision uint64
	last     nav.State
	current  Type
}

// Observe returns the animation for the state at revision, recomputing only
// when revision differs from the previous observation.
func (d *Director) Observe(revision uint64, s nav.State) Type {
	if d.seen && revision == d.revision {
		return d.current
	}
	var prev *nav.State
	if d.seen {
		p := d.last
		prev = &p
	}
	d.current = Decide(prev, s)
	d.last = s
	d.revision = revision
	d.seen = true
	return d.current
}

// Current returns the last decision.
func (d *Director) Current() Type {
	return d.current
}
