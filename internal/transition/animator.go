package transition

import (
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

const (
	DefaultDuration = 400 * time.Millisecond
	DefaultFPS      = 30

	// slideDistance is how far, in cells, a sliding page starts from home.
	slideDistance = 12
)

// Options configures an Animator.
type Options struct {
	Duration time.Duration
	FPS      int
	// ReduceMotion renders the final frame immediately.
	ReduceMotion bool
	// From and To bound the fade ramp; the page text starts in From and
	// ends in its own styling.
	From color.Color
	To   color.Color
}

// FrameMsg advances a running animation by one frame.
type FrameMsg struct {
	gen   uint64
	frame int
}

// Animator plays one enter animation at a time. Starting a new animation
// cancels the running one: frames scheduled for an older generation are
// dropped when they arrive.
type Animator struct {
	opts    Options
	gen     uint64
	typ     Type
	frame   int
	frames  int
	running bool
}

// NewAnimator returns an animator with defaults filled in.
func NewAnimator(opts Options) *Animator {
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	if opts.From == nil {
		opts.From = color.RGBA{R: 0x0F, G: 0x17, B: 0x2A, A: 0xFF}
	}
	if opts.To == nil {
		opts.To = color.RGBA{R: 0xF8, G: 0xFA, B: 0xFC, A: 0xFF}
	}
	frames := int(opts.Duration.Seconds() * float64(opts.FPS))
	if frames < 1 {
		frames = 1
	}
	return &Animator{opts: opts, frames: frames}
}

// Start begins an enter animation of type t and returns the first tick.
func (a *Animator) Start(t Type) tea.Cmd {
	a.gen++
	a.typ = t
	a.frame = 0
	if a.opts.ReduceMotion {
		a.running = false
		return nil
	}
	a.running = true
	return a.tick(a.gen, 1)
}

// Update consumes a frame message. Stale frames return nil.
func (a *Animator) Update(msg FrameMsg) tea.Cmd {
	if !a.running || msg.gen != a.gen {
		return nil
	}
	a.frame = msg.frame
	if a.frame >= a.frames {
		a.running = false
		return nil
	}
	return a.tick(msg.gen, msg.frame+1)
}

// Stop snaps the running animation to its final frame.
func (a *Animator) Stop() {
	a.gen++
	a.running = false
}

// Running reports whether frames are still pending.
func (a *Animator) Running() bool {
	return a.running
}

// Type returns the class of the current or last animation.
func (a *Animator) Type() Type {
	return a.typ
}

// Progress is the eased completion in [0, 1].
func (a *Animator) Progress() float64 {
	if !a.running {
		return 1
	}
	return easeOut(float64(a.frame) / float64(a.frames))
}

// Render applies the current frame to a rendered page of the given width.
func (a *Animator) Render(content string, width int) string {
	p := a.Progress()
	if p >= 1 {
		return content
	}
	shift := int(float64(slideDistance) * (1 - p))
	lines := strings.Split(content, "\n")
	fg := lipgloss.NewStyle().Foreground(mix(a.opts.From, a.opts.To, p))
	for i, line := range lines {
		line = recolorPlain(line, fg)
		switch a.typ {
		case SlideRight:
			line = ansi.TruncateLeft(line, shift, "")
		case SlideLeft:
			line = ansi.Truncate(strings.Repeat(" ", shift)+line, width, "")
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// recolorPlain renders the unstyled runs of line with fg. Runs that follow
// an SGR other than a reset are passed through untouched, so backgrounds
// and half-block pixels keep their colours while the text fades in.
func recolorPlain(line string, fg lipgloss.Style) string {
	var b, plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			b.WriteString(fg.Render(plain.String()))
			plain.Reset()
		}
	}

	var state byte
	styled := false
	for len(line) > 0 {
		seq, width, n, next := ansi.DecodeSequence(line, state, nil)
		state = next
		line = line[n:]
		switch {
		case width == 0 && ansi.HasCsiPrefix(seq) && strings.HasSuffix(seq, "m"):
			flush()
			styled = seq != "\x1b[m" && seq != "\x1b[0m"
			b.WriteString(seq)
		case styled || width == 0:
			flush()
			b.WriteString(seq)
		default:
			plain.WriteString(seq)
		}
	}
	flush()
	return b.String()
}

func (a *Animator) tick(gen uint64, frame int) tea.Cmd {
	interval := time.Second / time.Duration(a.opts.FPS)
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return FrameMsg{gen: gen, frame: frame}
	})
}

// easeOut is the power2.out curve.
func easeOut(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return 1 - (1-t)*(1-t)
}

func mix(from, to color.Color, p float64) color.Color {
	fr, fg, fb, _ := from.RGBA()
	tr, tg, tb, _ := to.RGBA()
	lerp := func(a, b uint32) uint8 {
		return uint8((float64(a) + (float64(b)-float64(a))*p) / 257)
	}
	return color.RGBA{R: lerp(fr, tr), G: lerp(fg, tg), B: lerp(fb, tb), A: 0xFF}
}
