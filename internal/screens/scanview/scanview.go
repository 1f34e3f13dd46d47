// Package scanview is the fullscreen scan viewer with zoom and pan.
package scanview

import (
	"fmt"
	"image"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"golang.org/x/time/rate"

	"github.com/abhisek/scanquiz/internal/catalog"
	"github.com/abhisek/scanquiz/internal/nav"
	"github.com/abhisek/scanquiz/internal/router"
	"github.com/abhisek/scanquiz/internal/scan"
	"github.com/abhisek/scanquiz/internal/screen"
	"github.com/abhisek/scanquiz/internal/ui/components"
	"github.com/abhisek/scanquiz/internal/ui/layout"
	"github.com/abhisek/scanquiz/internal/ui/theme"
	"github.com/abhisek/scanquiz/internal/viewer"
)

// chromeRows is the title line above the image and the control bar below.
const chromeRows = 2

// panStep is how far one arrow key moves the image, in cells.
const panStep = 2

type keyMap struct {
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Reset   key.Binding
	Left    key.Binding
	Right   key.Binding
	Up      key.Binding
	Down    key.Binding
	Close   key.Binding
}

var keys = keyMap{
	ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "Zoom in")),
	ZoomOut: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "Zoom out")),
	Reset:   key.NewBinding(key.WithKeys("0", "r"), key.WithHelp("0", "Reset")),
	Left:    key.NewBinding(key.WithKeys("left", "h")),
	Right:   key.NewBinding(key.WithKeys("right", "l")),
	Up:      key.NewBinding(key.WithKeys("up", "k")),
	Down:    key.NewBinding(key.WithKeys("down", "j")),
	Close:   key.NewBinding(key.WithKeys("esc", "q", "x"), key.WithHelp("Esc", "Close")),
}

// Options are the viewer settings shared by every scan viewer.
type Options struct {
	Library *scan.Library
	Limits  viewer.Limits
	// WheelInterval is the minimum gap between two wheel zoom steps. Zero
	// disables coalescing.
	WheelInterval time.Duration
}

type loadedMsg struct {
	owner *ScanViewScreen
	img   *image.Gray
	err   error
}

// ScanViewScreen shows one scan of a patient fullscreen.
type ScanViewScreen struct {
	patient catalog.PatientCase
	source  nav.Source
	ref     catalog.ScanRef
	library *scan.Library

	ctrl  *viewer.Controller
	wheel *rate.Limiter

	img     *image.Gray
	err     error
	loading bool
}

var _ screen.Screen = (*ScanViewScreen)(nil)
var _ screen.KeyHintProvider = (*ScanViewScreen)(nil)

// New creates a ScanViewScreen for the state in p. The results source shows
// the annotated scan.
func New(p screen.Props, opts Options) *ScanViewScreen {
	if opts.Library == nil {
		opts.Library = scan.NewLibrary()
	}
	if opts.Limits == (viewer.Limits{}) {
		opts.Limits = viewer.DefaultLimits
	}

	ref := p.Case.Scan(p.State.Source == nav.SourceResults)
	aspect := ref.AspectOrDefault()

	limit := rate.Inf
	if opts.WheelInterval > 0 {
		limit = rate.Every(opts.WheelInterval)
	}

	return &ScanViewScreen{
		patient: p.Case,
		source:  p.State.Source,
		ref:     ref,
		library: opts.Library,
		ctrl: viewer.New(
			viewer.WithLimits(opts.Limits),
			viewer.WithAspect(viewer.Aspect{Width: aspect.Width, Height: aspect.Height}),
		),
		wheel:   rate.NewLimiter(limit, 1),
		loading: true,
	}
}

// Init starts loading the scan in the background.
func (s *ScanViewScreen) Init() tea.Cmd {
	lib, ref := s.library, s.ref
	return func() tea.Msg {
		img, err := lib.Get(ref)
		return loadedMsg{owner: s, img: img, err: err}
	}
}

func (s *ScanViewScreen) Title() string {
	if s.source == nav.SourceResults {
		return s.patient.Name + " · annotated scan"
	}
	return s.patient.Name + " · HRCT"
}

func (s *ScanViewScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: keys.ZoomIn.Help().Key, Description: keys.ZoomIn.Help().Desc},
		{Key: keys.ZoomOut.Help().Key, Description: keys.ZoomOut.Help().Desc},
	}
	if s.ctrl.Zoom() > 1 {
		hints = append(hints, layout.KeyHint{Key: "←↑↓→/drag", Description: "Pan"})
	}
	return append(hints,
		layout.KeyHint{Key: keys.Reset.Help().Key, Description: keys.Reset.Help().Desc},
		layout.KeyHint{Key: keys.Close.Help().Key, Description: keys.Close.Help().Desc},
	)
}

// Transform returns the current zoom and pan.
func (s *ScanViewScreen) Transform() viewer.Transform {
	return s.ctrl.Transform()
}

func (s *ScanViewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rows := max(msg.Height-chromeRows, 1)
		s.ctrl.SetViewport(viewer.Size{Width: float64(msg.Width), Height: float64(rows)})
		return s, nil

	case loadedMsg:
		if msg.owner != s {
			return s, nil
		}
		s.loading = false
		s.img, s.err = msg.img, msg.err
		return s, nil

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)

	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			s.ctrl.PointerDown(cell(msg.Mouse()))
		}
	case tea.MouseMotionMsg:
		s.ctrl.PointerMove(cell(msg.Mouse()))
	case tea.MouseReleaseMsg:
		s.ctrl.PointerUp()

	case tea.MouseWheelMsg:
		if !s.wheel.Allow() {
			return s, nil
		}
		switch msg.Button {
		case tea.MouseWheelUp:
			s.ctrl.Wheel(-1)
		case tea.MouseWheelDown:
			s.ctrl.Wheel(1)
		}
	}
	return s, nil
}

func (s *ScanViewScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Close):
		id, src := s.patient.ID, s.source
		return func() tea.Msg { return router.ScanViewerCloseMsg{ID: id, Source: src} }
	case key.Matches(msg, keys.ZoomIn):
		s.ctrl.ZoomIn()
	case key.Matches(msg, keys.ZoomOut):
		s.ctrl.ZoomOut()
	case key.Matches(msg, keys.Reset):
		s.ctrl.Reset()
	case key.Matches(msg, keys.Left):
		s.ctrl.Pan(viewer.Point{X: panStep})
	case key.Matches(msg, keys.Right):
		s.ctrl.Pan(viewer.Point{X: -panStep})
	case key.Matches(msg, keys.Up):
		s.ctrl.Pan(viewer.Point{Y: panStep})
	case key.Matches(msg, keys.Down):
		s.ctrl.Pan(viewer.Point{Y: -panStep})
	}
	return nil
}

func (s *ScanViewScreen) View(width, height int) string {
	rows := max(height-chromeRows, 1)

	title := theme.Subtitle.Render(s.Title())

	var body string
	switch {
	case s.loading:
		body = lipgloss.Place(width, rows, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Loading scan…"))
	case s.err != nil:
		body = lipgloss.Place(width, rows, lipgloss.Center, lipgloss.Center,
			theme.Incorrect.Render(fmt.Sprintf("Could not load the scan: %v", s.err)))
	default:
		body = scan.Render(s.img, s.ctrl.Transform(), width, rows)
	}

	return title + "\n" + body + "\n" + s.controls(width)
}

func (s *ScanViewScreen) controls(width int) string {
	limits := s.ctrl.Limits()
	buttons := components.Buttons(
		components.NewButton("−", false, !s.ctrl.CanZoomOut()),
		components.NewButton("+", false, !s.ctrl.CanZoomIn()),
		components.NewButton("Reset", false, s.ctrl.Transform() == viewer.Identity()),
		components.NewButton("Close", true, false),
	)
	if layout.IsCompactWidth(width) {
		return theme.Subtitle.Render(fmt.Sprintf("%d%%", int(s.ctrl.Zoom()*100+0.5))) + "  " + buttons
	}
	meterWidth := max(width-lipgloss.Width(buttons)-4, 12)
	meter := components.NewZoomMeter(s.ctrl.Zoom(), limits.Min, limits.Max, min(meterWidth, 40))
	return meter.View() + "  " + buttons
}

func cell(m tea.Mouse) viewer.Point {
	return viewer.Point{X: float64(m.X), Y: float64(m.Y)}
}
