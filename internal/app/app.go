package app

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/abhisek/scanquiz/internal/catalog"
	"github.com/abhisek/scanquiz/internal/config"
	"github.com/abhisek/scanquiz/internal/nav"
	"github.com/abhisek/scanquiz/internal/router"
	"github.com/abhisek/scanquiz/internal/scan"
	"github.com/abhisek/scanquiz/internal/screen"
	"github.com/abhisek/scanquiz/internal/screens/scanview"
	"github.com/abhisek/scanquiz/internal/transition"
	"github.com/abhisek/scanquiz/internal/ui/layout"
)

// Options configures a TUI run.
type Options struct {
	Catalog *catalog.Catalog
	Config  config.Config
	// Patient opens the TUI on that patient's intro instead of the list.
	Patient string
	// DebugLog is the debug log file; empty discards logging.
	DebugLog string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
	sent   tea.WindowSizeMsg
}

// newAppModel creates a new AppModel on the catalog in opts.
func newAppModel(opts Options, logger *log.Logger) AppModel {
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}

	machine := nav.NewMachine(cat)
	if opts.Patient != "" {
		machine.SelectPatient(opts.Patient)
	}

	factory := Screens(cat, scanview.Options{
		Library:       scan.NewLibrary(),
		Limits:        opts.Config.ViewerLimits(),
		WheelInterval: opts.Config.WheelInterval(),
	})
	anim := transition.NewAnimator(opts.Config.TransitionOptions())

	return AppModel{
		router: router.New(machine, cat, factory, anim, logger),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.resize()

	case tea.KeyPressMsg:
		kind := m.router.State().Kind
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// The viewer closes itself so it can report its source.
			if kind != nav.KindScanViewer {
				return m, func() tea.Msg { return router.BackMsg{} }
			}
		case "x":
			if kind != nav.KindScanViewer && kind != nav.KindSelection {
				return m, func() tea.Msg { return router.CloseMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, tea.Batch(cmd, m.resize())
}

// resize tells the router the content area size whenever it differs from
// the last one sent. Screens change the footer, so this runs after every
// update and not only on window resizes.
func (m *AppModel) resize() tea.Cmd {
	if m.width == 0 || m.height == 0 {
		return nil
	}
	size := tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()}
	if size == m.sent {
		return nil
	}
	m.sent = size
	return m.router.Update(size)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.frame())
	return v
}

// frame composes header, active screen and footer for the current size.
func (m AppModel) frame() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	header := layout.RenderHeader(m.headerInfo(), m.width)
	footer := layout.RenderFooter(m.keyHints(), m.width)

	content := m.router.View(m.width, m.contentHeight())
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// contentHeight is the number of rows left for the active screen between
// the header and the footer.
func (m AppModel) contentHeight() int {
	header := layout.RenderHeader(m.headerInfo(), m.width)
	footer := layout.RenderFooter(m.keyHints(), m.width)
	return max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}

func (m AppModel) headerInfo() layout.HeaderInfo {
	info := layout.HeaderInfo{Total: nav.TotalSteps}
	if active := m.router.Active(); active != nil {
		info.Title = active.Title()
	}
	if step, ok := m.router.Step(); ok {
		info.Step = step
	}
	kind := m.router.State().Kind
	info.Close = kind != nav.KindScanViewer && kind != nav.KindSelection
	return info
}

func (m AppModel) keyHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	logger := log.New(io.Discard, "", 0)
	if opts.DebugLog != "" {
		f, err := tea.LogToFile(opts.DebugLog, "scanquiz "+uuid.NewString()[:8])
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		logger = log.Default()
	}

	p := tea.NewProgram(newAppModel(opts, logger))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
