package components

import (
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
)

// Scroller is a viewport over narrative content that is re-wrapped whenever
// the reading width changes.
type Scroller struct {
	vp      viewport.Model
	render  func(width int) string
	reserve int
	width   int
}

// NewScroller returns a Scroller that renders its content with render and
// leaves reserve rows free below the viewport.
func NewScroller(reserve int, render func(width int) string) Scroller {
	return Scroller{
		vp:      viewport.New(),
		render:  render,
		reserve: reserve,
	}
}

// SetSize fits the viewport to a frame of the given size.
func (s *Scroller) SetSize(width, height int) {
	cw := ContentWidth(width)
	vh := max(height-s.reserve, 1)
	if cw == s.width && vh == s.vp.Height() {
		return
	}
	s.width = cw
	s.vp.SetWidth(cw)
	s.vp.SetHeight(vh)
	s.vp.SetContent(s.render(cw))
}

// Refresh renders the content again at the current width and scrolls to
// the top.
func (s *Scroller) Refresh() {
	if s.width == 0 {
		return
	}
	s.vp.SetContent(s.render(s.width))
	s.vp.GotoTop()
}

func (s *Scroller) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return cmd
}

func (s *Scroller) View() string {
	return s.vp.View()
}

// Width is the reading width the content is wrapped to.
func (s *Scroller) Width() int {
	return s.width
}

func (s *Scroller) AtBottom() bool {
	return s.vp.AtBottom()
}

func (s *Scroller) YOffset() int {
	return s.vp.YOffset()
}
