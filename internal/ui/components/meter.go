package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/scanquiz/internal/ui/theme"
)

// ZoomMeter displays the current zoom within its limits as a bar.
type ZoomMeter struct {
	Zoom  float64
	Min   float64
	Max   float64
	Width int
}

// NewZoomMeter creates a new zoom meter.
func NewZoomMeter(zoom, minZoom, maxZoom float64, width int) ZoomMeter {
	return ZoomMeter{
		Zoom:  zoom,
		Min:   minZoom,
		Max:   maxZoom,
		Width: width,
	}
}

// Fraction is the position of Zoom between Min and Max in [0, 1].
func (z ZoomMeter) Fraction() float64 {
	if z.Max <= z.Min {
		return 0
	}
	f := (z.Zoom - z.Min) / (z.Max - z.Min)
	return min(max(f, 0), 1)
}

// View renders the meter.
func (z ZoomMeter) View() string {
	label := lipgloss.NewStyle().Foreground(theme.Text).Render("Zoom") + "  "
	percent := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d%%", int(z.Zoom*100+0.5)))

	barWidth := z.Width - lipgloss.Width(label) - 7 // "  300%"
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * z.Fraction())
	filled = min(max(filled, 0), barWidth)
	empty := barWidth - filled

	return label +
		theme.MeterFilled.Render(strings.Repeat(" ", filled)) +
		theme.MeterEmpty.Render(strings.Repeat(" ", empty)) +
		percent
}
