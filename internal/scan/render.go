package scan

import (
	"image"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/abhisek/scanquiz/internal/viewer"
)

// halfBlock draws two vertically stacked pixels in one cell: the foreground
// is the top pixel and the background the bottom one.
const halfBlock = "▀"

// Render draws img into a cols x rows block of terminal cells. The image is
// fitted to the block, then zoomed about the centre and shifted by the
// transform's offset, which is measured in cells.
func Render(img image.Image, t viewer.Transform, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	canvas := Project(img, t, cols, rows*2)

	var sb strings.Builder
	for r := 0; r < rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		run, runTop, runBottom := 0, uint8(0), uint8(0)
		flush := func() {
			if run == 0 {
				return
			}
			sb.WriteString(lipgloss.NewStyle().
				Foreground(color.Gray{Y: runTop}).
				Background(color.Gray{Y: runBottom}).
				Render(strings.Repeat(halfBlock, run)))
			run = 0
		}
		for c := 0; c < cols; c++ {
			top := canvas.GrayAt(c, 2*r).Y
			bottom := canvas.GrayAt(c, 2*r+1).Y
			if run > 0 && (top != runTop || bottom != runBottom) {
				flush()
			}
			runTop, runBottom = top, bottom
			run++
		}
		flush()
	}
	return sb.String()
}

// Project resamples img onto a width x height pixel canvas under t. Areas
// the image does not cover stay black.
func Project(img image.Image, t viewer.Transform, width, height int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, width, height))
	b := img.Bounds()
	if b.Empty() || width <= 0 || height <= 0 {
		return dst
	}
	zoom := t.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	fit := min(float64(width)/float64(b.Dx()), float64(height)/float64(b.Dy()))
	s := fit * zoom

	// One cell is one pixel wide and two pixels tall.
	dx := float64(width)/2 + t.Offset.X - s*(float64(b.Min.X)+float64(b.Dx())/2)
	dy := float64(height)/2 + t.Offset.Y*2 - s*(float64(b.Min.Y)+float64(b.Dy())/2)

	m := f64.Aff3{
		s, 0, dx,
		0, s, dy,
	}
	draw.ApproxBiLinear.Transform(dst, m, img, b, draw.Src, nil)
	return dst
}
