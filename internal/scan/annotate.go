package scan

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Label is a text callout pointing at a location on a scan.
type Label struct {
	Text string
	At   image.Point
}

// Annotate returns a copy of img with each label drawn next to a small
// marker at its point. Text is white with a black outline so it reads on
// both lung and soft tissue.
func Annotate(img *image.Gray, labels []Label) *image.Gray {
	b := img.Bounds()
	rgba := image.NewRGBA(b)
	draw.Draw(rgba, b, img, b.Min, draw.Src)

	face := basicfont.Face7x13
	ascent := face.Metrics().Ascent.Ceil()
	drawer := &font.Drawer{Dst: rgba, Face: face}

	for _, l := range labels {
		mark(rgba, l.At)

		width := font.MeasureString(face, l.Text).Ceil()
		x := l.At.X + 5
		if x+width > b.Max.X {
			x = l.At.X - 5 - width
		}
		x = max(b.Min.X+1, x)
		y := min(max(l.At.Y+ascent/2, b.Min.Y+ascent+1), b.Max.Y-2)

		drawer.Src = image.NewUniform(color.Black)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				if dx != 0 || dy != 0 {
					drawer.Dot = fixed.P(x+dx, y+dy)
					drawer.DrawString(l.Text)
				}
			}
		}
		drawer.Src = image.NewUniform(color.White)
		drawer.Dot = fixed.P(x, y)
		drawer.DrawString(l.Text)
	}

	out := image.NewGray(b)
	draw.Draw(out, b, rgba, b.Min, draw.Src)
	return out
}

// mark draws a hollow 5x5 square centred on p.
func mark(dst *image.RGBA, p image.Point) {
	white := color.RGBA{255, 255, 255, 255}
	for i := -2; i <= 2; i++ {
		dst.SetRGBA(p.X+i, p.Y-2, white)
		dst.SetRGBA(p.X+i, p.Y+2, white)
		dst.SetRGBA(p.X-2, p.Y+i, white)
		dst.SetRGBA(p.X+2, p.Y+i, white)
	}
}
