package scan

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
	"golang.org/x/image/draw"

	"github.com/abhisek/scanquiz/internal/catalog"
)

var (
	// ErrUnsupportedFormat is returned for files that are neither PNG, JPEG
	// nor DICOM.
	ErrUnsupportedFormat = errors.New("unsupported scan format")

	// ErrNoPixelData is returned for DICOM files without a readable frame.
	ErrNoPixelData = errors.New("dicom file has no pixel data")
)

// dicomPreamble is the length of the preamble before the DICM magic.
const dicomPreamble = 128

// Load returns the grayscale image a scan reference points at. Synthetic
// references are generated; Annotate only applies to them since file scans
// carry no finding locations.
func Load(ref catalog.ScanRef) (*image.Gray, error) {
	if !ref.Synthetic() {
		return Open(ref.Path)
	}
	findings, err := ParseFindings(ref.Findings)
	if err != nil {
		return nil, err
	}
	if ref.Annotate {
		return GenerateAnnotated(ref.Seed, findings, PhantomSize), nil
	}
	return Generate(ref.Seed, findings, PhantomSize), nil
}

// Open reads a PNG, JPEG or DICOM file as grayscale.
func Open(path string) (*image.Gray, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scan: %w", err)
	}
	defer f.Close()

	if isDICOM(f, path) {
		return openDICOM(path)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind %s: %w", path, err)
	}
	img, _, err := image.Decode(f)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
		}
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return toGray(img), nil
}

func isDICOM(r io.Reader, path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".dcm", ".dicom":
		return true
	}
	head := make([]byte, dicomPreamble+4)
	if _, err := io.ReadFull(r, head); err != nil {
		return false
	}
	return string(head[dicomPreamble:]) == "DICM"
}

func openDICOM(path string) (*image.Gray, error) {
	ds, err := dicom.ParseFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("parse dicom %s: %w", path, err)
	}
	el, err := ds.FindElementByTag(tag.PixelData)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoPixelData, path)
	}
	info := dicom.MustGetPixelDataInfo(el.Value)
	if len(info.Frames) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPixelData, path)
	}
	img, err := info.Frames[0].GetImage()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNoPixelData, path, err)
	}
	return toGray(img), nil
}

// toGray converts img to 8-bit grayscale. 16-bit images are windowed to
// their own value range so that 12-bit CT data is not rendered near black.
func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	g16, ok := img.(*image.Gray16)
	if !ok {
		draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
		return out
	}

	lo, hi := uint16(0xFFFF), uint16(0)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := g16.Gray16At(x, y).Y
			lo, hi = min(lo, v), max(hi, v)
		}
	}
	span := float64(hi) - float64(lo)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var v uint8
			if span > 0 {
				v = uint8((float64(g16.Gray16At(x, y).Y) - float64(lo)) / span * 255)
			}
			out.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: v})
		}
	}
	return out
}
