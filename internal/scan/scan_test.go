package scan

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/scanquiz/internal/catalog"
	"github.com/abhisek/scanquiz/internal/viewer"
)

func TestGenerateDeterministic(t *testing.T) {
	findings := []Finding{Honeycombing, TractionBronchiectasis}
	a := Generate(2202, findings, 64)
	b := Generate(2202, findings, 64)
	c := Generate(2203, findings, 64)

	assert.Equal(t, a.Pix, b.Pix, "same seed must give the same slice")
	assert.NotEqual(t, a.Pix, c.Pix, "different seeds should differ")
	assert.Equal(t, image.Rect(0, 0, 64, 64), a.Bounds())
}

func TestGenerateAnatomy(t *testing.T) {
	img := Generate(1, nil, PhantomSize)
	corner := img.GrayAt(0, 0).Y
	spine := img.GrayAt(PhantomSize/2, PhantomSize*3/4).Y
	lung := img.GrayAt(PhantomSize*29/100, PhantomSize/2-10).Y

	assert.Less(t, corner, uint8(30), "outside the body is air")
	assert.Greater(t, spine, uint8(150), "spine is bone")
	assert.Less(t, lung, spine)
}

func TestFindingsChangeTheLungs(t *testing.T) {
	plain := Generate(7, nil, 96)
	for f := range knownFindings {
		if f == SubpleuralSparing {
			continue // only modulates ground glass
		}
		got := Generate(7, []Finding{f}, 96)
		assert.NotEqual(t, plain.Pix, got.Pix, "finding %s should be visible", f)
	}
}

func TestParseFindings(t *testing.T) {
	got, err := ParseFindings([]string{"cyst", "air-trapping"})
	require.NoError(t, err)
	assert.Equal(t, []Finding{Cyst, AirTrapping}, got)

	_, err = ParseFindings([]string{"cyst", "nodule"})
	assert.ErrorIs(t, err, ErrUnknownFinding)
}

func TestFindingLabel(t *testing.T) {
	assert.Equal(t, "TRACTION BRONCHIECTASIS", TractionBronchiectasis.Label())
}

func TestGenerateAnnotated(t *testing.T) {
	findings := []Finding{GroundGlass, Reticulation}
	plain := Generate(1101, findings, PhantomSize)
	marked := GenerateAnnotated(1101, findings, PhantomSize)
	assert.NotEqual(t, plain.Pix, marked.Pix)
	assert.Equal(t, plain.Bounds(), marked.Bounds())
}

func TestAnnotateKeepsSource(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 40, 40))
	out := Annotate(img, []Label{{Text: "X", At: image.Pt(20, 20)}})
	assert.Equal(t, make([]uint8, 40*40), img.Pix, "source must not be modified")
	assert.Equal(t, uint8(255), out.GrayAt(18, 18).Y, "marker corner")
}

func TestLoadSynthetic(t *testing.T) {
	img, err := Load(catalog.ScanRef{Seed: 3, Findings: []string{"cyst"}})
	require.NoError(t, err)
	assert.Equal(t, PhantomSize, img.Bounds().Dx())

	_, err = Load(catalog.ScanRef{Seed: 3, Findings: []string{"mass"}})
	assert.ErrorIs(t, err, ErrUnknownFinding)
}

func TestPNGRoundTrip(t *testing.T) {
	src := Generate(5, []Finding{Cyst}, 48)
	path := filepath.Join(t.TempDir(), "scan.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WritePNG(f, src))
	require.NoError(t, f.Close())

	got, err := Load(catalog.ScanRef{Path: path})
	require.NoError(t, err)
	assert.Equal(t, src.Pix, got.Pix)
}

func TestDICOMRoundTrip(t *testing.T) {
	src := Generate(4404, []Finding{AirTrapping, Cyst}, 64)
	path := filepath.Join(t.TempDir(), "scan.dcm")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteDICOM(f, src, Meta{PatientID: "robert", PatientName: "Robert", Description: "quiz"}))
	require.NoError(t, f.Close())

	got, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), got.Bounds())
	assert.Less(t, got.GrayAt(0, 0).Y, got.GrayAt(32, 48).Y, "air stays darker than bone")
}

func TestOpenUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Open(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestRenderSize(t *testing.T) {
	img := Generate(1, nil, 64)
	out := Render(img, viewer.Identity(), 30, 10)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 10)
	for i, l := range lines {
		assert.Equal(t, 30, ansi.StringWidth(l), "line %d", i)
	}
	assert.Empty(t, Render(img, viewer.Identity(), 0, 10))
}

func TestProjectZoomAndPan(t *testing.T) {
	// left half black, right half white
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 5; x < 10; x++ {
			img.Pix[y*img.Stride+x] = 255
		}
	}

	fit := Project(img, viewer.Identity(), 20, 20)
	assert.Equal(t, uint8(0), fit.GrayAt(2, 10).Y)
	assert.Equal(t, uint8(255), fit.GrayAt(17, 10).Y)

	// shifting right by 10 cells pushes the black half off to the right
	shifted := Project(img, viewer.Transform{Zoom: 1, Offset: viewer.Point{X: 10}}, 20, 20)
	assert.Equal(t, uint8(0), shifted.GrayAt(17, 10).Y)

	// zoom 2 about the centre: the edges of the canvas show the inner image
	zoomed := Project(img, viewer.Transform{Zoom: 2}, 20, 20)
	assert.Equal(t, uint8(0), zoomed.GrayAt(1, 10).Y)
	assert.Equal(t, uint8(255), zoomed.GrayAt(18, 10).Y)
}

func TestLibraryLoadsOnce(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	lib := NewLibrary()
	lib.load = func(ref catalog.ScanRef) (*image.Gray, error) {
		calls.Add(1)
		<-release
		return image.NewGray(image.Rect(0, 0, 1, 1)), nil
	}

	ref := catalog.ScanRef{Seed: 9, Findings: []string{"cyst"}}
	var wg sync.WaitGroup
	results := make([]*image.Gray, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			img, err := lib.Get(ref)
			assert.NoError(t, err)
			results[i] = img
		}()
	}
	close(release)
	wg.Wait()

	img, err := lib.Get(ref)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Same(t, img, r)
	}
	calls.Store(0)
	_, _ = lib.Get(ref)
	assert.Equal(t, int32(0), calls.Load(), "cached scans are not reloaded")
	assert.Equal(t, 1, lib.Len())
}

func TestLibraryDoesNotCacheFailures(t *testing.T) {
	var calls int
	lib := NewLibrary()
	lib.load = func(catalog.ScanRef) (*image.Gray, error) {
		calls++
		return nil, errors.New("boom")
	}
	ref := catalog.ScanRef{Path: "x.png"}
	_, err := lib.Get(ref)
	assert.Error(t, err)
	_, err = lib.Get(ref)
	assert.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, lib.Len())
}

func TestCacheKey(t *testing.T) {
	a := catalog.ScanRef{Seed: 1, Findings: []string{"cyst"}}
	b := a
	b.Annotate = true
	assert.NotEqual(t, cacheKey(a), cacheKey(b))
	assert.Equal(t, "file:/tmp/x.png", cacheKey(catalog.ScanRef{Path: "/tmp/x.png"}))
}
