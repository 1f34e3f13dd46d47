package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderHeaderStep(t *testing.T) {
	h := ansi.Strip(RenderHeader(HeaderInfo{Title: "JULIE", Step: 2, Total: 4, Close: true}, 100))
	for _, want := range []string{"ScanQuiz", "JULIE", "STEP 2 / 4", "close"} {
		if !strings.Contains(h, want) {
			t.Errorf("header is missing %q:\n%s", want, h)
		}
	}

	h = ansi.Strip(RenderHeader(HeaderInfo{Title: "scan", Total: 4}, 100))
	if strings.Contains(h, "STEP") || strings.Contains(h, "close") {
		t.Errorf("header without step or close shows them anyway:\n%s", h)
	}
}

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(MinWidth-1, MinHeight) || IsTooSmall(MinWidth, MinHeight) {
		t.Error("unexpected minimum size check")
	}
}
