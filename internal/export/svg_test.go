package export

import (
	"strings"
	"testing"
)

func TestFieldSVG(t *testing.T) {
	coords := []float64{0, 1, 2, 3, 4}
	field := []float64{0, 0.5, 1, 0.5, 0}
	svg := FieldSVG(coords, field, 400, 200, 0)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML declaration")
	}
	if !strings.Contains(svg, `viewBox="0 0 400 200"`) {
		t.Error("missing viewBox")
	}
	if !strings.Contains(svg, "M0.0,") || !strings.Contains(svg, "L400.0,") {
		t.Errorf("path does not span the full width:\n%s", svg)
	}
	// the peak value maps to the top of the image
	if !strings.Contains(svg, "L200.0,0.0") {
		t.Errorf("peak not at the top edge:\n%s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("unterminated document")
	}
}

func TestFieldSVGDegenerate(t *testing.T) {
	if got := FieldSVG(nil, nil, 100, 100, 0); got != "" {
		t.Errorf("expected empty output for no data, got %q", got)
	}
	if got := FieldSVG([]float64{0, 1}, []float64{0}, 100, 100, 0); got != "" {
		t.Error("expected empty output for mismatched lengths")
	}
}

func TestFieldSVGFixedScale(t *testing.T) {
	coords := []float64{0, 1, 2}
	field := []float64{0, 0.5, 0}
	// with amp=1 the 0.5 peak sits a quarter of the way down
	svg := FieldSVG(coords, field, 100, 100, 1)
	if !strings.Contains(svg, "L50.0,25.0") {
		t.Errorf("fixed scale not honored:\n%s", svg)
	}
}

func TestTraceSVG(t *testing.T) {
	trace := []float64{0, 1, 0, -1, 0}
	svg := TraceSVG(trace, 0.01, 300, 120)
	if !strings.Contains(svg, strokeTrace) {
		t.Error("trace stroke color missing")
	}
	if TraceSVG(trace, 0, 300, 120) != "" {
		t.Error("expected empty output for dt <= 0")
	}
}
