// Package export renders simulation output as standalone SVG images.
package export

import (
	"fmt"
	"strings"
)

const (
	background  = "#0a0a0a"
	strokeField = "#00d7af"
	strokeTrace = "#ffaf00"
	strokeAxis  = "#3a3a3a"
)

// FieldSVG draws a displacement profile u(x) as an SVG polyline. The
// vertical scale is fixed by amp so frames exported from one run share
// a common axis; pass amp <= 0 to autoscale to the data.
func FieldSVG(coords, field []float64, width, height int, amp float64) string {
	if len(coords) < 2 || len(field) != len(coords) {
		return ""
	}
	if amp <= 0 {
		for _, v := range field {
			if a := abs(v); a > amp {
				amp = a
			}
		}
	}
	if amp == 0 {
		amp = 1
	}

	xmin, xmax := coords[0], coords[len(coords)-1]
	xr := xmax - xmin
	if xr == 0 {
		xr = 1
	}

	var b strings.Builder
	writeHeader(&b, width, height)
	// zero line through the middle
	mid := float64(height) / 2
	fmt.Fprintf(&b, `<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
		mid, width, mid, strokeAxis)

	b.WriteString(`<path fill="none" stroke="` + strokeField + `" stroke-width="1.5" d="`)
	for i := range coords {
		x := (coords[i] - xmin) / xr * float64(width)
		n := field[i] / amp
		if n > 1 {
			n = 1
		}
		if n < -1 {
			n = -1
		}
		y := (1 - n) / 2 * float64(height)
		if i == 0 {
			fmt.Fprintf(&b, "M%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&b, " L%.1f,%.1f", x, y)
		}
	}
	b.WriteString("\"/>\n</svg>")
	return b.String()
}

// TraceSVG draws a receiver trace u(t) at one DOF as an SVG polyline.
func TraceSVG(trace []float64, dt float64, width, height int) string {
	if len(trace) < 2 || dt <= 0 {
		return ""
	}
	coords := make([]float64, len(trace))
	for i := range coords {
		coords[i] = float64(i) * dt
	}
	s := FieldSVG(coords, trace, width, height, 0)
	return strings.Replace(s, strokeField, strokeTrace, 1)
}

func writeHeader(b *strings.Builder, width, height int) {
	fmt.Fprintf(b, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
