package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"
)

// RenderProfile draws a displacement profile u(x) onto a braille canvas
// and returns it as text. The vertical scale is fixed by amp so
// consecutive frames of one run do not rescale against each other; pass
// amp <= 0 to autoscale to the frame.
func RenderProfile(coords, field []float64, width, height int, amp float64) string {
	c := NewCanvas(width, height)
	if len(coords) == 0 || len(field) != len(coords) {
		return c.String()
	}

	if amp <= 0 {
		for _, v := range field {
			if a := math.Abs(v); a > amp {
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

	px := width*2 - 1
	py := height*4 - 1
	toX := func(x float64) int { return int((x - xmin) / xr * float64(px)) }
	toY := func(u float64) int {
		// amp maps to the vertical extremes, zero to the middle line.
		n := u / amp
		if n > 1 {
			n = 1
		}
		if n < -1 {
			n = -1
		}
		return int((1 - n) / 2 * float64(py))
	}

	x0, y0 := toX(coords[0]), toY(field[0])
	for i := 1; i < len(coords); i++ {
		x1, y1 := toX(coords[i]), toY(field[i])
		c.Line(x0, y0, x1, y1)
		x0, y0 = x1, y1
	}
	return c.String()
}

// PlotField renders a field snapshot as an asciigraph line chart.
func PlotField(field []float64, width, height int, caption string) string {
	if len(field) == 0 {
		return ""
	}
	return asciigraph.Plot(field,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}

// PlotTrace renders a receiver trace against time.
func PlotTrace(trace []float64, dt float64, dof, width, height int) string {
	caption := fmt.Sprintf("receiver at DOF %d (dt=%.3g, %d samples)", dof, dt, len(trace))
	return PlotField(trace, width, height, caption)
}

// PlotSpectrum renders an amplitude spectrum with the dominant frequency
// in the caption.
func PlotSpectrum(freq, power []float64, width, height int) string {
	if len(power) == 0 {
		return ""
	}
	peak, peakPower := 0.0, 0.0
	for i := 1; i < len(power); i++ {
		if power[i] > peakPower {
			peak, peakPower = freq[i], power[i]
		}
	}
	caption := fmt.Sprintf("amplitude spectrum, dominant %.3g Hz", peak)
	return PlotField(power, width, height, caption)
}
