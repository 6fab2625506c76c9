// Package source generates deterministic source time functions injected
// into the wave field: smooth, compact-support pulses computed in closed
// form from a time step and a dominant period.
package source

import (
	"fmt"
	"math"
)

// Wavelet selects the pulse family.
type Wavelet int

const (
	// GaussianDerivative is the first derivative of a Gaussian:
	// f(t) = -2/sigma^2 * (t-t0) * exp(-(t-t0)^2/sigma^2).
	GaussianDerivative Wavelet = iota
	// Ricker is the negative normalized second derivative of a Gaussian:
	// f(t) = (1-2a) * exp(-a) with a = (pi*(t-t0)/T)^2.
	Ricker
)

func (w Wavelet) String() string {
	switch w {
	case GaussianDerivative:
		return "gauss"
	case Ricker:
		return "ricker"
	default:
		return fmt.Sprintf("Wavelet(%d)", int(w))
	}
}

// ParseWavelet maps a configuration name to a Wavelet.
func ParseWavelet(name string) (Wavelet, error) {
	switch name {
	case "gauss", "gaussian", "":
		return GaussianDerivative, nil
	case "ricker":
		return Ricker, nil
	default:
		return 0, fmt.Errorf("source: unknown wavelet %q", name)
	}
}

// Series is a source time function sampled at the simulation step: one
// amplitude per step, zero beyond the wavelet's support.
type Series []float64

// Generate samples the wavelet at dt for at least steps samples. The
// series is extended past steps if the wavelet's support outlasts the
// requested window, and is exactly zero after the support ends. The same
// inputs always produce the same series.
func Generate(w Wavelet, dt, period float64, steps int) (Series, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("source: dt %g must be positive", dt)
	}
	if period <= 0 {
		return nil, fmt.Errorf("source: period %g must be positive", period)
	}
	if steps < 1 {
		return nil, fmt.Errorf("source: step count %d must be at least 1", steps)
	}

	var t0, support float64
	var eval func(t float64) float64

	switch w {
	case GaussianDerivative:
		sigma := period / 4
		t0 = 4 * sigma
		support = 2 * t0
		eval = func(t float64) float64 {
			u := t - t0
			return -2 / (sigma * sigma) * u * math.Exp(-u*u/(sigma*sigma))
		}
	case Ricker:
		t0 = 1.5 * period
		support = 2 * t0
		eval = func(t float64) float64 {
			u := math.Pi * (t - t0) / period
			a := u * u
			return (1 - 2*a) * math.Exp(-a)
		}
	default:
		return nil, fmt.Errorf("source: unknown wavelet %v", w)
	}

	n := steps
	if sn := int(math.Ceil(support/dt)) + 1; sn > n {
		n = sn
	}
	s := make(Series, n)
	for i := range s {
		t := float64(i) * dt
		if t <= support {
			s[i] = eval(t)
		}
	}
	return s, nil
}

// At returns the amplitude at step i, zero past the end of the series.
func (s Series) At(i int) float64 {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}

// PeakAmplitude returns the largest absolute amplitude in the series.
func (s Series) PeakAmplitude() float64 {
	max := 0.0
	for _, v := range s {
		if a := math.Abs(v); a > max {
			max = a
		}
	}
	return max
}
