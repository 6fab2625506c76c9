// Package analysis provides frequency-domain diagnostics for source
// series and receiver traces.
package analysis

import (
	"math"
	"math/cmplx"
)

// fft is the recursive radix-2 transform; len(data) must be a power of
// two, which Spectrum guarantees by zero-padding.
func fft(data []complex128) []complex128 {
	n := len(data)
	if n <= 1 {
		return data
	}

	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	fe := fft(even)
	fo := fft(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = fe[k] + w*fo[k]
		result[k+n/2] = fe[k] - w*fo[k]
	}
	return result
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

// Spectrum returns the one-sided amplitude spectrum of a real series
// sampled at dt, together with the frequency axis. The input is
// zero-padded to the next power of two.
func Spectrum(data []float64, dt float64) (freq, power []float64) {
	if len(data) == 0 || dt <= 0 {
		return nil, nil
	}
	n := nextPow2(len(data))
	buf := make([]complex128, n)
	for i, v := range data {
		buf[i] = complex(v, 0)
	}

	spec := fft(buf)
	half := n / 2
	freq = make([]float64, half)
	power = make([]float64, half)
	df := 1 / (float64(n) * dt)
	for i := 0; i < half; i++ {
		freq[i] = float64(i) * df
		power[i] = cmplx.Abs(spec[i])
	}
	return freq, power
}

// DominantFrequency returns the frequency of the strongest non-DC spectral
// line, or 0 for an empty or constant series.
func DominantFrequency(data []float64, dt float64) float64 {
	freq, power := Spectrum(data, dt)
	if len(power) < 2 {
		return 0
	}
	best, bestPower := 0.0, 0.0
	for i := 1; i < len(power); i++ {
		if power[i] > bestPower {
			best, bestPower = freq[i], power[i]
		}
	}
	if bestPower == 0 {
		return 0
	}
	return best
}
