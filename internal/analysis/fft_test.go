package analysis

import (
	"math"
	"testing"
)

func TestSpectrumSine(t *testing.T) {
	const dt = 1e-3
	const f0 = 40.0
	data := make([]float64, 1024)
	for i := range data {
		data[i] = math.Sin(2 * math.Pi * f0 * float64(i) * dt)
	}

	got := DominantFrequency(data, dt)
	df := 1 / (1024 * dt) // bin width
	if math.Abs(got-f0) > df {
		t.Errorf("dominant frequency %.3f, want %.3f within one bin (%.3f)", got, f0, df)
	}
}

func TestSpectrumPadsToPowerOfTwo(t *testing.T) {
	data := make([]float64, 300)
	for i := range data {
		data[i] = math.Cos(0.3 * float64(i))
	}
	freq, power := Spectrum(data, 0.01)
	if len(freq) != 256 || len(power) != 256 {
		t.Errorf("expected 256 one-sided bins from 512-point padding, got %d/%d", len(freq), len(power))
	}
	if freq[0] != 0 {
		t.Errorf("first bin at %f, want DC", freq[0])
	}
}

func TestSpectrumDegenerateInputs(t *testing.T) {
	if f, p := Spectrum(nil, 0.01); f != nil || p != nil {
		t.Error("expected nil spectrum for empty input")
	}
	if f, p := Spectrum([]float64{1, 2}, 0); f != nil || p != nil {
		t.Error("expected nil spectrum for non-positive dt")
	}
	if got := DominantFrequency(make([]float64, 64), 0.01); got != 0 {
		t.Errorf("constant series: dominant frequency %f, want 0", got)
	}
}
