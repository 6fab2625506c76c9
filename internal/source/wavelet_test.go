package source

import (
	"math"
	"testing"
)

func TestGenerateRejectsDegenerate(t *testing.T) {
	if _, err := Generate(Ricker, 0, 0.1, 10); err == nil {
		t.Error("expected error for zero dt")
	}
	if _, err := Generate(Ricker, 1e-3, -1, 10); err == nil {
		t.Error("expected error for negative period")
	}
	if _, err := Generate(Ricker, 1e-3, 0.1, 0); err == nil {
		t.Error("expected error for zero steps")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(GaussianDerivative, 1e-3, 0.05, 500)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(GaussianDerivative, 1e-3, 0.05, 500)
	if err != nil {
		t.Fatal(err)
	}
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestGenerateCoversSupport(t *testing.T) {
	// One requested step; the series must still hold the whole pulse.
	s, err := Generate(Ricker, 1e-3, 0.1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if s.PeakAmplitude() < 0.99 {
		t.Errorf("ricker peak %.4f, expected close to 1", s.PeakAmplitude())
	}
}

func TestRickerPeakAtCenter(t *testing.T) {
	const dt, period = 1e-3, 0.1
	s, err := Generate(Ricker, dt, period, 1000)
	if err != nil {
		t.Fatal(err)
	}
	peakStep := int(math.Round(1.5 * period / dt))
	if math.Abs(s[peakStep]-1) > 1e-6 {
		t.Errorf("amplitude at t0 = %.8f, want 1", s[peakStep])
	}
	for i, v := range s {
		if math.Abs(v) > 1+1e-12 {
			t.Errorf("sample %d exceeds peak: %v", i, v)
		}
	}
}

func TestGaussianDerivativeAntisymmetric(t *testing.T) {
	const dt, period = 1e-4, 0.02
	s, err := Generate(GaussianDerivative, dt, period, 5000)
	if err != nil {
		t.Fatal(err)
	}
	t0Step := int(math.Round(4 * period / 4 / dt))
	if math.Abs(s[t0Step]) > 1e-9*s.PeakAmplitude() {
		t.Errorf("value at t0 = %.3e, expected zero crossing", s[t0Step])
	}
	for off := 1; off < t0Step; off++ {
		if math.Abs(s[t0Step-off]+s[t0Step+off]) > 1e-9*s.PeakAmplitude() {
			t.Errorf("offset %d: %e vs %e not antisymmetric", off, s[t0Step-off], s[t0Step+off])
			break
		}
	}
}

func TestSeriesZeroPastSupport(t *testing.T) {
	const dt, period = 1e-3, 0.05
	steps := 10000 // far longer than the pulse
	s, err := Generate(GaussianDerivative, dt, period, steps)
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != steps {
		t.Fatalf("expected %d samples, got %d", steps, len(s))
	}
	tail := s[len(s)/2:]
	for i, v := range tail {
		if v != 0 {
			t.Fatalf("tail sample %d = %v, want exactly 0", i, v)
		}
	}
	if s.At(len(s)+5) != 0 {
		t.Error("At past the end must be 0")
	}
}

func TestParseWavelet(t *testing.T) {
	for name, want := range map[string]Wavelet{"": GaussianDerivative, "gauss": GaussianDerivative, "gaussian": GaussianDerivative, "ricker": Ricker} {
		got, err := ParseWavelet(name)
		if err != nil || got != want {
			t.Errorf("ParseWavelet(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseWavelet("sine"); err == nil {
		t.Error("expected error for unknown wavelet")
	}
}
