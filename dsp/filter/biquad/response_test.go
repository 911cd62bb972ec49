package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestMagnitudeSquared_MatchesResponse(t *testing.T) {
	// Verify closed-form MagnitudeSquared matches |Response|^2 across frequencies.
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	sr := 48000.0

	for _, freq := range []float64{100, 500, 1000, 5000, 10000, 20000} {
		h := c.Response(freq, sr)
		fromResponse := real(h)*real(h) + imag(h)*imag(h)
		fromClosed := c.MagnitudeSquared(freq, sr)
		if !almostEqual(fromClosed, fromResponse, 1e-10) {
			t.Errorf("freq=%v: MagnitudeSquared=%.15f, |Response|²=%.15f", freq, fromClosed, fromResponse)
		}
	}
}

func TestMagnitudeDB_MatchesMagnitudeSquared(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	sr := 48000.0

	for _, freq := range []float64{100, 1000, 10000} {
		db := c.MagnitudeDB(freq, sr)
		fromSq := 10 * math.Log10(c.MagnitudeSquared(freq, sr))
		if !almostEqual(db, fromSq, 1e-12) {
			t.Errorf("freq=%v: MagnitudeDB=%.15f, 10*log10(MagSq)=%.15f", freq, db, fromSq)
		}
	}
}

func TestResponse_Passthrough(t *testing.T) {
	// Passthrough (B0=1) should have magnitude 1 and phase 0 at all frequencies.
	c := passthrough()
	sr := 48000.0
	for _, freq := range []float64{0, 100, 1000, 10000, 24000} {
		h := c.Response(freq, sr)
		mag := cmplx.Abs(h)
		if !almostEqual(mag, 1, 1e-12) {
			t.Errorf("freq=%v: |H|=%v, want 1", freq, mag)
		}
	}
}

func TestResponse_Allpass(t *testing.T) {
	// First-order allpass: B0=A2, B1=A1, B2=1, A1=A1, A2=A2
	// |H(f)| = 1 for all f.
	a1, a2 := -0.5, 0.3
	c := Coefficients{B0: a2, B1: a1, B2: 1, A1: a1, A2: a2}
	sr := 48000.0
	for _, freq := range []float64{100, 500, 1000, 5000, 10000, 20000} {
		h := c.Response(freq, sr)
		mag := cmplx.Abs(h)
		if !almostEqual(mag, 1, 1e-10) {
			t.Errorf("freq=%v: |H|=%.15f, want 1", freq, mag)
		}
	}
}

func TestChain_Response_ProductOfSections(t *testing.T) {
	coeffs := twoSectionCoeffs()
	chain := NewChain(coeffs)
	sr := 48000.0

	for _, freq := range []float64{100, 1000, 10000} {
		h1 := coeffs[0].Response(freq, sr)
		h2 := coeffs[1].Response(freq, sr)
		ref := h1 * h2
		got := chain.Response(freq, sr)
		if !almostEqual(real(got), real(ref), 1e-10) || !almostEqual(imag(got), imag(ref), 1e-10) {
			t.Errorf("freq=%v: chain=%v, product=%v", freq, got, ref)
		}
	}
}

func TestChain_Response_WithGain(t *testing.T) {
	coeffs := twoSectionCoeffs()
	gain := 0.5
	chain := NewChain(coeffs, WithGain(gain))
	chainNoGain := NewChain(coeffs)
	sr := 48000.0

	for _, freq := range []float64{100, 1000, 10000} {
		ref := chainNoGain.Response(freq, sr) * complex(gain, 0)
		got := chain.Response(freq, sr)
		if !almostEqual(real(got), real(ref), 1e-10) || !almostEqual(imag(got), imag(ref), 1e-10) {
			t.Errorf("freq=%v: chain=%v, ref=%v", freq, got, ref)
		}
	}
}

func TestChain_MagnitudeDB_MatchesResponse(t *testing.T) {
	chain := NewChain(twoSectionCoeffs())
	sr := 48000.0

	for _, freq := range []float64{100, 1000, 10000} {
		h := chain.Response(freq, sr)
		fromResponse := 20 * math.Log10(cmplx.Abs(h))
		fromMethod := chain.MagnitudeDB(freq, sr)
		if !almostEqual(fromMethod, fromResponse, 1e-10) {
			t.Errorf("freq=%v: MagnitudeDB=%.15f, 20*log10(|H|)=%.15f", freq, fromMethod, fromResponse)
		}
	}
}

func TestChain_MagnitudeSquared_MatchesResponse(t *testing.T) {
	chain := NewChain(twoSectionCoeffs(), WithGain(2))
	sr := 500.0

	for _, freq := range []float64{0.5, 10, 100, 249} {
		h := chain.Response(freq, sr)
		want := real(h)*real(h) + imag(h)*imag(h)
		got := chain.MagnitudeSquared(freq, sr)
		if !almostEqual(got, want, 1e-10*math.Max(1, want)) {
			t.Errorf("freq=%v: MagnitudeSquared=%.15f, |Response|²=%.15f", freq, got, want)
		}
	}
}
