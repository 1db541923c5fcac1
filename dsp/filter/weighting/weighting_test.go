package weighting

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-loudness/dsp/filter/biquad"
)

func coeffsClose(a, b biquad.Coefficients, tol float64) bool {
	return math.Abs(a.B0-b.B0) <= tol &&
		math.Abs(a.B1-b.B1) <= tol &&
		math.Abs(a.B2-b.B2) <= tol &&
		math.Abs(a.A1-b.A1) <= tol &&
		math.Abs(a.A2-b.A2) <= tol
}

func TestK_ExactRates(t *testing.T) {
	s1, s2 := K(48000)
	if s1 != stage1At48k || s2 != stage2At48k {
		t.Fatalf("48 kHz: got %+v %+v, want exact coefficients", s1, s2)
	}

	s1, s2 = K(44100)
	if s1 != stage1At44k1 || s2 != stage2At44k1 {
		t.Fatalf("44.1 kHz: got %+v %+v, want exact coefficients", s1, s2)
	}

	if _, _, ok := Exact(96000); ok {
		t.Fatal("Exact(96000) should not report pre-computed coefficients")
	}
}

func TestDesign_MatchesExact(t *testing.T) {
	for _, sr := range []float64{44100, 48000} {
		want1, want2, _ := Exact(sr)
		got1, got2 := Design(sr)

		if !coeffsClose(got1, want1, 1e-9) {
			t.Errorf("sr=%g stage 1: designed %+v, exact %+v", sr, got1, want1)
		}

		if !coeffsClose(got2, want2, 1e-4) {
			t.Errorf("sr=%g stage 2: designed %+v, exact %+v", sr, got2, want2)
		}
	}
}

func TestK_Stage2Numerator(t *testing.T) {
	for _, sr := range []float64{4000, 8000, 22050, 32000, 44100, 48000, 88200, 96000, 192000} {
		_, s2 := K(sr)
		if s2.B0 != 1 || s2.B1 != -2 || s2.B2 != 1 {
			t.Errorf("sr=%g: stage 2 numerator = (%v, %v, %v), want (1, -2, 1)", sr, s2.B0, s2.B1, s2.B2)
		}
	}
}

func TestK_Stable(t *testing.T) {
	for _, sr := range []float64{8000, 11025, 16000, 22050, 32000, 44100, 48000, 88200, 96000, 176400, 192000} {
		s1, s2 := K(sr)
		if !s1.Stable() || !s2.Stable() {
			t.Errorf("sr=%g: unstable design %+v %+v", sr, s1, s2)
		}
	}
}

func TestK_ResponseAt997Hz(t *testing.T) {
	// The cascade gain at 997 Hz is what the -0.691 loudness offset cancels.
	// Designed rates drift slightly because the high-pass gain is not
	// normalized.
	for _, sr := range []float64{32000, 44100, 48000, 96000, 192000} {
		got := NewK(sr).MagnitudeDB(997, sr)
		if math.Abs(got-0.691) > 0.05 {
			t.Errorf("sr=%g: |H(997 Hz)| = %.4f dB, want 0.691 dB", sr, got)
		}
	}
}

func TestK_ResponseShape(t *testing.T) {
	const sr = 48000.0

	chain := NewK(sr)

	tests := []struct {
		freq float64
		want float64
		tol  float64
	}{
		{freq: 20, want: -13.28, tol: 0.05},
		{freq: 100, want: -1.13, tol: 0.05},
		{freq: 10000, want: 4.04, tol: 0.05},
	}

	for _, tt := range tests {
		got := chain.MagnitudeDB(tt.freq, sr)
		if math.Abs(got-tt.want) > tt.tol {
			t.Errorf("%g Hz: got %.2f dB, want %.2f dB", tt.freq, got, tt.want)
		}
	}
}

func TestK_BelowMinimum(t *testing.T) {
	for _, sr := range []float64{0, -1, 4000, math.NaN()} {
		s1, s2 := K(sr)
		if s1 != biquad.Passthrough() {
			t.Errorf("sr=%v: stage 1 = %+v, want pass-through", sr, s1)
		}

		if s2 != stage2At48k {
			t.Errorf("sr=%v: stage 2 = %+v, want fixed high-pass", sr, s2)
		}
	}
}

func TestPrototype(t *testing.T) {
	p := Prototype()

	shelf := p[0]
	if imag(shelf.Poles[0]) == 0 || !rootsClose(shelf.Poles[0], complexConj(shelf.Poles[1])) {
		t.Errorf("shelf poles %v are not a conjugate pair", shelf.Poles)
	}

	if imag(shelf.Zeros[0]) == 0 || !rootsClose(shelf.Zeros[0], complexConj(shelf.Zeros[1])) {
		t.Errorf("shelf zeros %v are not a conjugate pair", shelf.Zeros)
	}

	if got := 20 * math.Log10(shelf.Gain); math.Abs(got-4) > 0.01 {
		t.Errorf("shelf gain = %.3f dB, want ~4 dB", got)
	}

	rlb := p[1]
	if rlb.Zeros != [2]complex128{} {
		t.Errorf("rlb zeros = %v, want double zero at origin", rlb.Zeros)
	}

	if rlb.Poles[0] != rlb.Poles[1] || imag(rlb.Poles[0]) != 0 || real(rlb.Poles[0]) >= 0 {
		t.Errorf("rlb poles = %v, want one real left-half-plane pole used twice", rlb.Poles)
	}
}

func TestK_MeasuredMatchesAnalytic(t *testing.T) {
	const (
		sr      = 96000.0
		fftSize = 1 << 16
	)

	chain := NewK(sr)

	mag, err := chain.MeasuredMagnitude(fftSize)
	if err != nil {
		t.Fatalf("MeasuredMagnitude: %v", err)
	}

	for _, k := range []int{700, 2000, 10000, 30000} {
		freq := float64(k) * sr / fftSize
		want := chain.MagnitudeDB(freq, sr)
		got := 20 * math.Log10(mag[k])
		if math.Abs(got-want) > 0.01 {
			t.Errorf("%.1f Hz: measured %.4f dB, analytic %.4f dB", freq, got, want)
		}
	}
}

func rootsClose(a, b complex128) bool {
	return cmplx.Abs(a-b) <= 1e-9*cmplx.Abs(a)
}

func complexConj(c complex128) complex128 {
	return complex(real(c), -imag(c))
}
