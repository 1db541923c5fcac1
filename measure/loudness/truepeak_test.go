package loudness

import (
	"math"
	"testing"
)

func TestOversamplerImpulse(t *testing.T) {
	var o oversampler

	for j := range 3 * truePeakTaps {
		x := 0.0
		if j == 0 {
			x = 1
		}

		got := o.push(x)

		want := 0.0
		if j < truePeakTaps {
			for p := range truePeakFilter {
				want = math.Max(want, math.Abs(truePeakFilter[p][j]))
			}
		}

		if got != want {
			t.Fatalf("sample %d: peak %v, want %v", j, got, want)
		}
	}
}

func TestTruePeakFilterSymmetry(t *testing.T) {
	for k := range truePeakTaps {
		if truePeakFilter[0][k] != truePeakFilter[3][truePeakTaps-1-k] {
			t.Errorf("phase 0/3 tap %d not mirrored", k)
		}

		if truePeakFilter[1][k] != truePeakFilter[2][truePeakTaps-1-k] {
			t.Errorf("phase 1/2 tap %d not mirrored", k)
		}
	}
}

func TestOversamplerAlternatingPairs(t *testing.T) {
	var o oversampler

	var peak float64
	for i := range 64 {
		x := 1.0
		if i%4 >= 2 {
			x = -1
		}

		peak = math.Max(peak, o.push(x))
	}

	if math.Abs(peak-1.4277) > 1e-3 {
		t.Errorf("peak = %v, want about 1.4277", peak)
	}
}
