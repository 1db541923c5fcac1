package testutil

import (
	"math"
	"testing"
)

// recorder captures Fatalf calls without stopping the test.
type recorder struct {
	testing.TB
	failed bool
}

func (r *recorder) Helper() {}

func (r *recorder) Fatalf(string, ...any) { r.failed = true }

func TestRequireWithin(t *testing.T) {
	tests := []struct {
		got, want, tol float64
		fail           bool
	}{
		{-23.0, -23.0, 0.1, false},
		{-22.95, -23.0, 0.1, false},
		{-22.8, -23.0, 0.1, true},
		{math.NaN(), -23.0, 0.1, true},
		{math.Inf(-1), -23.0, 0.1, true},
	}

	for _, tt := range tests {
		r := &recorder{TB: t}
		RequireWithin(r, "loudness", tt.got, tt.want, tt.tol)
		if r.failed != tt.fail {
			t.Errorf("RequireWithin(%v, %v, %v) failed = %v, want %v", tt.got, tt.want, tt.tol, r.failed, tt.fail)
		}
	}
}

func TestRequireFinite(t *testing.T) {
	for _, tt := range []struct {
		data []float64
		fail bool
	}{
		{nil, false},
		{[]float64{-100, 0, 3.5}, false},
		{[]float64{0, math.NaN()}, true},
		{[]float64{math.Inf(1)}, true},
	} {
		r := &recorder{TB: t}
		RequireFinite(r, tt.data)
		if r.failed != tt.fail {
			t.Errorf("RequireFinite(%v) failed = %v, want %v", tt.data, r.failed, tt.fail)
		}
	}
}
