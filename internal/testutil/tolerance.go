package testutil

import (
	"math"
	"testing"
)

// RequireWithin fails tb unless |got-want| <= tol. what names the quantity
// in the failure message.
func RequireWithin(tb testing.TB, what string, got, want, tol float64) {
	tb.Helper()

	if math.IsNaN(got) || math.Abs(got-want) > tol {
		tb.Fatalf("%s = %.4f, want %.4f ±%g", what, got, want, tol)
	}
}

// RequireFinite fails tb at the first NaN or Inf in data.
func RequireFinite(tb testing.TB, data []float64) {
	tb.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			tb.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}
