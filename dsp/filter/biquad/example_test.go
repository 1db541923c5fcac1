package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-loudness/dsp/filter/biquad"
)

// The two 48 kHz K-weighting stages: a high-frequency shelf and the
// RLB high-pass.
var (
	shelf = biquad.Coefficients{
		B0: 1.53512485958697, B1: -2.69169618940638, B2: 1.19839281085285,
		A1: -1.69065929318241, A2: 0.73248077421585,
	}
	rlb = biquad.Coefficients{
		B0: 1, B1: -2, B2: 1,
		A1: -1.99004745483398, A2: 0.99007225036621,
	}
)

func ExampleSection_ProcessSample() {
	s := biquad.NewSection(biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	})

	for i := range 4 {
		x := 0.0
		if i == 0 {
			x = 1
		}

		fmt.Printf("y[%d] = %.3f\n", i, s.ProcessSample(x))
	}
	// Output:
	// y[0] = 0.250
	// y[1] = 0.550
	// y[2] = 0.350
	// y[3] = 0.048
}

func ExampleChain_MagnitudeDB() {
	k := biquad.NewChain(shelf, rlb)

	for _, f := range []float64{20, 100, 997, 10000} {
		fmt.Printf("%5.0f Hz: %+.2f dB\n", f, k.MagnitudeDB(f, 48000))
	}
	// Output:
	//    20 Hz: -13.28 dB
	//   100 Hz: -1.13 dB
	//   997 Hz: +0.69 dB
	// 10000 Hz: +4.04 dB
}

func ExampleChain_ProcessSample() {
	k := biquad.NewChain(shelf, rlb)

	for i := range 4 {
		x := 0.0
		if i == 0 {
			x = 1
		}

		fmt.Printf("%.6f\n", k.ProcessSample(x))
	}
	// Output:
	// 1.535125
	// -0.111601
	// -0.103112
	// -0.092970
}

func ExampleCoefficients_Stable() {
	fmt.Println(shelf.Stable(), rlb.Stable())
	fmt.Println(biquad.Coefficients{B0: 1, A1: -2.5, A2: 1.2}.Stable())
	// Output:
	// true true
	// false
}
