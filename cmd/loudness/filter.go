package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-loudness/dsp/core"
	"github.com/cwbudde/algo-loudness/dsp/filter/weighting"
)

var octaveBands = []float64{31.5, 63, 125, 250, 500, 997, 2000, 4000, 8000, 16000}

// printFilter prints the K-weighting coefficients for opts.Rate and compares
// the analytic magnitude response with the FFT of the impulse response.
func printFilter(w io.Writer, opts filterOptions) error {
	stage1, stage2 := weighting.K(opts.Rate)

	source := "bilinear transform"
	if _, _, ok := weighting.Exact(opts.Rate); ok {
		source = "exact"
	} else if opts.Rate < weighting.MinDesignSampleRate {
		source = "fallback below design minimum"
	}

	fmt.Fprintf(w, "K-weighting at %g Hz (%s)\n", opts.Rate, source)
	fmt.Fprintf(w, "  stage 1: b=(%.14f, %.14f, %.14f) a=(1, %.14f, %.14f)\n",
		stage1.B0, stage1.B1, stage1.B2, stage1.A1, stage1.A2)
	fmt.Fprintf(w, "  stage 2: b=(%.14f, %.14f, %.14f) a=(1, %.14f, %.14f)\n\n",
		stage2.B0, stage2.B1, stage2.B2, stage2.A1, stage2.A2)

	chain := weighting.NewK(opts.Rate)

	mag, err := chain.MeasuredMagnitude(opts.FFTSize)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Freq [Hz]\tAnalytic [dB]\tMeasured [dB]\tDiff [dB]\t\n")

	for _, f := range octaveBands {
		if f >= opts.Rate/2 {
			break
		}

		analytic := chain.MagnitudeDB(f, opts.Rate)

		bin := int(math.Round(f * float64(opts.FFTSize) / opts.Rate))
		binFreq := float64(bin) * opts.Rate / float64(opts.FFTSize)
		measured := core.LinearToDB(mag[bin])

		// Compare at the bin centre, not the nominal band frequency.
		diff := measured - chain.MagnitudeDB(binFreq, opts.Rate)

		fmt.Fprintf(tw, "%g\t%.3f\t%.3f\t%.4f\t\n", f, analytic, measured, diff)
	}

	return tw.Flush()
}
