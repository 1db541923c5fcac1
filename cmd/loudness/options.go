package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cwbudde/algo-loudness/dsp/core"
	"github.com/cwbudde/algo-loudness/measure/loudness"
)

var errHelp = errors.New("help requested")

var validate = validator.New(validator.WithRequiredStructEnabled())

// options are the settings of the analyze command.
type options struct {
	TruePeak bool
	Weights  []float64 `validate:"min=1,max=32,dive,gte=0,lte=10"`
	JSON     bool
	Jobs     int      `validate:"gte=1,lte=64"`
	Block    int      `validate:"gte=64,lte=1048576"`
	Verbose  bool
	Files    []string `validate:"min=1,dive,required"`
}

// filterOptions are the settings of the filter command.
type filterOptions struct {
	Rate    float64 `validate:"gte=10,lte=768000"`
	FFTSize int     `validate:"gte=256,lte=1048576"`
}

func parseOptions(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("loudness", flag.ContinueOnError)
	fs.SetOutput(stderr)

	truePeak := fs.Bool("true-peak", true, "measure 4x oversampled true peak")
	weights := fs.String("weights", "", "comma separated channel weights (default ITU-R BS.1770: 1,1,1,0,1.41,1.41)")
	jsonOut := fs.Bool("json", false, "write JSON instead of a table")
	jobs := fs.Int("jobs", 4, "number of files analyzed concurrently (1..64)")
	block := fs.Int("block", core.DefaultProcessorConfig().BlockSize, "frames decoded per chunk")
	verbose := fs.Bool("v", false, "log debug messages")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: loudness [flags] file ...\n")
		fmt.Fprintf(stderr, "       loudness filter [flags]\n\n")
		fmt.Fprintf(stderr, "Measures loudness and peak levels of WAV, AIFF, MP3 and Ogg Vorbis files.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return options{}, errHelp
		}

		return options{}, err
	}

	opts := options{
		TruePeak: *truePeak,
		Weights:  loudness.ITUWeights(),
		JSON:     *jsonOut,
		Jobs:     *jobs,
		Block:    *block,
		Verbose:  *verbose,
		Files:    fs.Args(),
	}

	if *weights != "" {
		w, err := parseWeights(*weights)
		if err != nil {
			return options{}, err
		}

		opts.Weights = w
	}

	if err := validate.Struct(opts); err != nil {
		return options{}, describe(err)
	}

	return opts, nil
}

func parseFilterOptions(args []string, stderr io.Writer) (filterOptions, error) {
	fs := flag.NewFlagSet("loudness filter", flag.ContinueOnError)
	fs.SetOutput(stderr)

	rate := fs.Float64("rate", 48000, "sample rate in Hz")
	fftSize := fs.Int("fft", 65536, "FFT size for the measured response (power of two)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return filterOptions{}, errHelp
		}

		return filterOptions{}, err
	}

	opts := filterOptions{Rate: *rate, FFTSize: *fftSize}
	if err := validate.Struct(opts); err != nil {
		return filterOptions{}, describe(err)
	}

	return opts, nil
}

func parseWeights(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	w := make([]float64, 0, len(fields))

	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q: %w", f, err)
		}

		w = append(w, v)
	}

	return w, nil
}

// describe turns validator errors into one readable message.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())

		switch fe.Tag() {
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s: need at least %s", field, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s: at most %s allowed", field, fe.Param()))
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s: must not be empty", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: %v violates %s=%s", field, fe.Value(), fe.Tag(), fe.Param()))
		}
	}

	return errors.New(strings.Join(msgs, "; "))
}
