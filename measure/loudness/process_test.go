package loudness

import (
	"encoding/binary"
	"errors"
	"math"
	"reflect"
	"slices"
	"testing"

	"github.com/cwbudde/algo-loudness/dsp/pcm"
	"github.com/cwbudde/algo-loudness/internal/testutil"
)

const testChannels = 3

// testSignal returns three channels of 16-bit-representable audio, so that
// every sample format carries exactly the same values.
func testSignal(frames int) [][]int16 {
	return [][]int16{
		testutil.ToInt16(testutil.DeterministicSine(997, 48000, 0.5, frames)),
		testutil.ToInt16(testutil.DeterministicNoise(11, 0.25, frames)),
		testutil.ToInt16(testutil.DeterministicSine(60, 48000, 0.9, frames)),
	}
}

func encode(format pcm.Format, src []int16) any {
	switch format {
	case pcm.Int16:
		return slices.Clone(src)
	case pcm.Int32:
		out := make([]int32, len(src))
		for i, v := range src {
			out[i] = int32(v) << 16
		}

		return out
	case pcm.Float32:
		out := make([]float32, len(src))
		for i, v := range src {
			out[i] = float32(v) / 32768
		}

		return out
	default:
		out := make([]float64, len(src))
		for i, v := range src {
			out[i] = float64(v) / 32768
		}

		return out
	}
}

func encodeChannels(format pcm.Format, chans [][]int16) any {
	switch format {
	case pcm.Int16:
		return encodeEach[int16](format, chans)
	case pcm.Int32:
		return encodeEach[int32](format, chans)
	case pcm.Float32:
		return encodeEach[float32](format, chans)
	default:
		return encodeEach[float64](format, chans)
	}
}

func encodeEach[T pcm.Sample](format pcm.Format, chans [][]int16) [][]T {
	out := make([][]T, len(chans))
	for i, c := range chans {
		out[i] = encode(format, c).([]T)
	}

	return out
}

func encodeBytes(format pcm.Format, src []int16) []byte {
	out := make([]byte, 0, len(src)*format.BytesPerSample())

	switch v := encode(format, src).(type) {
	case []int16:
		for _, s := range v {
			out = binary.LittleEndian.AppendUint16(out, uint16(s))
		}
	case []int32:
		for _, s := range v {
			out = binary.LittleEndian.AppendUint32(out, uint32(s))
		}
	case []float32:
		for _, s := range v {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(s))
		}
	case []float64:
		for _, s := range v {
			out = binary.LittleEndian.AppendUint64(out, math.Float64bits(s))
		}
	}

	return out
}

func sliceChannels(chans [][]int16, from, to int) [][]int16 {
	out := make([][]int16, len(chans))
	for i, c := range chans {
		out[i] = c[from:to]
	}

	return out
}

// arrange lays out a chunk of channels for a flat layout.
func arrange(layout pcm.Layout, chans [][]int16) []int16 {
	if layout == pcm.Interleaved {
		return testutil.Interleave(chans...)
	}

	return slices.Concat(chans...)
}

type feeder func(a *Analyzer, chans [][]int16) error

func typedFeeder(format pcm.Format, layout pcm.Layout) feeder {
	return func(a *Analyzer, chans [][]int16) error {
		frames := len(chans[0])
		if layout == pcm.PlanarChannels {
			return a.Process(encodeChannels(format, chans), frames, format, layout)
		}

		return a.Process(encode(format, arrange(layout, chans)), frames, format, layout)
	}
}

func byteFeeder(format pcm.Format, layout pcm.Layout) feeder {
	return func(a *Analyzer, chans [][]int16) error {
		frames := len(chans[0])
		if layout == pcm.PlanarChannels {
			raw := make([][]byte, len(chans))
			for i, c := range chans {
				raw[i] = encodeBytes(format, c)
			}

			return a.ProcessChannelBytes(raw, frames, format)
		}

		return a.ProcessBytes(encodeBytes(format, arrange(layout, chans)), frames, format, layout)
	}
}

func run(t *testing.T, feed feeder, chans [][]int16, chunk int) *Analyzer {
	t.Helper()

	a := mustAnalyzer(t, WithChannels(testChannels), WithTruePeak(true))

	frames := len(chans[0])
	for from := 0; from < frames; from += chunk {
		to := min(from+chunk, frames)
		if err := feed(a, sliceChannels(chans, from, to)); err != nil {
			t.Fatalf("feed: %v", err)
		}
	}

	return a
}

type result struct {
	Stats     Stats
	Momentary []float64
	ShortTerm []float64
	Peaks     []float64
	PLR       []float64
	RMS       []float64
}

func resultOf(a *Analyzer) result {
	return result{
		Stats:     a.Snapshot(),
		Momentary: a.MomentaryPowers(),
		ShortTerm: a.ShortTermLoudness(),
		Peaks:     a.ShortTermPeaks(),
		PLR:       a.ShortTermPLR(),
		RMS:       a.RMSHistory(),
	}
}

var (
	allFormats = []pcm.Format{pcm.Int16, pcm.Int32, pcm.Float32, pcm.Float64}
	allLayouts = []pcm.Layout{pcm.Interleaved, pcm.Planar, pcm.PlanarChannels}
)

func TestAllFormatsAndLayoutsAgree(t *testing.T) {
	chans := testSignal(48000 * 4)
	want := resultOf(run(t, typedFeeder(pcm.Float64, pcm.PlanarChannels), chans, 48000*4))

	if !want.Stats.IntegratedOK || !want.Stats.RangeOK {
		t.Fatalf("reference run incomplete: %+v", want.Stats)
	}

	for _, format := range allFormats {
		for _, layout := range allLayouts {
			t.Run(format.String()+"/"+layout.String(), func(t *testing.T) {
				got := resultOf(run(t, typedFeeder(format, layout), chans, 3001))
				if !reflect.DeepEqual(got, want) {
					t.Errorf("result differs from reference:\ngot  %+v\nwant %+v", got.Stats, want.Stats)
				}
			})

			t.Run(format.String()+"/"+layout.String()+"/bytes", func(t *testing.T) {
				got := resultOf(run(t, byteFeeder(format, layout), chans, 4800))
				if !reflect.DeepEqual(got, want) {
					t.Errorf("result differs from reference:\ngot  %+v\nwant %+v", got.Stats, want.Stats)
				}
			})
		}
	}
}

func TestChunkSizeInvariance(t *testing.T) {
	chans := testSignal(48000 * 3)
	feed := typedFeeder(pcm.Int16, pcm.Interleaved)
	want := resultOf(run(t, feed, chans, len(chans[0])))

	for _, chunk := range []int{1, 7, 4799, 4800, 4801, 65536} {
		got := resultOf(run(t, feed, chans, chunk))
		if !reflect.DeepEqual(got, want) {
			t.Errorf("chunk %d: result differs", chunk)
		}
	}
}

func TestZeroFrames(t *testing.T) {
	a := mustAnalyzer(t)

	if err := a.Process([]float32{}, 0, pcm.Float32, pcm.Interleaved); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if err := a.ProcessBytes(nil, 0, pcm.Int16, pcm.Planar); err != nil {
		t.Fatalf("ProcessBytes: %v", err)
	}

	if a.SamplesProcessed() != 0 {
		t.Errorf("SamplesProcessed = %d, want 0", a.SamplesProcessed())
	}
}

func TestUnmeasuredChannelsAreSkipped(t *testing.T) {
	// Four interleaved channels, weights for two: channels 2 and 3 must not
	// influence anything.
	sig := testutil.DeterministicSine(1000, 48000, 0.5, 48000)
	loud := testutil.DC(0.99, len(sig))

	a := mustAnalyzer(t, WithChannels(4), WithChannelWeights([]float64{1, 1}), WithTruePeak(true))
	if err := a.Process(testutil.Interleave(sig, sig, loud, loud), len(sig), pcm.Float64, pcm.Interleaved); err != nil {
		t.Fatal(err)
	}

	b := mustAnalyzer(t, WithChannels(2), WithChannelWeights([]float64{1, 1}), WithTruePeak(true))
	if err := b.Process(testutil.Interleave(sig, sig), len(sig), pcm.Float64, pcm.Interleaved); err != nil {
		t.Fatal(err)
	}

	ra, rb := resultOf(a), resultOf(b)
	ra.Stats.Channels, rb.Stats.Channels = 0, 0

	if !reflect.DeepEqual(ra, rb) {
		t.Errorf("unmeasured channels changed the result")
	}
}

func TestProcessErrors(t *testing.T) {
	good := make([]int16, 2*100)

	tests := []struct {
		name string
		call func(a *Analyzer) error
		want error
	}{
		{"negative frames", func(a *Analyzer) error {
			return a.Process(good, -1, pcm.Int16, pcm.Interleaved)
		}, ErrInvalidFrames},
		{"unknown format", func(a *Analyzer) error {
			return a.Process(good, 100, pcm.Format(17), pcm.Interleaved)
		}, pcm.ErrUnsupportedFormat},
		{"unknown layout", func(a *Analyzer) error {
			return a.Process(good, 100, pcm.Int16, pcm.Layout(-1))
		}, pcm.ErrUnsupportedLayout},
		{"type mismatch", func(a *Analyzer) error {
			return a.Process(good, 100, pcm.Float32, pcm.Interleaved)
		}, pcm.ErrBufferType},
		{"flat buffer for planar channels", func(a *Analyzer) error {
			return a.Process(good, 100, pcm.Int16, pcm.PlanarChannels)
		}, pcm.ErrBufferType},
		{"nil buffer", func(a *Analyzer) error {
			return a.Process(nil, 0, pcm.Int16, pcm.Planar)
		}, pcm.ErrBufferType},
		{"short interleaved", func(a *Analyzer) error {
			return a.Process(good, 101, pcm.Int16, pcm.Interleaved)
		}, pcm.ErrShortBuffer},
		{"short planar", func(a *Analyzer) error {
			return a.Process(good[:199], 100, pcm.Int16, pcm.Planar)
		}, pcm.ErrShortBuffer},
		{"too few channel buffers", func(a *Analyzer) error {
			return a.Process([][]int16{good}, 100, pcm.Int16, pcm.PlanarChannels)
		}, pcm.ErrShortBuffer},
		{"short channel buffer", func(a *Analyzer) error {
			return a.Process([][]int16{good, good[:99]}, 100, pcm.Int16, pcm.PlanarChannels)
		}, pcm.ErrShortBuffer},
		{"bytes planar channels", func(a *Analyzer) error {
			return a.ProcessBytes(make([]byte, 400), 100, pcm.Int16, pcm.PlanarChannels)
		}, pcm.ErrUnsupportedLayout},
		{"bytes short", func(a *Analyzer) error {
			return a.ProcessBytes(make([]byte, 399), 100, pcm.Int16, pcm.Interleaved)
		}, pcm.ErrShortBuffer},
		{"bytes unknown format", func(a *Analyzer) error {
			return a.ProcessBytes(make([]byte, 400), 100, pcm.Format(4), pcm.Interleaved)
		}, pcm.ErrUnsupportedFormat},
		{"channel bytes too few", func(a *Analyzer) error {
			return a.ProcessChannelBytes([][]byte{make([]byte, 800)}, 100, pcm.Float32)
		}, pcm.ErrShortBuffer},
		{"channel bytes short", func(a *Analyzer) error {
			return a.ProcessChannelBytes([][]byte{make([]byte, 400), make([]byte, 399)}, 100, pcm.Float32)
		}, pcm.ErrShortBuffer},
		{"channel bytes negative frames", func(a *Analyzer) error {
			return a.ProcessChannelBytes(nil, -5, pcm.Float32)
		}, ErrInvalidFrames},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustAnalyzer(t, WithTruePeak(true))
			before := resultOf(a)

			err := tt.call(a)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}

			if !reflect.DeepEqual(resultOf(a), before) {
				t.Error("analyzer changed by a failed call")
			}

			if a.SamplesProcessed() != 0 {
				t.Errorf("SamplesProcessed = %d after error", a.SamplesProcessed())
			}
		})
	}
}
