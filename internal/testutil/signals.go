package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-loudness/dsp/core"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Tone generates a phase-continuous sine that steps through a sequence of
// levels. levels holds dBFS values, seconds the matching durations.
func Tone(freqHz, sampleRate float64, levels, seconds []float64) []float64 {
	var out []float64
	step := 2 * math.Pi * freqHz / sampleRate
	for i, db := range levels {
		amp := core.DBToLinear(db)
		n := int(seconds[i] * sampleRate)
		for range n {
			out = append(out, amp*math.Sin(step*float64(len(out))))
		}
	}
	return out
}

// ToInt16 quantizes full-scale samples to 16-bit PCM, rounding to nearest
// and clipping.
func ToInt16(x []float64) []int16 {
	out := make([]int16, len(x))
	for i, v := range x {
		q := math.Round(v * 32768)
		out[i] = int16(max(-32768, min(32767, q)))
	}
	return out
}

// Interleave merges equally long channels into one frame-major slice.
func Interleave[T any](channels ...[]T) []T {
	if len(channels) == 0 {
		return nil
	}
	frames := len(channels[0])
	out := make([]T, frames*len(channels))
	for ch, data := range channels {
		for i := range frames {
			out[i*len(channels)+ch] = data[i]
		}
	}
	return out
}
