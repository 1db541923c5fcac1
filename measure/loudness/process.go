package loudness

import (
	"fmt"

	"github.com/cwbudde/algo-loudness/dsp/core"
	"github.com/cwbudde/algo-loudness/dsp/pcm"
)

// scratch holds decode buffers reused by the byte overloads.
type scratch struct {
	i16 []int16
	i32 []int32
	f32 []float32
	f64 []float64
}

// Process feeds frames frames (samples per channel) of audio.
//
// For [pcm.Interleaved] and [pcm.Planar] buf must be a []int16, []int32,
// []float32 or []float64 matching format and holding at least
// frames*Channels() samples; planar channel blocks are frames long. For
// [pcm.PlanarChannels] buf must be a [][]T with at least MeasuredChannels()
// slices of at least frames samples each.
//
// An error leaves the analyzer unchanged.
func (a *Analyzer) Process(buf any, frames int, format pcm.Format, layout pcm.Layout) error {
	if err := a.check(frames, format, layout); err != nil {
		return err
	}

	if layout == pcm.PlanarChannels {
		switch format {
		case pcm.Int16:
			return processChannels[int16](a, buf, frames, format)
		case pcm.Int32:
			return processChannels[int32](a, buf, frames, format)
		case pcm.Float32:
			return processChannels[float32](a, buf, frames, format)
		default:
			return processChannels[float64](a, buf, frames, format)
		}
	}

	switch format {
	case pcm.Int16:
		return processFlat[int16](a, buf, frames, format, layout)
	case pcm.Int32:
		return processFlat[int32](a, buf, frames, format, layout)
	case pcm.Float32:
		return processFlat[float32](a, buf, frames, format, layout)
	default:
		return processFlat[float64](a, buf, frames, format, layout)
	}
}

// ProcessBytes feeds little-endian encoded audio in interleaved or planar
// layout. Use ProcessChannelBytes for one buffer per channel.
func (a *Analyzer) ProcessBytes(data []byte, frames int, format pcm.Format, layout pcm.Layout) error {
	if err := a.check(frames, format, layout); err != nil {
		return err
	}

	if layout == pcm.PlanarChannels {
		return fmt.Errorf("%w: %s requires ProcessChannelBytes", pcm.ErrUnsupportedLayout, layout)
	}

	n := pcm.Required(layout, frames, a.channels)
	if need := n * format.BytesPerSample(); len(data) < need {
		return fmt.Errorf("%w: %d bytes, need %d", pcm.ErrShortBuffer, len(data), need)
	}

	scale := format.Scale()

	switch format {
	case pcm.Int16:
		feedFlat(a, decodeFlat(&a.scratch.i16, n, data, pcm.DecodeInt16), frames, layout, scale)
	case pcm.Int32:
		feedFlat(a, decodeFlat(&a.scratch.i32, n, data, pcm.DecodeInt32), frames, layout, scale)
	case pcm.Float32:
		feedFlat(a, decodeFlat(&a.scratch.f32, n, data, pcm.DecodeFloat32), frames, layout, scale)
	default:
		feedFlat(a, decodeFlat(&a.scratch.f64, n, data, pcm.DecodeFloat64), frames, layout, scale)
	}

	return nil
}

// ProcessChannelBytes feeds little-endian encoded audio stored as one byte
// buffer per channel.
func (a *Analyzer) ProcessChannelBytes(channels [][]byte, frames int, format pcm.Format) error {
	if err := a.check(frames, format, pcm.PlanarChannels); err != nil {
		return err
	}

	measured := len(a.state)
	if len(channels) < measured {
		return fmt.Errorf("%w: %d channel buffers, need %d", pcm.ErrShortBuffer, len(channels), measured)
	}

	need := frames * format.BytesPerSample()
	for ch := range measured {
		if len(channels[ch]) < need {
			return fmt.Errorf("%w: channel %d has %d bytes, need %d",
				pcm.ErrShortBuffer, ch, len(channels[ch]), need)
		}
	}

	channels = channels[:measured]
	scale := format.Scale()

	// Decoded channels are packed back to back and fed as planar.
	switch format {
	case pcm.Int16:
		feedFlat(a, decodeChannels(&a.scratch.i16, frames, channels, pcm.DecodeInt16), frames, pcm.Planar, scale)
	case pcm.Int32:
		feedFlat(a, decodeChannels(&a.scratch.i32, frames, channels, pcm.DecodeInt32), frames, pcm.Planar, scale)
	case pcm.Float32:
		feedFlat(a, decodeChannels(&a.scratch.f32, frames, channels, pcm.DecodeFloat32), frames, pcm.Planar, scale)
	default:
		feedFlat(a, decodeChannels(&a.scratch.f64, frames, channels, pcm.DecodeFloat64), frames, pcm.Planar, scale)
	}

	return nil
}

func (a *Analyzer) check(frames int, format pcm.Format, layout pcm.Layout) error {
	if frames < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFrames, frames)
	}

	if !format.Valid() {
		return fmt.Errorf("%w: %d", pcm.ErrUnsupportedFormat, int(format))
	}

	if !layout.Valid() {
		return fmt.Errorf("%w: %d", pcm.ErrUnsupportedLayout, int(layout))
	}

	return nil
}

func processFlat[T pcm.Sample](a *Analyzer, buf any, frames int, format pcm.Format, layout pcm.Layout) error {
	samples, ok := buf.([]T)
	if !ok {
		return fmt.Errorf("%w: %s %s wants %T, got %T", pcm.ErrBufferType, format, layout, samples, buf)
	}

	if need := pcm.Required(layout, frames, a.channels); len(samples) < need {
		return fmt.Errorf("%w: %d samples, need %d", pcm.ErrShortBuffer, len(samples), need)
	}

	feedFlat(a, samples, frames, layout, format.Scale())

	return nil
}

func processChannels[T pcm.Sample](a *Analyzer, buf any, frames int, format pcm.Format) error {
	bufs, ok := buf.([][]T)
	if !ok {
		return fmt.Errorf("%w: %s %s wants %T, got %T", pcm.ErrBufferType, format, pcm.PlanarChannels, bufs, buf)
	}

	if len(bufs) < len(a.state) {
		return fmt.Errorf("%w: %d channel buffers, need %d", pcm.ErrShortBuffer, len(bufs), len(a.state))
	}

	for ch := range a.state {
		if len(bufs[ch]) < frames {
			return fmt.Errorf("%w: channel %d has %d samples, need %d", pcm.ErrShortBuffer, ch, len(bufs[ch]), frames)
		}
	}

	feedChannels(a, bufs, frames, format.Scale())

	return nil
}

// feedFlat runs the pipeline over an interleaved or planar buffer. Work is
// split at step boundaries; within a segment each channel is processed
// on its own, which leaves the result identical to frame-by-frame order.
func feedFlat[T pcm.Sample](a *Analyzer, buf []T, frames int, layout pcm.Layout, scale float64) {
	stride := 1
	if layout == pcm.Interleaved {
		stride = a.channels
	}

	truePeak := a.truePeakOn

	for done := 0; done < frames; {
		n := min(frames-done, a.stepSize-a.stepFill)

		for ch := range a.state {
			c := &a.state[ch]
			off := pcm.Offset(layout, done, ch, a.channels, frames)

			for i := range n {
				c.sample(pcm.Normalize(buf[off+i*stride], scale), truePeak)
			}
		}

		a.advance(n)
		done += n
	}
}

func feedChannels[T pcm.Sample](a *Analyzer, bufs [][]T, frames int, scale float64) {
	truePeak := a.truePeakOn

	for done := 0; done < frames; {
		n := min(frames-done, a.stepSize-a.stepFill)

		for ch := range a.state {
			c := &a.state[ch]
			for i := done; i < done+n; i++ {
				c.sample(pcm.ChannelAt(bufs, i, ch, scale), truePeak)
			}
		}

		a.advance(n)
		done += n
	}
}

// advance accounts for n frames fed to every channel.
func (a *Analyzer) advance(n int) {
	a.samples += int64(n)
	a.stepFill += n

	if a.stepFill == a.stepSize {
		a.completeStep()
	}
}

func decodeFlat[T pcm.Sample](dst *[]T, n int, src []byte, decode func([]T, []byte) int) []T {
	*dst = core.EnsureLen(*dst, n)
	decode(*dst, src)

	return *dst
}

func decodeChannels[T pcm.Sample](dst *[]T, frames int, channels [][]byte, decode func([]T, []byte) int) []T {
	*dst = core.EnsureLen(*dst, frames*len(channels))
	for ch, src := range channels {
		decode((*dst)[ch*frames:(ch+1)*frames], src)
	}

	return *dst
}
