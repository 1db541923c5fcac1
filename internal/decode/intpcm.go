package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-loudness/dsp/pcm"
)

// intReader is the part of the go-audio WAV and AIFF decoders used here.
type intReader interface {
	PCMBuffer(buf *audio.IntBuffer) (int, error)
}

// intSource feeds integer PCM from a go-audio decoder. 16-bit audio is fed
// as int16, 24 and 32-bit audio as int32 aligned to the top bits.
type intSource struct {
	dec        intReader
	closer     io.Closer
	sampleRate int
	channels   int
	bitDepth   int

	buf *audio.IntBuffer
	i16 []int16
	i32 []int32
}

func newIntSource(dec intReader, closer io.Closer, format *audio.Format, bitDepth, blockSize int) (*intSource, error) {
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, ErrInvalidFile
	}

	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	n := blockSize * format.NumChannels

	s := &intSource{
		dec:        dec,
		closer:     closer,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   bitDepth,
		buf: &audio.IntBuffer{
			Format:         format,
			Data:           make([]int, n),
			SourceBitDepth: bitDepth,
		},
	}

	if bitDepth == 16 {
		s.i16 = make([]int16, n)
	} else {
		s.i32 = make([]int32, n)
	}

	return s, nil
}

// WAV format tags.
const (
	wavFormatPCM        = 0x0001
	wavFormatExtensible = 0xFFFE
)

// wavEncoding returns the format tag of the fmt chunk. For
// WAVE_FORMAT_EXTENSIBLE the tag is taken from the first two bytes of the
// subformat GUID. r is rewound to the start.
func wavEncoding(r io.ReadSeeker) (tag uint16, err error) {
	defer func() {
		if _, serr := r.Seek(0, io.SeekStart); serr != nil && err == nil {
			err = serr
		}
	}()

	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil || p.Format != riff.WavFormatID {
		return 0, fmt.Errorf("%w: not a WAV file", ErrInvalidFile)
	}

	for {
		ch, err := p.NextChunk()
		if err != nil {
			return 0, fmt.Errorf("%w: no fmt chunk", ErrInvalidFile)
		}

		if ch.ID != riff.FmtID {
			ch.Drain()
			continue
		}

		var hdr struct {
			Tag, Channels    uint16
			SampleRate, Rate uint32
			BlockAlign, Bits uint16
		}
		if err := ch.ReadLE(&hdr); err != nil {
			return 0, fmt.Errorf("%w: short fmt chunk", ErrInvalidFile)
		}

		if hdr.Tag != wavFormatExtensible {
			return hdr.Tag, nil
		}

		var ext struct {
			Size, ValidBits uint16
			ChannelMask     uint32
			SubFormat       uint16
		}
		if err := ch.ReadLE(&ext); err != nil {
			return 0, fmt.Errorf("%w: short extensible fmt chunk", ErrInvalidFile)
		}

		return ext.SubFormat, nil
	}
}

func newWAV(r io.ReadSeeker, blockSize int) (Source, error) {
	tag, err := wavEncoding(r)
	if err != nil {
		return nil, err
	}

	if tag != wavFormatPCM {
		return nil, fmt.Errorf("%w: WAV format tag %d", ErrUnsupportedEncoding, tag)
	}

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not a WAV file", ErrInvalidFile)
	}

	dec.ReadInfo()

	return newIntSource(dec, closerOf(r), dec.Format(), int(dec.BitDepth), blockSize)
}

func newAIFF(r io.ReadSeeker, blockSize int) (Source, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: not an AIFF file", ErrInvalidFile)
	}

	dec.ReadInfo()

	return newIntSource(dec, closerOf(r), dec.Format(), int(dec.BitDepth), blockSize)
}

func (s *intSource) SampleRate() int { return s.sampleRate }
func (s *intSource) Channels() int   { return s.channels }

func (s *intSource) Close() error {
	if s.closer == nil {
		return nil
	}

	return s.closer.Close()
}

func (s *intSource) Read(f Feeder) (int, error) {
	s.buf.Data = s.buf.Data[:cap(s.buf.Data)]

	n, err := s.dec.PCMBuffer(s.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("decode: %w", err)
	}

	frames := n / s.channels
	if frames == 0 {
		return 0, io.EOF
	}

	data := s.buf.Data[:frames*s.channels]

	switch s.bitDepth {
	case 16:
		out := s.i16[:len(data)]
		for i, v := range data {
			out[i] = int16(v)
		}

		err = f.Process(out, frames, pcm.Int16, pcm.Interleaved)
	case 24:
		out := s.i32[:len(data)]
		for i, v := range data {
			out[i] = int32(v) << 8
		}

		err = f.Process(out, frames, pcm.Int32, pcm.Interleaved)
	default:
		out := s.i32[:len(data)]
		for i, v := range data {
			out[i] = int32(v)
		}

		err = f.Process(out, frames, pcm.Int32, pcm.Interleaved)
	}

	if err != nil {
		return 0, err
	}

	return frames, nil
}

func closerOf(r any) io.Closer {
	c, _ := r.(io.Closer)
	return c
}
