package decode

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/cwbudde/algo-loudness/dsp/pcm"
)

// floatReader is the part of oggvorbis.Reader used here. Read returns the
// number of interleaved values written.
type floatReader interface {
	Read(p []float32) (int, error)
}

type vorbisSource struct {
	r          floatReader
	closer     io.Closer
	sampleRate int
	channels   int

	buf   []float32
	carry int // values of an incomplete frame kept at the start of buf
}

func newVorbis(r io.Reader, blockSize int) (Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	if dec.Channels() <= 0 || dec.SampleRate() <= 0 {
		return nil, ErrInvalidFile
	}

	return newVorbisSource(dec, closerOf(r), dec.SampleRate(), dec.Channels(), blockSize), nil
}

func newVorbisSource(r floatReader, closer io.Closer, sampleRate, channels, blockSize int) *vorbisSource {
	return &vorbisSource{
		r:          r,
		closer:     closer,
		sampleRate: sampleRate,
		channels:   channels,
		buf:        make([]float32, blockSize*channels),
	}
}

func (s *vorbisSource) SampleRate() int { return s.sampleRate }
func (s *vorbisSource) Channels() int   { return s.channels }

func (s *vorbisSource) Close() error {
	if s.closer == nil {
		return nil
	}

	return s.closer.Close()
}

func (s *vorbisSource) Read(f Feeder) (int, error) {
	for {
		n, err := s.r.Read(s.buf[s.carry:])
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("decode: vorbis: %w", err)
		}

		total := s.carry + n
		frames := total / s.channels

		if frames == 0 {
			s.carry = total
			if err != nil || n == 0 {
				return 0, io.EOF
			}

			continue
		}

		used := frames * s.channels
		if perr := f.Process(s.buf[:used], frames, pcm.Float32, pcm.Interleaved); perr != nil {
			return 0, perr
		}

		s.carry = copy(s.buf, s.buf[used:total])

		return frames, nil
	}
}
