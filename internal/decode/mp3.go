package decode

import (
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/cwbudde/algo-loudness/dsp/pcm"
)

// go-mp3 always produces interleaved stereo, little-endian 16-bit.
const (
	mp3Channels      = 2
	mp3BytesPerFrame = mp3Channels * 2
)

type mp3Source struct {
	r          io.Reader
	closer     io.Closer
	sampleRate int
	buf        []byte
}

func newMP3(r io.Reader, blockSize int) (Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}

	return newMP3Source(dec, closerOf(r), dec.SampleRate(), blockSize), nil
}

func newMP3Source(r io.Reader, closer io.Closer, sampleRate, blockSize int) *mp3Source {
	return &mp3Source{
		r:          r,
		closer:     closer,
		sampleRate: sampleRate,
		buf:        make([]byte, blockSize*mp3BytesPerFrame),
	}
}

func (s *mp3Source) SampleRate() int { return s.sampleRate }
func (s *mp3Source) Channels() int   { return mp3Channels }

func (s *mp3Source) Close() error {
	if s.closer == nil {
		return nil
	}

	return s.closer.Close()
}

func (s *mp3Source) Read(f Feeder) (int, error) {
	n, err := io.ReadFull(s.r, s.buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return 0, fmt.Errorf("decode: mp3: %w", err)
	}

	// A trailing partial frame is dropped.
	frames := n / mp3BytesPerFrame
	if frames == 0 {
		return 0, io.EOF
	}

	if err := f.ProcessBytes(s.buf[:frames*mp3BytesPerFrame], frames, pcm.Int16, pcm.Interleaved); err != nil {
		return 0, err
	}

	return frames, nil
}
