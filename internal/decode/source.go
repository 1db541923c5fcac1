package decode

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/cwbudde/algo-loudness/dsp/core"
	"github.com/cwbudde/algo-loudness/dsp/pcm"
)

// Feeder consumes decoded audio. *loudness.Analyzer implements it.
type Feeder interface {
	Process(buf any, frames int, format pcm.Format, layout pcm.Layout) error
	ProcessBytes(data []byte, frames int, format pcm.Format, layout pcm.Layout) error
}

// Source is an open audio stream.
type Source interface {
	SampleRate() int
	Channels() int

	// Read decodes the next chunk and feeds it to f. It returns the number
	// of frames fed, and io.EOF once the stream is exhausted.
	Read(f Feeder) (frames int, err error)

	Close() error
}

// Kind identifies a container format.
type Kind int

// Supported containers.
const (
	Unknown Kind = iota
	WAV
	AIFF
	MP3
	Vorbis
)

// String returns the short name of the container.
func (k Kind) String() string {
	switch k {
	case WAV:
		return "wav"
	case AIFF:
		return "aiff"
	case MP3:
		return "mp3"
	case Vorbis:
		return "vorbis"
	default:
		return "unknown"
	}
}

// KindOf maps a file extension to a container format.
func KindOf(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return WAV
	case ".aif", ".aiff", ".aifc":
		return AIFF
	case ".mp3":
		return MP3
	case ".ogg", ".oga":
		return Vorbis
	default:
		return Unknown
	}
}

// Sniff identifies the container from the start of r's content.
func Sniff(r io.Reader) (Kind, error) {
	mime, err := mimetype.DetectReader(r)
	if err != nil {
		return Unknown, fmt.Errorf("decode: sniff: %w", err)
	}

	for m := mime; m != nil; m = m.Parent() {
		switch {
		case m.Is("audio/wav"):
			return WAV, nil
		case m.Is("audio/aiff"):
			return AIFF, nil
		case m.Is("audio/mpeg"):
			return MP3, nil
		case m.Is("audio/ogg"), m.Is("application/ogg"):
			return Vorbis, nil
		}
	}

	return Unknown, fmt.Errorf("%w: %s", ErrUnknownFormat, mime.String())
}

// Open opens path and returns a Source for it. The format is taken from
// the file extension, or sniffed from the content if the extension is not
// recognized. Read feeds chunks of the configured block size.
func Open(path string, opts ...core.ProcessorOption) (Source, error) {
	cfg := core.ApplyProcessorOptions(opts...)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	kind := KindOf(path)
	if kind == Unknown {
		kind, err = Sniff(f)
		if err == nil {
			_, err = f.Seek(0, io.SeekStart)
		}

		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	src, err := newSource(kind, f, cfg.BlockSize)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return src, nil
}

func newSource(kind Kind, f *os.File, blockSize int) (Source, error) {
	switch kind {
	case WAV:
		return newWAV(f, blockSize)
	case AIFF:
		return newAIFF(f, blockSize)
	case MP3:
		return newMP3(f, blockSize)
	case Vorbis:
		return newVorbis(f, blockSize)
	default:
		return nil, ErrUnknownFormat
	}
}
