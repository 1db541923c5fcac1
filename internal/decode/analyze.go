package decode

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-loudness/measure/loudness"
)

// Analyze drains src into a new analyzer configured for the source's rate
// and channel count, followed by opts. The context is checked between
// chunks.
func Analyze(ctx context.Context, src Source, opts ...loudness.Option) (*loudness.Analyzer, error) {
	all := append([]loudness.Option{
		loudness.WithSampleRate(float64(src.SampleRate())),
		loudness.WithChannels(src.Channels()),
	}, opts...)

	a, err := loudness.NewAnalyzer(all...)
	if err != nil {
		return nil, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		_, err := src.Read(a)
		if errors.Is(err, io.EOF) {
			return a, nil
		}

		if err != nil {
			return nil, fmt.Errorf("decode: after %d frames: %w", a.SamplesProcessed(), err)
		}
	}
}

// AnalyzeFile opens path, analyzes it and closes it.
func AnalyzeFile(ctx context.Context, path string, opts ...loudness.Option) (*loudness.Analyzer, error) {
	src, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return Analyze(ctx, src, opts...)
}
