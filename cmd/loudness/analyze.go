package main

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cwbudde/algo-loudness/dsp/core"
	"github.com/cwbudde/algo-loudness/internal/decode"
	"github.com/cwbudde/algo-loudness/measure/loudness"
)

type fileResult struct {
	path     string
	analyzer *loudness.Analyzer
	err      error
}

// analyzeFiles measures every file on up to opts.Jobs goroutines, one
// analyzer per file. Results keep the order of opts.Files.
func analyzeFiles(ctx context.Context, logger *slog.Logger, opts options) []fileResult {
	results := make([]fileResult, len(opts.Files))
	sem := make(chan struct{}, opts.Jobs)

	var wg sync.WaitGroup

	for i, path := range opts.Files {
		results[i].path = path

		wg.Add(1)

		go func() {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				results[i].err = ctx.Err()
				return
			}
			defer func() { <-sem }()

			results[i].analyzer, results[i].err = analyzeFile(ctx, logger, path, opts)
		}()
	}

	wg.Wait()

	return results
}

func analyzeFile(ctx context.Context, logger *slog.Logger, path string, opts options) (*loudness.Analyzer, error) {
	start := time.Now()

	src, err := decode.Open(path, core.WithBlockSize(opts.Block))
	if err != nil {
		logger.Error("failed to open file", "path", path, "error", err)
		return nil, err
	}
	defer src.Close()

	logger.Debug("decoding", "path", path, "sample_rate", src.SampleRate(), "channels", src.Channels())

	a, err := decode.Analyze(ctx, src,
		loudness.WithChannelWeights(opts.Weights),
		loudness.WithTruePeak(opts.TruePeak),
	)
	if err != nil {
		logger.Error("failed to analyze file", "path", path, "error", err)
		return nil, err
	}

	if a.MeasuredChannels() < a.Channels() {
		logger.Warn("channels without weight are ignored",
			"path", path, "channels", a.Channels(), "measured", a.MeasuredChannels())
	}

	logger.Debug("analyzed", "path", path,
		"frames", a.SamplesProcessed(), "elapsed", time.Since(start).Round(time.Millisecond))

	return a, nil
}
