// Command loudness measures integrated loudness, loudness range, RMS and
// peak levels of audio files (ITU-R BS.1770-4, EBU R 128).
//
// Usage:
//
//	loudness [flags] file ...
//	loudness filter [flags]
//
// With more than one file an album row is added, computed by gating the
// blocks of all files together.
//
// Examples:
//
//	loudness track.wav
//	loudness -json -jobs 8 album/*.wav
//	loudness -weights 1,1,1,0,1.41,1.41 surround.wav
//	loudness filter -rate 44100
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 && args[0] == "filter" {
		opts, err := parseFilterOptions(args[1:], stderr)
		if err != nil {
			return usageError(err, stderr)
		}

		if err := printFilter(stdout, opts); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}

		return 0
	}

	opts, err := parseOptions(args, stderr)
	if err != nil {
		return usageError(err, stderr)
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	results := analyzeFiles(ctx, logger, opts)

	if err := writeReport(stdout, opts, results); err != nil {
		logger.Error("failed to write report", "error", err)
		return 1
	}

	for _, r := range results {
		if r.err != nil {
			return 1
		}
	}

	return 0
}

func usageError(err error, stderr io.Writer) int {
	if err == errHelp {
		return 0
	}

	fmt.Fprintf(stderr, "error: %v\n", err)

	return 2
}
