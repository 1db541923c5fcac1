package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-loudness/measure/loudness"
)

type fileReport struct {
	File  string          `json:"file"`
	Error string          `json:"error,omitempty"`
	Stats *loudness.Stats `json:"stats,omitempty"`
}

type albumReport struct {
	Files      int     `json:"files"`
	Integrated float64 `json:"integrated_lufs"`
	SamplePeak float64 `json:"sample_peak_dbfs"`
	TruePeak   float64 `json:"true_peak_dbtp"`
	TruePeakOn bool    `json:"true_peak_enabled"`
}

type report struct {
	Files []fileReport `json:"files"`
	Album *albumReport `json:"album,omitempty"`
}

func buildReport(results []fileResult, truePeak bool) report {
	var (
		rep       report
		analyzers []*loudness.Analyzer
	)

	for _, r := range results {
		fr := fileReport{File: r.path}

		if r.err != nil {
			fr.Error = r.err.Error()
		} else {
			s := r.analyzer.Snapshot()
			fr.Stats = &s
			analyzers = append(analyzers, r.analyzer)
		}

		rep.Files = append(rep.Files, fr)
	}

	if len(results) < 2 || len(analyzers) == 0 {
		return rep
	}

	lufs, ok := loudness.IntegratedLoudnessOf(analyzers...)
	if !ok {
		return rep
	}

	album := &albumReport{
		Files:      len(analyzers),
		Integrated: lufs,
		SamplePeak: loudness.MinLevel,
		TruePeakOn: truePeak,
	}

	if truePeak {
		album.TruePeak = loudness.MinLevel
	}

	for _, a := range analyzers {
		album.SamplePeak = max(album.SamplePeak, a.DigitalPeakDBFS())
		if truePeak {
			album.TruePeak = max(album.TruePeak, a.TruePeakDBFS())
		}
	}

	rep.Album = album

	return rep
}

func writeReport(w io.Writer, opts options, results []fileResult) error {
	rep := buildReport(results, opts.TruePeak)

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(rep)
	}

	return writeTable(w, rep, opts.TruePeak)
}

func writeTable(w io.Writer, rep report, truePeak bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "File\tIntegrated [LUFS]\tLRA [LU]\tLRA P10\tLRA P95\tMax ST [LUFS]\tRMS P10 [dBFS]\tRMS P95\tRMS Max\tSample Peak [dBFS]")
	if truePeak {
		fmt.Fprintf(tw, "\tTrue Peak [dBTP]")
	}

	fmt.Fprintln(tw)

	for _, f := range rep.Files {
		if f.Stats == nil {
			fmt.Fprintf(tw, "%s\terror: %s\n", f.File, f.Error)
			continue
		}

		s := f.Stats

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%.2f",
			f.File,
			level(s.Integrated, s.IntegratedOK),
			rangeLevel(s.Range.RangeLU, s.RangeOK, s.Range.Stable),
			level(s.Range.P10, s.RangeOK),
			level(s.Range.P95, s.RangeOK),
			level(s.Range.Max, s.RangeOK),
			level(s.RMS.P10, s.RMSOK),
			level(s.RMS.P95, s.RMSOK),
			level(s.RMS.Max, s.RMSOK),
			s.DigitalPeak,
		)

		if truePeak {
			fmt.Fprintf(tw, "\t%.2f", s.TruePeak)
		}

		fmt.Fprintln(tw)
	}

	if a := rep.Album; a != nil {
		fmt.Fprintf(tw, "album (%d files)\t%.2f\t\t\t\t\t\t\t\t%.2f", a.Files, a.Integrated, a.SamplePeak)
		if truePeak {
			fmt.Fprintf(tw, "\t%.2f", a.TruePeak)
		}

		fmt.Fprintln(tw)
	}

	return tw.Flush()
}

func level(v float64, ok bool) string {
	if !ok {
		return "-"
	}

	return fmt.Sprintf("%.2f", v)
}

// rangeLevel marks loudness ranges measured on less than 60 s of audio.
func rangeLevel(v float64, ok, stable bool) string {
	if !ok {
		return "-"
	}

	if !stable {
		return fmt.Sprintf("%.2f*", v)
	}

	return fmt.Sprintf("%.2f", v)
}
