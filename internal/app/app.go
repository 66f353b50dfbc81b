// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"runtime"

	"mindex-core/index"
	"mindex-core/sequence"
	"mindex/internal/cli"
	"mindex/internal/output"
	"mindex/internal/progress"
	"mindex/internal/version"
)

// RunContext parses argv, builds the index, and writes the report.
// Exit codes follow the usual convention: 0 ok, 2 usage/config, 3 runtime.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("mindex")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		fs.SetOutput(outw)
		fs.Usage()
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(outw)
		fs.Usage()
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "mindex version %s\n", version.Version)
		return 0
	}

	if opts.Threads > 0 {
		runtime.GOMAXPROCS(opts.Threads)
	}

	sources := make([]sequence.Source, 0, len(opts.SeqFiles))
	ranges := make([]index.Range, 0, len(opts.SeqFiles))
	total := 0
	for _, fa := range opts.SeqFiles {
		src, err := sequence.FromFasta(fa)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		r := index.Range{Start: opts.Offset, End: src.NumReads()}
		if r.Start > src.NumReads() {
			r.Start = src.NumReads()
		}
		if opts.Limit > 0 && r.Start+opts.Limit < r.End {
			r.End = r.Start + opts.Limit
		}
		total += r.End - r.Start
		sources = append(sources, src)
		ranges = append(ranges, r)
	}

	var track *progress.Tracker
	if opts.Progress {
		track = progress.New(stderr, int64(total))
		for i := range sources {
			sources[i] = track.Source(sources[i])
		}
	}

	idx, err := index.New(sources, opts.KmerSize, opts.WindowSize, ranges)
	if track != nil {
		track.Done()
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		if errors.Is(err, index.ErrInvalidKmerSize) ||
			errors.Is(err, index.ErrInvalidWindowSize) ||
			errors.Is(err, index.ErrInvalidRange) {
			return 2
		}
		return 3
	}

	if opts.Dump {
		err = output.WriteDump(outw, idx, opts.KmerSize, opts.Header)
	} else {
		s := output.Summarize(idx, opts.KmerSize, opts.WindowSize)
		switch opts.Output {
		case "json":
			err = output.WriteJSON(outw, s)
		case "tsv":
			err = output.WriteTSV(outw, s, opts.Header)
		default:
			err = output.WriteText(outw, s)
		}
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	if err := outw.Flush(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return 0
}

// Run uses a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
