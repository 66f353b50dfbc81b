// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"mindex-core/index"
	"mindex/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	SeqFiles []string

	// Sketch parameters
	KmerSize   int
	WindowSize int

	// Read-range selection, applied per source file
	Offset int
	Limit  int // 0 = all remaining reads

	// Performance
	Threads int

	// Output
	Output   string
	Dump     bool
	Progress bool
	Header   bool // true unless --no-header

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: in-memory (k,w)-minimizer index over genomic reads

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// Parse is the top-level call for CLI parsing.
func Parse() (Options, error) { return ParseArgs(flag.CommandLine, nil) }

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	var seq stringSlice
	fs.Var(&seq, "sequences", "FASTA file(s) (repeatable, plain or .gz, '-' for stdin) [*]")

	fs.IntVar(&opt.KmerSize, "kmer-size", 15, "k-mer length [15]")
	fs.IntVar(&opt.WindowSize, "window-size", 10, "minimizer window: consecutive k-mer starts per window [10]")

	fs.IntVar(&opt.Offset, "offset", 0, "skip the first N reads of each file [0]")
	fs.IntVar(&opt.Limit, "limit", 0, "index at most N reads per file after --offset (0 = all) [0]")

	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")

	fs.StringVar(&opt.Output, "output", "text", "output format: text | tsv | json [text]")
	fs.BoolVar(&opt.Dump, "dump", false, "dump one row per sketch element instead of the summary [false]")
	fs.BoolVar(&opt.Progress, "progress", false, "render a progress bar on stderr while sketching [false]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text/TSV [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.SeqFiles = seq
	opt.Header = !noHeader

	// Validation
	if len(opt.SeqFiles) == 0 {
		return opt, errors.New("at least one --sequences file is required")
	}
	if opt.KmerSize < 1 || opt.KmerSize > index.MaxKmerSize() {
		return opt, fmt.Errorf("--kmer-size must be in 1..%d", index.MaxKmerSize())
	}
	if opt.WindowSize < 1 {
		return opt, errors.New("--window-size must be ≥ 1")
	}
	if opt.Offset < 0 {
		return opt, errors.New("--offset must be ≥ 0")
	}
	if opt.Limit < 0 {
		return opt, errors.New("--limit must be ≥ 0")
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	if opt.Output != "text" && opt.Output != "tsv" && opt.Output != "json" {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	return opt, nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
