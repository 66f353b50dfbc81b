// internal/output/writers.go
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shenwei356/kmers"

	"mindex-core/index"
)

// WriteText prints the summary as aligned key/value lines.
func WriteText(w io.Writer, s Summary) error {
	rows := []struct {
		key string
		val any
	}{
		{"reads", s.Reads},
		{"sketch_elements", s.SketchElements},
		{"distinct_representations", s.DistinctRepresentations},
		{"kmer_size", s.KmerSize},
		{"window_size", s.WindowSize},
		{"min_kmer", orDash(s.MinKmer)},
		{"max_kmer", orDash(s.MaxKmer)},
		{"reached_end_of_input", s.ReachedEndOfInput},
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%-26s %v\n", r.key, r.val); err != nil {
			return err
		}
	}
	return nil
}

// WriteTSV prints the summary as a single TSV row.
func WriteTSV(w io.Writer, s Summary, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w,
			"reads\tsketch_elements\tdistinct_representations\tkmer_size\twindow_size\tmin_kmer\tmax_kmer\treached_end_of_input"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%s\t%s\t%t\n",
		s.Reads, s.SketchElements, s.DistinctRepresentations,
		s.KmerSize, s.WindowSize, orDash(s.MinKmer), orDash(s.MaxKmer),
		s.ReachedEndOfInput)
	return err
}

// WriteJSON writes the summary as indented JSON.
func WriteJSON(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteDump prints one TSV row per sketch element, grouped by
// representation ascending, ties by read then position — the index's own
// global order.
func WriteDump(w io.Writer, idx index.Index, k int, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, "kmer\trepresentation\tread\tread_id\tposition\tdirection"); err != nil {
			return err
		}
	}
	positions := idx.PositionsInReads()
	readIDs := idx.ReadIDs()
	directions := idx.DirectionsOfReads()
	names := idx.ReadIDToReadName()

	for _, ref := range distinctRepresentations(idx) {
		decoded := kmers.MustDecode(ref.rep, k)
		for o := uint64(0); o < uint64(ref.block.Count); o++ {
			p := ref.block.First + o
			rid := readIDs[p]
			if _, err := fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%d\t%s\n",
				decoded, ref.rep, names[rid], rid, positions[p], directions[p]); err != nil {
				return err
			}
		}
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
