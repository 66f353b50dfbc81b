// internal/output/summary.go
package output

import (
	"sort"

	"github.com/shenwei356/kmers"

	"mindex-core/index"
)

// Summary is what the CLI reports about a built index.
type Summary struct {
	Reads                   int    `json:"reads"`
	SketchElements          int    `json:"sketch_elements"`
	DistinctRepresentations int    `json:"distinct_representations"`
	KmerSize                int    `json:"kmer_size"`
	WindowSize              int    `json:"window_size"`
	MinRepresentation       uint64 `json:"min_representation"`
	MaxRepresentation       uint64 `json:"max_representation"`
	MinKmer                 string `json:"min_kmer"` // decoded, "" when empty
	MaxKmer                 string `json:"max_kmer"`
	ReachedEndOfInput       bool   `json:"reached_end_of_input"`
}

// Summarize derives the report from an index and its build parameters.
func Summarize(idx index.Index, k, w int) Summary {
	s := Summary{
		Reads:             idx.NumberOfReads(),
		SketchElements:    len(idx.PositionsInReads()),
		KmerSize:          k,
		WindowSize:        w,
		MinRepresentation: idx.MinimumRepresentation(),
		MaxRepresentation: idx.MaximumRepresentation(),
		ReachedEndOfInput: idx.ReachedEndOfInput(),
	}
	s.DistinctRepresentations = len(distinctRepresentations(idx))
	if s.SketchElements > 0 {
		s.MinKmer = string(kmers.MustDecode(s.MinRepresentation, k))
		s.MaxKmer = string(kmers.MustDecode(s.MaxRepresentation, k))
	}
	return s
}

// distinctRepresentations collects the index's representations, ascending.
type blockRef struct {
	rep   uint64
	block index.ArrayBlock
}

func distinctRepresentations(idx index.Index) []blockRef {
	seen := make(map[uint64]index.ArrayBlock)
	for _, entries := range idx.Lookup() {
		for _, ent := range entries {
			seen[ent.Representation] = ent.AllBlock
		}
	}
	out := make([]blockRef, 0, len(seen))
	for rep, blk := range seen {
		out = append(out, blockRef{rep: rep, block: blk})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].rep < out[j].rep })
	return out
}
