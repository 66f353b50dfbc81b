// core/sketch/sketch.go
package sketch

import (
	"sort"

	"mindex-core/kmer"
)

// Element is one selected minimizer occurrence: the canonical representation
// of a k-mer, where it starts in its read, which read owns it, and which
// strand won canonicalization. Immutable once produced.
type Element struct {
	Representation uint64
	Position       uint32
	ReadID         uint32
	Direction      kmer.Direction
}

// Minimizers returns the (k,w)-minimizer sketch of seq, ordered by position.
//
// A window covers w consecutive k-mer start positions; every position that
// ties the window minimum is selected, and each (representation, position)
// is emitted once even when it wins several overlapping windows. K-mers
// holding a non-ACGT byte are not candidates. Reads shorter than k sketch
// to nothing; reads with fewer than w k-mers are scanned as one window.
//
// Validating k against the packed-representation limit is the index
// builder's job, not done per read.
func Minimizers(seq []byte, k, w int) []Element {
	n := len(seq) - k + 1
	if n <= 0 || w < 1 {
		return nil
	}
	if w > n {
		w = n
	}

	reps := make([]uint64, n)
	dirs := make([]kmer.Direction, n)
	valid := make([]bool, n)

	// Rolling 2-bit encodings of the forward strand and its reverse
	// complement; both reset on a non-ACGT base.
	var (
		fwd, rc uint64
		run     int
		mask    = uint64(1)<<(2*uint(k)) - 1
		shift   = 2 * uint(k-1)
	)
	for i := 0; i < len(seq); i++ {
		c, ok := kmer.BaseCode(seq[i])
		if !ok {
			fwd, rc, run = 0, 0, 0
			continue
		}
		fwd = (fwd<<2 | c) & mask
		rc = rc>>2 | (3-c)<<shift
		run++
		if run < k {
			continue
		}
		p := i - k + 1
		valid[p] = true
		if fwd <= rc {
			reps[p], dirs[p] = fwd, kmer.Forward
		} else {
			reps[p], dirs[p] = rc, kmer.Reverse
		}
	}

	var out []Element
	emitted := make([]bool, n)
	for s := 0; s+w <= n; s++ {
		var best uint64
		found := false
		for i := s; i < s+w; i++ {
			if !valid[i] {
				continue
			}
			if !found || reps[i] < best {
				best, found = reps[i], true
			}
		}
		if !found {
			continue
		}
		for i := s; i < s+w; i++ {
			if valid[i] && reps[i] == best && !emitted[i] {
				emitted[i] = true
				out = append(out, Element{
					Representation: reps[i],
					Position:       uint32(i),
					Direction:      dirs[i],
				})
			}
		}
	}

	// Overlapping windows can emit out of position order.
	sort.Slice(out, func(a, b int) bool { return out[a].Position < out[b].Position })
	return out
}
