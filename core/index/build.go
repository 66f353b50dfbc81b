// core/index/build.go
package index

import (
	"runtime"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/twotwotwo/sorts/sortutil"

	"mindex-core/kmer"
	"mindex-core/sequence"
	"mindex-core/sketch"
)

// Range selects reads [Start,End) from one source. End past the source's
// read count is clamped, so a batching caller can ask for a fixed-size
// slice without knowing the total; Start past the count is an error.
type Range struct {
	Start int
	End   int
}

var (
	ErrInvalidKmerSize   = errors.New("index: k-mer size out of range")
	ErrInvalidWindowSize = errors.New("index: window size must be >= 1")
	ErrInvalidRange      = errors.New("index: malformed read range")
)

// New builds an index over exactly the reads selected by ranges, one range
// per source, assigning dense read ids in pull order. Construction is
// all-or-nothing: any configuration or source error returns before an
// Index exists.
func New(sources []sequence.Source, kmerSize, windowSize int, ranges []Range) (Index, error) {
	if kmerSize < 1 || kmerSize > MaxKmerSize() {
		return nil, errors.Wrapf(ErrInvalidKmerSize, "got %d, want 1..%d", kmerSize, MaxKmerSize())
	}
	if windowSize < 1 {
		return nil, errors.Wrapf(ErrInvalidWindowSize, "got %d", windowSize)
	}
	if len(ranges) != len(sources) {
		return nil, errors.Wrapf(ErrInvalidRange, "%d ranges for %d sources", len(ranges), len(sources))
	}

	var reads []sequence.Record
	reachedEnd := true
	for si, src := range sources {
		r := ranges[si]
		n := src.NumReads()
		if r.Start < 0 || r.End < r.Start || r.Start > n {
			return nil, errors.Wrapf(ErrInvalidRange, "source %d: [%d,%d) of %d reads", si, r.Start, r.End, n)
		}
		end := r.End
		if end > n {
			end = n
		}
		if end < n {
			reachedEnd = false
		}
		for i := r.Start; i < end; i++ {
			rec, err := src.Read(i)
			if err != nil {
				return nil, errors.Wrapf(err, "source %d read %d", si, i)
			}
			reads = append(reads, rec)
		}
	}

	// Sketch reads independently. A result slot per read keeps the output
	// deterministic regardless of worker scheduling.
	perRead := make([][]sketch.Element, len(reads))
	workers := runtime.GOMAXPROCS(0)
	if workers > len(reads) {
		workers = len(reads)
	}
	if workers > 0 {
		jobs := make(chan int)
		var wg sync.WaitGroup
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()
				for i := range jobs {
					els := sketch.Minimizers(reads[i].Seq, kmerSize, windowSize)
					// Equal representations keep position order.
					sort.SliceStable(els, func(a, b int) bool {
						return els[a].Representation < els[b].Representation
					})
					perRead[i] = els
				}
			}()
		}
		for i := range reads {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	idx := &memIndex{
		names:      make([]string, len(reads)),
		lengths:    make([]uint32, len(reads)),
		minRep:     EmptyMinimumRepresentation,
		maxRep:     EmptyMaximumRepresentation,
		reachedEnd: reachedEnd,
	}
	for i, rd := range reads {
		idx.names[i] = rd.Name
		idx.lengths[i] = uint32(len(rd.Seq))
	}
	group(idx, perRead)
	return idx, nil
}

// group scatters per-read, representation-sorted sketch elements into the
// global parallel arrays ordered by (representation, read, position) and
// derives the nested lookup. Representations are fixed-width integer keys,
// so grouping is a counting sort over the sorted key set rather than a
// comparison sort; the scatter visits reads in id order and elements in
// per-read order, which reproduces a stable sort's tie order.
func group(idx *memIndex, perRead [][]sketch.Element) {
	total := 0
	counts := make(map[uint64]uint32)
	for _, els := range perRead {
		total += len(els)
		for _, e := range els {
			counts[e.Representation]++
		}
	}
	idx.lookup = make([][]RepresentationToSketchElements, len(perRead))
	if total == 0 {
		return
	}

	keys := make([]uint64, 0, len(counts))
	for rep := range counts {
		keys = append(keys, rep)
	}
	sortutil.Uint64s(keys)

	next := make(map[uint64]uint64, len(keys))
	all := make(map[uint64]ArrayBlock, len(keys))
	var off uint64
	for _, rep := range keys {
		next[rep] = off
		all[rep] = ArrayBlock{First: off, Count: counts[rep]}
		off += uint64(counts[rep])
	}

	idx.positions = make([]uint32, total)
	idx.readIDs = make([]uint32, total)
	idx.directions = make([]kmer.Direction, total)

	for ri, els := range perRead {
		for i := 0; i < len(els); {
			rep := els[i].Representation
			j := i
			for j < len(els) && els[j].Representation == rep {
				j++
			}
			first := next[rep]
			for t := i; t < j; t++ {
				p := next[rep]
				idx.positions[p] = els[t].Position
				idx.readIDs[p] = uint32(ri)
				idx.directions[p] = els[t].Direction
				next[rep] = p + 1
			}
			idx.lookup[ri] = append(idx.lookup[ri], RepresentationToSketchElements{
				Representation: rep,
				OwnBlock:       ArrayBlock{First: first, Count: uint32(j - i)},
				AllBlock:       all[rep],
			})
			i = j
		}
	}

	idx.minRep = keys[0]
	idx.maxRep = keys[len(keys)-1]
}
