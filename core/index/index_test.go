// core/index/index_test.go
package index

import (
	"errors"
	"reflect"
	"testing"

	"mindex-core/kmer"
	"mindex-core/sequence"
)

func fullRanges(sources ...sequence.Source) ([]sequence.Source, []Range) {
	ranges := make([]Range, len(sources))
	for i, s := range sources {
		ranges[i] = Range{Start: 0, End: s.NumReads()}
	}
	return sources, ranges
}

func mustBuild(t *testing.T, sources []sequence.Source, k, w int, ranges []Range) Index {
	t.Helper()
	idx, err := New(sources, k, w, ranges)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return idx
}

func TestEmptyIndex(t *testing.T) {
	idx := NewEmpty()
	if n := idx.NumberOfReads(); n != 0 {
		t.Errorf("NumberOfReads = %d, want 0", n)
	}
	if len(idx.PositionsInReads()) != 0 || len(idx.ReadIDs()) != 0 || len(idx.DirectionsOfReads()) != 0 {
		t.Error("empty index must have empty element arrays")
	}
	if idx.MinimumRepresentation() <= idx.MaximumRepresentation() {
		t.Errorf("sentinel bounds must invert: min=%d max=%d",
			idx.MinimumRepresentation(), idx.MaximumRepresentation())
	}
	if !idx.ReachedEndOfInput() {
		t.Error("empty index has nothing left to consume")
	}
}

func TestInvalidConfiguration(t *testing.T) {
	src := sequence.Records{{Name: "r0", Seq: []byte("ACGTACGT")}}

	if _, err := New([]sequence.Source{src}, MaxKmerSize()+1, 1, []Range{{0, 1}}); !errors.Is(err, ErrInvalidKmerSize) {
		t.Errorf("k past the representation limit: got %v", err)
	}
	if _, err := New([]sequence.Source{src}, 0, 1, []Range{{0, 1}}); !errors.Is(err, ErrInvalidKmerSize) {
		t.Errorf("k=0: got %v", err)
	}
	if _, err := New([]sequence.Source{src}, 4, 0, []Range{{0, 1}}); !errors.Is(err, ErrInvalidWindowSize) {
		t.Errorf("w=0: got %v", err)
	}
	if _, err := New([]sequence.Source{src}, 4, 1, nil); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("missing range: got %v", err)
	}
	if _, err := New([]sequence.Source{src}, 4, 1, []Range{{2, 1}}); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("start past end: got %v", err)
	}
	if _, err := New([]sequence.Source{src}, 4, 1, []Range{{5, 6}}); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("start past source: got %v", err)
	}
}

func TestEmptyRangesProduceEmptyIndex(t *testing.T) {
	src := sequence.Records{
		{Name: "r0", Seq: []byte("ACGTACGT")},
		{Name: "r1", Seq: []byte("TTTTAAAA")},
	}
	idx := mustBuild(t, []sequence.Source{src}, 4, 1, []Range{{0, 0}})
	if idx.NumberOfReads() != 0 {
		t.Errorf("NumberOfReads = %d, want 0", idx.NumberOfReads())
	}
	if len(idx.PositionsInReads()) != 0 {
		t.Error("expected empty element arrays")
	}
	if idx.MinimumRepresentation() != EmptyMinimumRepresentation ||
		idx.MaximumRepresentation() != EmptyMaximumRepresentation {
		t.Error("expected sentinel bounds")
	}
	if idx.ReachedEndOfInput() {
		t.Error("two unread reads remain, ReachedEndOfInput must be false")
	}
}

// Scenario from the sketch layer, observed through the index: 8 bases,
// k=4, w=1 gives one element per k-mer start.
func TestSingleReadScenario(t *testing.T) {
	src := sequence.Records{{Name: "r0", Seq: []byte("ACGTACGT")}}
	sources, ranges := fullRanges(src)
	idx := mustBuild(t, sources, 4, 1, ranges)

	if got := len(idx.PositionsInReads()); got != 5 {
		t.Fatalf("expected 5 sketch elements, got %d", got)
	}
	if idx.NumberOfReads() != 1 || idx.ReadIDToReadName()[0] != "r0" || idx.ReadIDToReadLength()[0] != 8 {
		t.Errorf("read metadata wrong: %v %v",
			idx.ReadIDToReadName(), idx.ReadIDToReadLength())
	}
	if !idx.ReachedEndOfInput() {
		t.Error("full range must reach end of input")
	}
	for _, id := range idx.ReadIDs() {
		if id != 0 {
			t.Errorf("read id %d in a single-read index", id)
		}
	}
}

func TestParallelArraysConsistent(t *testing.T) {
	src := sequence.Records{
		{Name: "r0", Seq: []byte("ACGTACGTAC")},
		{Name: "r1", Seq: []byte("GGGTTTACGT")},
		{Name: "r2", Seq: []byte("AC")}, // shorter than k: no elements
	}
	sources, ranges := fullRanges(src)
	idx := mustBuild(t, sources, 4, 2, ranges)

	total := len(idx.PositionsInReads())
	if len(idx.ReadIDs()) != total || len(idx.DirectionsOfReads()) != total {
		t.Fatalf("parallel arrays disagree: %d/%d/%d",
			total, len(idx.ReadIDs()), len(idx.DirectionsOfReads()))
	}

	sum := uint64(0)
	for _, entries := range idx.Lookup() {
		prev := uint64(0)
		for i, ent := range entries {
			if i > 0 && ent.Representation <= prev {
				t.Error("per-read entries not strictly ascending by representation")
			}
			prev = ent.Representation
			sum += uint64(ent.OwnBlock.Count)
			if ent.OwnBlock.First+uint64(ent.OwnBlock.Count) > uint64(total) {
				t.Errorf("own block %+v outside arrays of length %d", ent.OwnBlock, total)
			}
			if ent.AllBlock.First+uint64(ent.AllBlock.Count) > uint64(total) {
				t.Errorf("all block %+v outside arrays of length %d", ent.AllBlock, total)
			}
		}
	}
	if sum != uint64(total) {
		t.Errorf("own blocks cover %d elements, arrays hold %d", sum, total)
	}

	if len(idx.Lookup()) != 3 {
		t.Errorf("lookup outer length %d, want one entry per read", len(idx.Lookup()))
	}
	if len(idx.Lookup()[2]) != 0 {
		t.Error("element-free read must have an empty lookup entry")
	}
}

// The all-reads block for a representation must be identical and complete
// no matter which read's entry retrieves it.
func TestAllReadsBlockSharedAcrossReads(t *testing.T) {
	src := sequence.Records{
		{Name: "r0", Seq: []byte("ACGTA")},
		{Name: "r1", Seq: []byte("ACGTA")},
	}
	sources, ranges := fullRanges(src)
	idx := mustBuild(t, sources, 4, 1, ranges)

	lookup := idx.Lookup()
	if len(lookup[0]) == 0 || len(lookup[1]) != len(lookup[0]) {
		t.Fatalf("identical reads should have matching entry counts: %d vs %d",
			len(lookup[0]), len(lookup[1]))
	}
	for i := range lookup[0] {
		e0, e1 := lookup[0][i], lookup[1][i]
		if e0.Representation != e1.Representation {
			t.Fatalf("entry %d representations differ", i)
		}
		if e0.AllBlock != e1.AllBlock {
			t.Errorf("all-reads blocks differ for representation %d: %+v vs %+v",
				e0.Representation, e0.AllBlock, e1.AllBlock)
		}
		if e0.AllBlock.Count != e0.OwnBlock.Count+e1.OwnBlock.Count {
			t.Errorf("all-reads block incomplete for representation %d", e0.Representation)
		}
		// Complete: every element in the block carries this representation's
		// owners, here exactly reads 0 and 1 once each.
		ids := idx.ReadIDs()[e0.AllBlock.First : e0.AllBlock.First+uint64(e0.AllBlock.Count)]
		if len(ids) != 2 || ids[0] != 0 || ids[1] != 1 {
			t.Errorf("block owners = %v, want [0 1]", ids)
		}
	}
}

// Global element order is representation ascending, ties by read then
// position: the layout both block kinds point into.
func TestGlobalGroupingOrder(t *testing.T) {
	src := sequence.Records{
		{Name: "r0", Seq: []byte("ACGTA")}, // k-mers ACGT, CGTA
		{Name: "r1", Seq: []byte("ACGTA")},
	}
	sources, ranges := fullRanges(src)
	idx := mustBuild(t, sources, 4, 1, ranges)

	repACGT, _, _ := kmer.Canonical([]byte("ACGT"))
	repCGTA, _, _ := kmer.Canonical([]byte("CGTA"))
	if repACGT >= repCGTA {
		t.Fatalf("fixture assumption broken: %d >= %d", repACGT, repCGTA)
	}
	wantIDs := []uint32{0, 1, 0, 1}
	wantPos := []uint32{0, 0, 1, 1}
	if !reflect.DeepEqual(idx.ReadIDs(), wantIDs) {
		t.Errorf("ReadIDs = %v, want %v", idx.ReadIDs(), wantIDs)
	}
	if !reflect.DeepEqual(idx.PositionsInReads(), wantPos) {
		t.Errorf("PositionsInReads = %v, want %v", idx.PositionsInReads(), wantPos)
	}
	if idx.MinimumRepresentation() != repACGT || idx.MaximumRepresentation() != repCGTA {
		t.Errorf("bounds = %d..%d, want %d..%d",
			idx.MinimumRepresentation(), idx.MaximumRepresentation(), repACGT, repCGTA)
	}
}

func TestReadIDsDenseAcrossSources(t *testing.T) {
	a := sequence.Records{
		{Name: "a0", Seq: []byte("ACGTACGT")},
		{Name: "a1", Seq: []byte("TTGGCCAA")},
		{Name: "a2", Seq: []byte("GACGACGA")},
	}
	b := sequence.Records{
		{Name: "b0", Seq: []byte("CCCCGGGG")},
		{Name: "b1", Seq: []byte("ATATATAT")},
	}
	idx := mustBuild(t, []sequence.Source{a, b}, 4, 2, []Range{{1, 3}, {0, 2}})

	wantNames := []string{"a1", "a2", "b0", "b1"}
	if !reflect.DeepEqual(idx.ReadIDToReadName(), wantNames) {
		t.Errorf("names = %v, want %v", idx.ReadIDToReadName(), wantNames)
	}
	if idx.NumberOfReads() != 4 {
		t.Errorf("NumberOfReads = %d, want 4", idx.NumberOfReads())
	}
	if !idx.ReachedEndOfInput() {
		t.Error("both sources fully consumed, want ReachedEndOfInput")
	}
}

func TestReachedEndOfInput(t *testing.T) {
	src := sequence.Records{
		{Name: "r0", Seq: []byte("ACGTACGT")},
		{Name: "r1", Seq: []byte("ACGTACGT")},
		{Name: "r2", Seq: []byte("ACGTACGT")},
	}
	partial := mustBuild(t, []sequence.Source{src}, 4, 1, []Range{{0, 2}})
	if partial.ReachedEndOfInput() {
		t.Error("one read remains, want false")
	}
	// End past the count is clamped, and the source is then exhausted.
	clamped := mustBuild(t, []sequence.Source{src}, 4, 1, []Range{{2, 10}})
	if !clamped.ReachedEndOfInput() {
		t.Error("clamped tail range consumes the source, want true")
	}
	if clamped.NumberOfReads() != 1 {
		t.Errorf("NumberOfReads = %d, want 1", clamped.NumberOfReads())
	}
}

func TestDeterministicBuild(t *testing.T) {
	src := sequence.Records{
		{Name: "r0", Seq: []byte("ACGTACGTACGTACGTTGCA")},
		{Name: "r1", Seq: []byte("GGGTTTACGTACCACGTGGT")},
		{Name: "r2", Seq: []byte("TTTTTTTTTTTTTTTTTTTT")},
		{Name: "r3", Seq: []byte("CAGTCAGTCAGTCAGTCAGT")},
		{Name: "r4", Seq: []byte("ACACGNNNNACGTACGTACG")},
	}
	sources, ranges := fullRanges(src)

	a := mustBuild(t, sources, 5, 3, ranges)
	b := mustBuild(t, sources, 5, 3, ranges)

	if !reflect.DeepEqual(a.PositionsInReads(), b.PositionsInReads()) ||
		!reflect.DeepEqual(a.ReadIDs(), b.ReadIDs()) ||
		!reflect.DeepEqual(a.DirectionsOfReads(), b.DirectionsOfReads()) {
		t.Error("global arrays differ between identical builds")
	}
	if !reflect.DeepEqual(a.Lookup(), b.Lookup()) {
		t.Error("lookup tables differ between identical builds")
	}
	if a.MinimumRepresentation() != b.MinimumRepresentation() ||
		a.MaximumRepresentation() != b.MaximumRepresentation() {
		t.Error("bounds differ between identical builds")
	}
}

func TestObservedBoundsContainEveryRepresentation(t *testing.T) {
	src := sequence.Records{
		{Name: "r0", Seq: []byte("ACGTACGTTGCAGGCA")},
		{Name: "r1", Seq: []byte("TTACGGATCCGGAATT")},
	}
	sources, ranges := fullRanges(src)
	idx := mustBuild(t, sources, 6, 4, ranges)

	lo, hi := idx.MinimumRepresentation(), idx.MaximumRepresentation()
	if lo > hi {
		t.Fatal("non-empty index must have ordered bounds")
	}
	for _, entries := range idx.Lookup() {
		for _, ent := range entries {
			if ent.Representation < lo || ent.Representation > hi {
				t.Errorf("representation %d outside observed bounds %d..%d",
					ent.Representation, lo, hi)
			}
		}
	}
}
