// core/index/merge.go
package index

import (
	"mindex-core/sequence"
	"mindex-core/sketch"
)

// Extend builds an index over the next slice of the input and merges it
// with prior, enabling batched construction: request a range, check
// ReachedEndOfInput on the result, repeat. kmerSize and windowSize must
// match the parameters prior was built with.
func Extend(prior Index, sources []sequence.Source, kmerSize, windowSize int, ranges []Range) (Index, error) {
	next, err := New(sources, kmerSize, windowSize, ranges)
	if err != nil {
		return nil, err
	}
	return Merge(prior, next), nil
}

// Merge combines two indexes built with the same (k,w) into one. Reads of
// the second operand are renumbered by the first's read count, so the
// result again holds dense 0..n-1 read ids; cross-batch read identity is
// the caller's mapping layer. The result's ReachedEndOfInput is the second
// operand's, the second being the later batch.
func Merge(a, b Index) Index {
	na := a.NumberOfReads()
	perRead := make([][]sketch.Element, na+b.NumberOfReads())
	gather(a, 0, perRead)
	gather(b, na, perRead)

	names := make([]string, 0, len(perRead))
	names = append(names, a.ReadIDToReadName()...)
	names = append(names, b.ReadIDToReadName()...)
	lengths := make([]uint32, 0, len(perRead))
	lengths = append(lengths, a.ReadIDToReadLength()...)
	lengths = append(lengths, b.ReadIDToReadLength()...)

	idx := &memIndex{
		names:      names,
		lengths:    lengths,
		minRep:     EmptyMinimumRepresentation,
		maxRep:     EmptyMaximumRepresentation,
		reachedEnd: b.ReachedEndOfInput(),
	}
	group(idx, perRead)
	return idx
}

// gather reconstructs each read's representation-sorted element list from
// an index's lookup table, shifting read ids by base.
func gather(src Index, base int, perRead [][]sketch.Element) {
	positions := src.PositionsInReads()
	directions := src.DirectionsOfReads()
	for ri, entries := range src.Lookup() {
		var els []sketch.Element
		for _, ent := range entries {
			for o := uint64(0); o < uint64(ent.OwnBlock.Count); o++ {
				p := ent.OwnBlock.First + o
				els = append(els, sketch.Element{
					Representation: ent.Representation,
					Position:       positions[p],
					ReadID:         uint32(base + ri),
					Direction:      directions[p],
				})
			}
		}
		perRead[base+ri] = els
	}
}
