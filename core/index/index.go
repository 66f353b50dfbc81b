// core/index/index.go
package index

import (
	"math"

	"mindex-core/kmer"
)

// ArrayBlock is a non-owning descriptor of a contiguous run inside the
// index's parallel arrays: offset of the first element and element count.
// It is valid exactly as long as its owning Index.
type ArrayBlock struct {
	First uint64
	Count uint32
}

// RepresentationToSketchElements locates, for one representation seen in a
// read, the run of sketch elements with that representation in that read
// and the run with that representation across all reads. The all-reads run
// is the same whichever read's entry it is fetched from.
type RepresentationToSketchElements struct {
	Representation uint64
	OwnBlock       ArrayBlock // this read, this representation
	AllBlock       ArrayBlock // all reads, this representation
}

// Sentinel representation bounds reported by an index holding no sketch
// elements; MinimumRepresentation() > MaximumRepresentation() iff empty.
const (
	EmptyMinimumRepresentation = uint64(math.MaxUint64)
	EmptyMaximumRepresentation = uint64(0)
)

// Index is an immutable (k,w)-minimizer lookup over a set of reads. Once
// built it is safe for any number of concurrent readers; no method mutates
// it. The three element arrays are parallel: entry i of each describes the
// same sketch element, and elements are grouped by representation
// ascending, then read id, then position.
type Index interface {
	// PositionsInReads returns the start position of every sketch element
	// within its read.
	PositionsInReads() []uint32
	// ReadIDs returns the owning read of every sketch element.
	ReadIDs() []uint32
	// DirectionsOfReads returns the winning strand of every sketch element.
	DirectionsOfReads() []kmer.Direction

	// NumberOfReads reports how many reads the index was built over.
	// Read ids are dense, 0..NumberOfReads()-1, in pull order.
	NumberOfReads() int
	// ReadIDToReadName maps read id to the read's source name.
	ReadIDToReadName() []string
	// ReadIDToReadLength maps read id to the read's base length.
	ReadIDToReadLength() []uint32

	// MinimumRepresentation is the smallest representation observed, or
	// EmptyMinimumRepresentation for an element-free index.
	MinimumRepresentation() uint64
	// MaximumRepresentation is the largest representation observed, or
	// EmptyMaximumRepresentation for an element-free index.
	MaximumRepresentation() uint64

	// Lookup returns, per read id, that read's representations in
	// ascending order with their element runs.
	Lookup() [][]RepresentationToSketchElements

	// ReachedEndOfInput reports whether the build consumed every source to
	// its end; false means another batch remains (see Extend).
	ReachedEndOfInput() bool
}

// MaxKmerSize is the longest usable k: the representation bit width over
// the 2 bits a base needs.
func MaxKmerSize() int { return kmer.MaxK }

type memIndex struct {
	positions  []uint32
	readIDs    []uint32
	directions []kmer.Direction

	names   []string
	lengths []uint32

	minRep uint64
	maxRep uint64

	lookup [][]RepresentationToSketchElements

	reachedEnd bool
}

func (x *memIndex) PositionsInReads() []uint32          { return x.positions }
func (x *memIndex) ReadIDs() []uint32                   { return x.readIDs }
func (x *memIndex) DirectionsOfReads() []kmer.Direction { return x.directions }
func (x *memIndex) NumberOfReads() int                  { return len(x.names) }
func (x *memIndex) ReadIDToReadName() []string          { return x.names }
func (x *memIndex) ReadIDToReadLength() []uint32        { return x.lengths }
func (x *memIndex) MinimumRepresentation() uint64       { return x.minRep }
func (x *memIndex) MaximumRepresentation() uint64       { return x.maxRep }
func (x *memIndex) ReachedEndOfInput() bool             { return x.reachedEnd }
func (x *memIndex) Lookup() [][]RepresentationToSketchElements {
	return x.lookup
}

// NewEmpty returns a structurally valid index over zero reads: no elements,
// sentinel bounds, nothing left to consume.
func NewEmpty() Index {
	return &memIndex{
		minRep:     EmptyMinimumRepresentation,
		maxRep:     EmptyMaximumRepresentation,
		reachedEnd: true,
	}
}
