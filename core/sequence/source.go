// core/sequence/source.go
package sequence

import (
	"github.com/pkg/errors"
)

// Record is one read as supplied by a source.
type Record struct {
	Name string
	Seq  []byte
}

// Source supplies reads by position. Implementations must support random
// access within [0, NumReads()) and report a stable count, which is how the
// index builder detects whether a batch consumed the source to its end.
type Source interface {
	NumReads() int
	Read(i int) (Record, error)
}

// Records is an in-memory Source.
type Records []Record

func (r Records) NumReads() int { return len(r) }

func (r Records) Read(i int) (Record, error) {
	if i < 0 || i >= len(r) {
		return Record{}, errors.Errorf("sequence: read %d out of range (have %d)", i, len(r))
	}
	return r[i], nil
}
