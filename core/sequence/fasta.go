// core/sequence/fasta.go
package sequence

import (
	"io"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seqio/fastx"
)

// FromFasta loads a FASTA file (plain or gzipped, "-" for stdin) into an
// in-memory Source. The whole file is kept resident so reads stay randomly
// addressable by position. Record names are the first whitespace-delimited
// token of the header.
func FromFasta(path string) (Records, error) {
	reader, err := fastx.NewReader(nil, path, "")
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer reader.Close()

	var recs Records
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrapf(err, "read %s record %d", path, len(recs))
		}
		// fastx reuses the record; copy what we keep.
		recs = append(recs, Record{
			Name: string(record.ID),
			Seq:  append([]byte(nil), record.Seq.Seq...),
		})
	}
	return recs, nil
}
