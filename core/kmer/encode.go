// core/kmer/encode.go
package kmer

// MaxK is the longest k-mer a packed representation can hold:
// 2 bits per base in a uint64.
const MaxK = 32

// Direction records which strand of a k-mer won canonicalization.
type Direction uint8

const (
	Forward Direction = iota
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "R"
	}
	return "F"
}

// 2-bit codes: A=0, C=1, G=2, T=3. 0xFF marks a non-ACGT byte.
var baseCode [256]byte

func init() {
	for i := range baseCode {
		baseCode[i] = 0xFF
	}
	baseCode['A'], baseCode['a'] = 0, 0
	baseCode['C'], baseCode['c'] = 1, 1
	baseCode['G'], baseCode['g'] = 2, 2
	baseCode['T'], baseCode['t'] = 3, 3
}

// BaseCode returns the 2-bit code of a single base. ok is false for any
// byte outside ACGT (case-insensitive).
func BaseCode(b byte) (uint64, bool) {
	c := baseCode[b]
	if c == 0xFF {
		return 0, false
	}
	return uint64(c), true
}

// Pack returns the 2-bit forward encoding of kmer, first base in the
// highest bits. ok is false if kmer is empty, longer than MaxK, or holds a
// non-ACGT byte.
func Pack(kmer []byte) (uint64, bool) {
	if len(kmer) == 0 || len(kmer) > MaxK {
		return 0, false
	}
	var code uint64
	for _, b := range kmer {
		c, ok := BaseCode(b)
		if !ok {
			return 0, false
		}
		code = code<<2 | c
	}
	return code, true
}

// RevCompPacked returns the packed encoding of the reverse complement of a
// packed k-mer. With 2-bit codes the complement of a base c is 3-c, so the
// whole thing is a bitwise complement read back to front.
func RevCompPacked(code uint64, k int) uint64 {
	c := ^code
	var rc uint64
	for i := 0; i < k; i++ {
		rc = rc<<2 | (c & 3)
		c >>= 2
	}
	return rc
}

// Canonical maps a raw k-mer to its strand-independent representation and
// the winning direction: the smaller of the forward and reverse-complement
// encodings wins, and a palindromic tie resolves to Forward. ok is false
// when the k-mer cannot be packed (non-ACGT byte, bad length).
func Canonical(kmer []byte) (rep uint64, dir Direction, ok bool) {
	fwd, ok := Pack(kmer)
	if !ok {
		return 0, Forward, false
	}
	rc := RevCompPacked(fwd, len(kmer))
	if fwd <= rc {
		return fwd, Forward, true
	}
	return rc, Reverse, true
}

var complement [256]byte

func init() {
	for i := range complement {
		complement[i] = 'N'
	}
	complement['A'], complement['a'] = 'T', 't'
	complement['C'], complement['c'] = 'G', 'g'
	complement['G'], complement['g'] = 'C', 'c'
	complement['T'], complement['t'] = 'A', 'a'
}

// RevComp returns the byte-level reverse complement of seq. Bases outside
// ACGT complement to 'N'.
func RevComp(seq []byte) []byte {
	n := len(seq)
	if n == 0 {
		return nil
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = complement[seq[n-1-i]]
	}
	return out
}
