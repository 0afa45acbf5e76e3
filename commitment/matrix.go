// Package commitment builds and verifies the per-round salt and hash
// commitment matrices. It generalizes the teacher's single (salt,
// data) HashCommitmenter to an n x n matrix of independently salted
// commitment cells, one per permuted vertex-pair address.
package commitment

const (
	// SaltSize is the width of a single commitment cell's pre-image:
	// 31 bytes of entropy plus one bit-valued payload byte.
	SaltSize = 32
	// digestSize is the width of a SHA-256 digest.
	digestSize = 32
)

// Matrix is a flat n*n array of fixed-width cells, addressed as a
// contiguous buffer with a (a,b) -> offset indexer, per spec.md §9's
// guidance for rewriting the original's C99 variable-length arrays.
type Matrix struct {
	n        int
	cellSize int
	data     []byte
}

// NewMatrix allocates a zeroed n x n matrix of cellSize-byte cells.
func NewMatrix(n, cellSize int) *Matrix {
	return &Matrix{n: n, cellSize: cellSize, data: make([]byte, n*n*cellSize)}
}

// N returns the matrix's dimension.
func (m *Matrix) N() int {
	return m.n
}

// Cell returns the cellSize-byte slice at address (a,b). The returned
// slice aliases the matrix's backing array.
func (m *Matrix) Cell(a, b int) []byte {
	off := (a*m.n + b) * m.cellSize
	return m.data[off : off+m.cellSize]
}

// Bytes returns the matrix's full row-major backing buffer, suitable
// for a single exact-size wire write or read.
func (m *Matrix) Bytes() []byte {
	return m.data
}
