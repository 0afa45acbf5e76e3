package commitment

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/gtanzer/zk/graph"
)

// VerifyFullGraph is the challenge-0 decommitment validator. Given the
// original graph g, the received commitment matrix H, salt matrix S,
// and claimed permutation pi, it checks, for every (i,j), that the
// salt's payload byte matches the claimed edge and that the salt opens
// the committed digest. It reports the result as a boolean soft
// verdict rather than an error: any mismatch is a cheating prover, not
// a process fault.
func VerifyFullGraph(g *graph.Graph, hashes, salts *Matrix, pi []uint64) bool {
	n := g.N()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a, b := int(pi[i]), int(pi[j])
			cell := salts.Cell(a, b)
			if cell[SaltSize-1] != g.Edge(i, j) {
				return false
			}
			digest := sha256.Sum256(cell)
			if subtle.ConstantTimeCompare(digest[:], hashes.Cell(a, b)) != 1 {
				return false
			}
		}
	}
	return true
}

// VerifyCycle is the challenge-1 decommitment validator. Given the
// commitment matrix H, n revealed edge salts (one per consecutive pair
// in the permuted cycle p), and p itself (n+1 permuted vertex
// indices), it checks that every revealed salt carries an edge-present
// payload byte and opens the commitment at that cycle position.
func VerifyCycle(hashes *Matrix, edgeSalts [][]byte, p []uint64) bool {
	n := len(p) - 1
	for i := 0; i < n; i++ {
		t := edgeSalts[i]
		if t[SaltSize-1] != 1 {
			return false
		}
		digest := sha256.Sum256(t)
		if subtle.ConstantTimeCompare(digest[:], hashes.Cell(int(p[i]), int(p[i+1]))) != 1 {
			return false
		}
	}
	return true
}

// SplitEdgeSalts splits a flat n*SaltSize buffer into n individual
// SaltSize-byte slices, aliasing the original backing array. It is the
// inverse of how the Prover concatenates its challenge-1 payload.
func SplitEdgeSalts(flat []byte) [][]byte {
	n := len(flat) / SaltSize
	out := make([][]byte, n)
	for i := 0; i < n; i++ {
		out[i] = flat[i*SaltSize : (i+1)*SaltSize]
	}
	return out
}
