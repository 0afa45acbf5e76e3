package commitment

import (
	"crypto/sha256"

	"github.com/gtanzer/zk/entropy"
	"github.com/gtanzer/zk/graph"
)

// Build populates a fresh salt matrix S and commitment (hash) matrix H
// from a graph g and a sampled permutation pi: for every (i,j), S[pi(i)][pi(j)]
// is 31 fresh random bytes followed by the edge bit g.Edge(i,j), and
// H[pi(i)][pi(j)] = SHA256(S[pi(i)][pi(j)]).
//
// This is grounded on the teacher's crypto/commitment.NewHashCommitmenter,
// which pairs a single random salt with a single data value and hashes
// the concatenation; here the same shape is applied once per matrix
// cell, addressed through the permutation.
func Build(g *graph.Graph, pi []uint64, src *entropy.Source) (salts *Matrix, hashes *Matrix, err error) {
	n := g.N()
	salts = NewMatrix(n, SaltSize)
	hashes = NewMatrix(n, digestSize)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a, b := int(pi[i]), int(pi[j])
			cell := salts.Cell(a, b)
			if err := src.Fill(cell[:SaltSize-1]); err != nil {
				return nil, nil, err
			}
			cell[SaltSize-1] = g.Edge(i, j)

			digest := sha256.Sum256(cell)
			copy(hashes.Cell(a, b), digest[:])
		}
	}

	return salts, hashes, nil
}
