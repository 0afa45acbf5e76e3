// Package graph holds the adjacency-matrix graph and Hamiltonian-cycle
// data model shared by the prover and verifier, along with the
// structural validations that either side performs before or during
// a round: adjacency-entry validation, the prover's cycle preflight
// check, and the verifier's permutation and cycle-skeleton checks.
package graph

import "github.com/pkg/errors"

var (
	// ErrInvalidEntry is returned when an adjacency-matrix cell is not
	// 0 or 1.
	ErrInvalidEntry = errors.New("graph: adjacency entry is not 0 or 1")
	// ErrWrongCycleLength is returned when a claimed cycle does not
	// have exactly n+1 entries.
	ErrWrongCycleLength = errors.New("graph: cycle has the wrong length")
	// ErrCycleNotClosed is returned when a cycle's last vertex does not
	// equal its first.
	ErrCycleNotClosed = errors.New("graph: cycle is not closed")
	// ErrCycleRepeatsVertex is returned when a cycle visits a vertex
	// more than once (other than the closing repeat of the start).
	ErrCycleRepeatsVertex = errors.New("graph: cycle repeats a vertex")
	// ErrCycleVertexOutOfRange is returned when a cycle index is not in
	// [0, n).
	ErrCycleVertexOutOfRange = errors.New("graph: cycle vertex out of range")
	// ErrCycleMissingEdge is returned when two consecutive cycle
	// vertices are not connected by an edge in the graph.
	ErrCycleMissingEdge = errors.New("graph: cycle uses a non-edge")

	// ErrNotPermutation is the verifier-side soft-reject error for a
	// challenge-0 permutation that is not a bijection on [0,n).
	ErrNotPermutation = errors.New("graph: not a permutation")
	// ErrNotCycleSkeleton is the verifier-side soft-reject error for a
	// challenge-1 vertex sequence that is not a closed Hamiltonian
	// cycle skeleton.
	ErrNotCycleSkeleton = errors.New("graph: not a closed cycle skeleton")
)

// Graph is a square 0/1 adjacency matrix of dimension N, stored
// row-major. Symmetry and loops are not required.
type Graph struct {
	n   int
	adj []byte
}

// New allocates a Graph of dimension n with every entry zeroed.
func New(n int) *Graph {
	return &Graph{n: n, adj: make([]byte, n*n)}
}

// FromBytes reconstructs a Graph from a flat, row-major n*n byte
// buffer exactly as it arrives over the wire, and validates it the same
// way a locally built Graph would be.
func FromBytes(n int, data []byte) (*Graph, error) {
	if len(data) != n*n {
		return nil, ErrInvalidEntry
	}
	g := &Graph{n: n, adj: append([]byte(nil), data...)}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// N returns the graph's dimension.
func (g *Graph) N() int {
	return g.n
}

// Edge returns the (i,j) adjacency entry.
func (g *Graph) Edge(i, j int) byte {
	return g.adj[i*g.n+j]
}

// Set assigns the (i,j) adjacency entry.
func (g *Graph) Set(i, j int, v byte) {
	g.adj[i*g.n+j] = v
}

// Validate rejects any entry that is not 0 or 1. This is the
// Verifier's input-validation step, run before the connection is
// opened.
func (g *Graph) Validate() error {
	for _, v := range g.adj {
		if v != 0 && v != 1 {
			return ErrInvalidEntry
		}
	}
	return nil
}

// Cycle is a claimed Hamiltonian cycle: n+1 vertex indices in [0,n),
// with Cycle[n] == Cycle[0].
type Cycle []uint64

// Validate is the Prover's preflight check: the cycle must have the
// right length, be closed, visit every other vertex exactly once, and
// every consecutive pair must be a real edge in g. Any failure here is
// fatal to the Prover (spec's §7.3 input validation at startup).
func (c Cycle) Validate(g *Graph) error {
	n := g.N()
	if len(c) != n+1 {
		return ErrWrongCycleLength
	}
	if c[n] != c[0] {
		return ErrCycleNotClosed
	}

	visited := make([]bool, n)
	for i := 0; i < n; i++ {
		v := c[i]
		if v >= uint64(n) {
			return ErrCycleVertexOutOfRange
		}
		if visited[v] {
			return ErrCycleRepeatsVertex
		}
		visited[v] = true
	}

	for i := 0; i < n; i++ {
		if g.Edge(int(c[i]), int(c[i+1])) != 1 {
			return ErrCycleMissingEdge
		}
	}
	return nil
}

// ValidatePermutation is the Verifier's challenge-0 check: pi must be a
// bijection on [0,n). A violation is a soft reject (ErrNotPermutation),
// per the redesign in SPEC_FULL.md that unifies it with the
// decommitment validators instead of aborting the process.
func ValidatePermutation(pi []uint64, n int) error {
	if len(pi) != n {
		return ErrNotPermutation
	}
	visited := make([]bool, n)
	for _, v := range pi {
		if v >= uint64(n) || visited[v] {
			return ErrNotPermutation
		}
		visited[v] = true
	}
	return nil
}

// ValidateCycleSkeleton is the Verifier's challenge-1 check: p must
// visit every vertex in [0,n) exactly once across p[0:n] and be closed
// (p[n] == p[0]). A violation is a soft reject (ErrNotCycleSkeleton).
func ValidateCycleSkeleton(p []uint64, n int) error {
	if len(p) != n+1 {
		return ErrNotCycleSkeleton
	}
	visited := make([]bool, n)
	for i := 0; i < n; i++ {
		v := p[i]
		if v >= uint64(n) || visited[v] {
			return ErrNotCycleSkeleton
		}
		visited[v] = true
	}
	if p[n] >= uint64(n) || p[n] != p[0] {
		return ErrNotCycleSkeleton
	}
	return nil
}
