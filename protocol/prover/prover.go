// Package prover drives the Prover side of the protocol: the per-round
// commit/send/read-challenge/decommit state machine (spec.md §4.4) and
// its sequential repetition across k rounds (spec.md §4.7, the Prover's
// half of the amplifier — the Prover has no verdict of its own, only
// the Verifier does, so "amplification" here just means running the
// same round k times).
package prover

import (
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/gtanzer/zk/commitment"
	"github.com/gtanzer/zk/entropy"
	"github.com/gtanzer/zk/graph"
	"github.com/gtanzer/zk/metrics"
	"github.com/gtanzer/zk/permutation"
	"github.com/gtanzer/zk/wire"
)

// ErrMalformedChallenge is fatal: the challenge byte read from the
// Verifier was neither 0 nor 1.
var ErrMalformedChallenge = errors.New("prover: malformed challenge byte")

// Session holds everything one Prover needs to run the round loop over
// an already-connected stream conn, for an already-validated graph and
// cycle.
type Session struct {
	conn    io.ReadWriter
	graph   *graph.Graph
	cycle   graph.Cycle
	rounds  int
	src     *entropy.Source
	metrics *metrics.Prover // nil-safe: all uses are guarded
}

// New validates cycle against g (the Prover's §7.3 preflight check,
// fatal on failure) and returns a ready-to-run Session. m may be nil to
// disable metrics.
func New(conn io.ReadWriter, g *graph.Graph, cycle graph.Cycle, rounds int, src *entropy.Source, m *metrics.Prover) (*Session, error) {
	if err := cycle.Validate(g); err != nil {
		return nil, errors.Wrap(err, "prover: cycle does not traverse real edges")
	}
	return &Session{
		conn:    conn,
		graph:   g,
		cycle:   cycle,
		rounds:  rounds,
		src:     src,
		metrics: m,
	}, nil
}

// Run drives all k rounds sequentially; any error is fatal and aborts
// the remaining rounds.
func (s *Session) Run() error {
	for i := 0; i < s.rounds; i++ {
		start := time.Now()
		err := s.round()
		if s.metrics != nil {
			if err != nil {
				s.metrics.Aborts.Inc()
			} else {
				s.metrics.RecordRound(time.Since(start))
			}
		}
		if err != nil {
			return errors.Wrapf(err, "prover: round %d", i)
		}
	}
	return nil
}

// round runs one commit/send/read-challenge/decommit cycle.
func (s *Session) round() error {
	n := s.graph.N()

	pi, err := permutation.Sample(n, s.src)
	if err != nil {
		return errors.Wrap(err, "sample permutation")
	}
	salts, hashes, err := commitment.Build(s.graph, pi, s.src)
	if err != nil {
		return errors.Wrap(err, "build commitment")
	}

	if err := wire.WriteBytes(s.conn, hashes.Bytes()); err != nil {
		return errors.Wrap(err, "send commitment")
	}

	challenge, err := wire.ReadByte(s.conn)
	if err != nil {
		return errors.Wrap(err, "read challenge")
	}

	switch challenge {
	case 0:
		return s.decommitFullGraph(pi, salts)
	case 1:
		return s.decommitCycle(pi, salts)
	default:
		return ErrMalformedChallenge
	}
}

// decommitFullGraph sends pi as n uint64 words followed by the full
// salt matrix.
func (s *Session) decommitFullGraph(pi []uint64, salts *commitment.Matrix) error {
	if err := wire.WriteUint64Slice(s.conn, pi); err != nil {
		return errors.Wrap(err, "send permutation")
	}
	if err := wire.WriteBytes(s.conn, salts.Bytes()); err != nil {
		return errors.Wrap(err, "send salts")
	}
	return nil
}

// decommitCycle sends the permuted cycle P as n+1 uint64 words followed
// by its n edge salts. Per spec.md §9's guidance, P and T are freshly
// allocated buffers rather than aliasing the commitment matrix as
// scratch.
func (s *Session) decommitCycle(pi []uint64, salts *commitment.Matrix) error {
	n := s.graph.N()
	p := make([]uint64, n+1)
	for i, v := range s.cycle {
		p[i] = pi[v]
	}

	edgeSalts := make([]byte, n*commitment.SaltSize)
	for i := 0; i < n; i++ {
		copy(edgeSalts[i*commitment.SaltSize:(i+1)*commitment.SaltSize], salts.Cell(int(p[i]), int(p[i+1])))
	}

	if err := wire.WriteUint64Slice(s.conn, p); err != nil {
		return errors.Wrap(err, "send permuted cycle")
	}
	if err := wire.WriteBytes(s.conn, edgeSalts); err != nil {
		return errors.Wrap(err, "send edge salts")
	}
	return nil
}
