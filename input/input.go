// Package input parses the text-stream formats read from standard
// input: the Verifier's adjacency matrix and the Prover's Hamiltonian
// cycle. spec.md treats this plumbing as an external collaborator, but
// a runnable executable still needs it; it follows the teacher's
// config-reading style (explicit, linear, no general-purpose parser
// library) rather than introducing one.
package input

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/gtanzer/zk/graph"
)

// ErrMalformedInput is returned for any structurally invalid input
// line (wrong field count, unparsable integer). It is always fatal.
var ErrMalformedInput = errors.New("input: malformed input")

// scanLine is a small wrapper so both parsers can read arbitrarily
// long lines (spec.md §9 flags the original C parser's under-sized,
// fixed-capacity cycle buffer as a bug to avoid).
func scanLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	if line == "" && err == io.EOF {
		return "", io.EOF
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadGraph parses the Verifier's standard input: a line holding n in
// decimal, followed by n lines of n space-separated 0/1 digits giving
// the adjacency matrix row by row.
func ReadGraph(r io.Reader) (*graph.Graph, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	nLine, err := scanLine(br)
	if err != nil {
		return nil, errors.Wrap(err, "input: read n")
	}
	n, err := strconv.Atoi(strings.TrimSpace(nLine))
	if err != nil || n < 1 {
		return nil, ErrMalformedInput
	}

	g := graph.New(n)
	for i := 0; i < n; i++ {
		row, err := scanLine(br)
		if err != nil {
			return nil, errors.Wrap(err, "input: read adjacency row")
		}
		fields := strings.Fields(row)
		if len(fields) != n {
			return nil, ErrMalformedInput
		}
		for j, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, ErrMalformedInput
			}
			g.Set(i, j, byte(v))
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// ReadCycle parses the Prover's standard input: a line holding n in
// decimal (the Prover's own belief about the graph size, checked by
// the caller against the size negotiated on the wire), followed by a
// line of n+1 space-separated decimal vertex indices.
func ReadCycle(r io.Reader) (n int, cycle graph.Cycle, err error) {
	br := bufio.NewReaderSize(r, 64*1024)

	nLine, err := scanLine(br)
	if err != nil {
		return 0, nil, errors.Wrap(err, "input: read n")
	}
	n, err = strconv.Atoi(strings.TrimSpace(nLine))
	if err != nil || n < 1 {
		return 0, nil, ErrMalformedInput
	}

	cycleLine, err := scanLine(br)
	if err != nil {
		return 0, nil, errors.Wrap(err, "input: read cycle")
	}
	fields := strings.Fields(cycleLine)
	if len(fields) != n+1 {
		return 0, nil, ErrMalformedInput
	}
	cycle = make(graph.Cycle, n+1)
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return 0, nil, ErrMalformedInput
		}
		cycle[i] = v
	}

	return n, cycle, nil
}
