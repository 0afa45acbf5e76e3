// Package entropy implements the buffered draw from a cryptographic
// randomness source that feeds the permutation sampler and the
// commitment builder.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// ErrShortRead is returned when the underlying CSPRNG stream does not
// produce a full buffer's worth of bytes. It is always fatal: there is
// no retry.
var ErrShortRead = errors.New("entropy: short read from randomness source")

// ErrBufferTooSmall is returned by U64 when the source was constructed
// with fewer than 8 bytes of buffer capacity.
var ErrBufferTooSmall = errors.New("entropy: buffer capacity must be at least 8 bytes for U64")

// Source is a value-typed, process-private owner of a CSPRNG byte
// buffer and a read cursor. It is created once per session and passed
// by reference into the permutation sampler and commitment builder;
// there is no package-level singleton.
type Source struct {
	r   io.Reader
	buf []byte
	off int
}

// New creates a Source backed by crypto/rand.Reader with a buffer of
// the given capacity, immediately filled.
func New(capacity int) (*Source, error) {
	return NewWithReader(rand.Reader, capacity)
}

// NewWithReader creates a Source backed by an arbitrary CSPRNG stream.
// Exposed so tests can substitute a deterministic stream.
func NewWithReader(r io.Reader, capacity int) (*Source, error) {
	if capacity < 1 {
		capacity = 1
	}
	s := &Source{
		r:   r,
		buf: make([]byte, capacity),
		off: capacity, // force an initial refill
	}
	if err := s.refill(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Source) refill() error {
	n, err := io.ReadFull(s.r, s.buf)
	if err != nil || n < len(s.buf) {
		return errors.Wrap(ErrShortRead, errString(err))
	}
	s.off = 0
	return nil
}

func errString(err error) string {
	if err == nil {
		return "unexpected EOF"
	}
	return err.Error()
}

// FairBit consumes one byte from the buffer and returns it mod 2: an
// unbiased Bernoulli(1/2) sample.
func (s *Source) FairBit() (byte, error) {
	if s.off == len(s.buf) {
		if err := s.refill(); err != nil {
			return 0, err
		}
	}
	b := s.buf[s.off]
	s.off++
	return b % 2, nil
}

// U64 consumes 8 bytes from the buffer and interprets them as a
// little-endian unsigned 64-bit integer. The source must have been
// created with a capacity of at least 8 bytes.
func (s *Source) U64() (uint64, error) {
	if len(s.buf) < 8 {
		return 0, ErrBufferTooSmall
	}
	if s.off+8 > len(s.buf) {
		if err := s.refill(); err != nil {
			return 0, err
		}
	}
	v := binary.LittleEndian.Uint64(s.buf[s.off : s.off+8])
	s.off += 8
	return v, nil
}

// Fill copies len(dst) fresh bytes into dst, refilling the internal
// buffer as many times as needed.
func (s *Source) Fill(dst []byte) error {
	for i := range dst {
		if s.off == len(s.buf) {
			if err := s.refill(); err != nil {
				return err
			}
		}
		dst[i] = s.buf[s.off]
		s.off++
	}
	return nil
}
