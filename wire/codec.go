// Package wire implements the fixed-endianness, fixed-size framing
// used between the Prover and the Verifier. There are no length
// prefixes: every message's size is derived from n, negotiated once at
// session start, so the codec is nothing more than exact-size reads
// and writes plus a uint64 encoding. spec.md leaves the wire integer
// endianness as a documentation choice rather than a hard requirement;
// this implementation fixes it to little-endian.
package wire

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// ErrShortWrite is returned when a write to the peer completes fewer
// bytes than requested without an error — treated as fatal, same as
// any other I/O failure.
var ErrShortWrite = errors.New("wire: short write")

// WriteByte writes a single byte, e.g. the challenge bit.
func WriteByte(w io.Writer, b byte) error {
	return writeFull(w, []byte{b})
}

// ReadByte reads a single byte, e.g. the challenge bit.
func ReadByte(r io.Reader) (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, errors.Wrap(err, "wire: read byte")
	}
	return buf[0], nil
}

// WriteUint64 writes a single little-endian uint64, e.g. the
// handshake's n.
func WriteUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return writeFull(w, buf[:])
}

// ReadUint64 reads a single little-endian uint64.
func ReadUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, errors.Wrap(err, "wire: read uint64")
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// WriteUint64Slice writes a slice of little-endian uint64 words back to
// back, with no length prefix.
func WriteUint64Slice(w io.Writer, vs []uint64) error {
	buf := make([]byte, 8*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint64(buf[i*8:(i+1)*8], v)
	}
	return writeFull(w, buf)
}

// ReadUint64Slice reads exactly count little-endian uint64 words.
func ReadUint64Slice(r io.Reader, count int) ([]uint64, error) {
	buf := make([]byte, 8*count)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, errors.Wrap(err, "wire: read uint64 slice")
	}
	out := make([]uint64, count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(buf[i*8 : (i+1)*8])
	}
	return out, nil
}

// WriteBytes writes raw bytes verbatim.
func WriteBytes(w io.Writer, b []byte) error {
	return writeFull(w, b)
}

// ReadBytesInto reads exactly len(dst) raw bytes into dst.
func ReadBytesInto(r io.Reader, dst []byte) error {
	_, err := io.ReadFull(r, dst)
	if err != nil {
		return errors.Wrap(err, "wire: read bytes")
	}
	return nil
}

// ReadBytes reads exactly n raw bytes into a freshly allocated slice.
func ReadBytes(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := ReadBytesInto(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// writeFull writes buf to w in full, looping over partial writes; a
// stream socket's Write may legally return fewer bytes than requested
// without an error.
func writeFull(w io.Writer, buf []byte) error {
	for len(buf) > 0 {
		n, err := w.Write(buf)
		if err != nil {
			return errors.Wrap(err, "wire: write")
		}
		if n == 0 {
			return ErrShortWrite
		}
		buf = buf[n:]
	}
	return nil
}
