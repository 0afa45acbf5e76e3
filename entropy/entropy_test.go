package entropy

import (
	"bytes"
	"io"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestEntropy(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Entropy Suite")
}

// repeatingReader cycles through a fixed byte pattern forever, so tests
// can assert exact draws without depending on crypto/rand.
type repeatingReader struct {
	pattern []byte
	pos     int
}

func (r *repeatingReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.pattern[r.pos%len(r.pattern)]
		r.pos++
	}
	return len(p), nil
}

type shortReader struct{}

func (shortReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return len(p) - 1, io.ErrUnexpectedEOF
}

var _ = Describe("Source", func() {
	It("produces fair bits as byte mod 2", func() {
		src, err := NewWithReader(&repeatingReader{pattern: []byte{0, 1, 2, 3, 4, 5, 6, 7}}, 8)
		Expect(err).To(BeNil())

		for _, want := range []byte{0, 1, 0, 1, 0, 1, 0, 1} {
			got, err := src.FairBit()
			Expect(err).To(BeNil())
			Expect(got).To(Equal(want))
		}
	})

	It("refills the buffer once depleted", func() {
		src, err := NewWithReader(&repeatingReader{pattern: []byte{9}}, 2)
		Expect(err).To(BeNil())

		for i := 0; i < 10; i++ {
			got, err := src.FairBit()
			Expect(err).To(BeNil())
			Expect(got).To(Equal(byte(1))) // 9 % 2 == 1
		}
	})

	It("decodes U64 as little-endian", func() {
		src, err := NewWithReader(bytes.NewReader([]byte{1, 0, 0, 0, 0, 0, 0, 0}), 8)
		Expect(err).To(BeNil())

		v, err := src.U64()
		Expect(err).To(BeNil())
		Expect(v).To(Equal(uint64(1)))
	})

	It("rejects U64 on an undersized buffer", func() {
		src, err := NewWithReader(&repeatingReader{pattern: []byte{1}}, 4)
		Expect(err).To(BeNil())

		_, err = src.U64()
		Expect(err).To(Equal(ErrBufferTooSmall))
	})

	It("fills arbitrary-length destinations across refills", func() {
		src, err := NewWithReader(&repeatingReader{pattern: []byte{0xAA, 0xBB}}, 3)
		Expect(err).To(BeNil())

		dst := make([]byte, 7)
		Expect(src.Fill(dst)).To(BeNil())
		Expect(dst).To(Equal([]byte{0xAA, 0xBB, 0xAA, 0xBB, 0xAA, 0xBB, 0xAA}))
	})

	It("is fatal on a short read during the initial fill", func() {
		_, err := NewWithReader(shortReader{}, 16)
		Expect(err).ToNot(BeNil())
	})
})
