package commitment

import (
	"crypto/sha256"
	"testing"

	"github.com/gtanzer/zk/entropy"
	"github.com/gtanzer/zk/graph"
	"github.com/gtanzer/zk/permutation"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestCommitment(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Commitment Suite")
}

func k4() *graph.Graph {
	g := graph.New(4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i != j {
				g.Set(i, j, 1)
			}
		}
	}
	return g
}

var _ = Describe("Build", func() {
	It("produces digests that open correctly and preserve the edge bit", func() {
		g := k4()
		src, err := entropy.New(4 * 4 * 32)
		Expect(err).To(BeNil())
		pi, err := permutation.Sample(4, src)
		Expect(err).To(BeNil())

		salts, hashes, err := Build(g, pi, src)
		Expect(err).To(BeNil())

		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				a, b := int(pi[i]), int(pi[j])
				cell := salts.Cell(a, b)
				Expect(cell).To(HaveLen(32))
				Expect(cell[31]).To(Equal(g.Edge(i, j)))

				digest := sha256.Sum256(cell)
				Expect(hashes.Cell(a, b)).To(Equal(digest[:]))
			}
		}
	})

	It("accepts an honest challenge-0 decommitment", func() {
		g := k4()
		src, err := entropy.New(4 * 4 * 32)
		Expect(err).To(BeNil())
		pi, err := permutation.Sample(4, src)
		Expect(err).To(BeNil())

		salts, hashes, err := Build(g, pi, src)
		Expect(err).To(BeNil())

		Expect(VerifyFullGraph(g, hashes, salts, pi)).To(BeTrue())
	})

	It("rejects a tampered salt", func() {
		g := k4()
		src, err := entropy.New(4 * 4 * 32)
		Expect(err).To(BeNil())
		pi, err := permutation.Sample(4, src)
		Expect(err).To(BeNil())

		salts, hashes, err := Build(g, pi, src)
		Expect(err).To(BeNil())

		cell := salts.Cell(int(pi[0]), int(pi[1]))
		cell[0] ^= 0xFF

		Expect(VerifyFullGraph(g, hashes, salts, pi)).To(BeFalse())
	})

	It("accepts an honest challenge-1 decommitment of the cycle", func() {
		g := k4()
		cycle := graph.Cycle{0, 1, 2, 3, 0}
		src, err := entropy.New(4 * 4 * 32)
		Expect(err).To(BeNil())
		pi, err := permutation.Sample(4, src)
		Expect(err).To(BeNil())

		salts, hashes, err := Build(g, pi, src)
		Expect(err).To(BeNil())

		p := make([]uint64, len(cycle))
		for i, v := range cycle {
			p[i] = pi[v]
		}

		edgeSaltsFlat := make([]byte, (len(p)-1)*SaltSize)
		for i := 0; i < len(p)-1; i++ {
			copy(edgeSaltsFlat[i*SaltSize:(i+1)*SaltSize], salts.Cell(int(p[i]), int(p[i+1])))
		}
		edgeSalts := SplitEdgeSalts(edgeSaltsFlat)

		Expect(VerifyCycle(hashes, edgeSalts, p)).To(BeTrue())
	})
})
