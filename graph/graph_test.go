package graph

import (
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

func TestGraph(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Graph Suite")
}

func k4() *Graph {
	g := New(4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i != j {
				g.Set(i, j, 1)
			}
		}
	}
	return g
}

var _ = Describe("Graph", func() {
	It("validates a well-formed 0/1 matrix", func() {
		g := k4()
		Expect(g.Validate()).To(BeNil())
	})

	It("rejects entries outside {0,1}", func() {
		g := New(2)
		g.Set(0, 1, 7)
		Expect(g.Validate()).To(Equal(ErrInvalidEntry))
	})
})

var _ = Describe("Cycle.Validate", func() {
	It("accepts a Hamiltonian cycle on K4", func() {
		c := Cycle{0, 1, 2, 3, 0}
		Expect(c.Validate(k4())).To(BeNil())
	})

	It("accepts K4 minus one edge when the cycle avoids it", func() {
		g := k4()
		g.Set(0, 2, 0)
		g.Set(2, 0, 0)
		c := Cycle{0, 1, 2, 3, 0}
		Expect(c.Validate(g)).To(BeNil())
	})

	It("rejects a cycle that is not closed", func() {
		c := Cycle{0, 1, 2, 3, 1}
		Expect(c.Validate(k4())).To(Equal(ErrCycleNotClosed))
	})

	It("rejects a cycle using a missing edge", func() {
		g := New(3)
		g.Set(0, 1, 1)
		g.Set(1, 0, 1)
		g.Set(1, 2, 1)
		g.Set(2, 1, 1)
		// no edge (2,0): path graph, not a cycle
		c := Cycle{0, 1, 2, 0}
		Expect(c.Validate(g)).To(Equal(ErrCycleMissingEdge))
	})

	It("rejects a cycle with a repeated interior vertex", func() {
		c := Cycle{0, 1, 1, 3, 0}
		Expect(c.Validate(k4())).To(Equal(ErrCycleRepeatsVertex))
	})
})

var _ = Describe("ValidatePermutation", func() {
	DescribeTable("bijections on [0,n)",
		func(pi []uint64, n int, wantErr error) {
			if wantErr == nil {
				Expect(ValidatePermutation(pi, n)).To(BeNil())
			} else {
				Expect(ValidatePermutation(pi, n)).To(Equal(wantErr))
			}
		},
		Entry("identity", []uint64{0, 1, 2, 3}, 4, nil),
		Entry("reversed", []uint64{3, 2, 1, 0}, 4, nil),
		Entry("out of range", []uint64{0, 1, 2, 4}, 4, ErrNotPermutation),
		Entry("duplicate", []uint64{0, 1, 1, 3}, 4, ErrNotPermutation),
		Entry("wrong length", []uint64{0, 1, 2}, 4, ErrNotPermutation),
	)
})

var _ = Describe("ValidateCycleSkeleton", func() {
	It("accepts a closed Hamiltonian skeleton", func() {
		Expect(ValidateCycleSkeleton([]uint64{0, 1, 2, 3, 0}, 4)).To(BeNil())
	})

	It("rejects one that fails to close", func() {
		Expect(ValidateCycleSkeleton([]uint64{0, 1, 2, 3, 1}, 4)).To(Equal(ErrNotCycleSkeleton))
	})

	It("rejects one with a repeated vertex", func() {
		Expect(ValidateCycleSkeleton([]uint64{0, 1, 1, 3, 0}, 4)).To(Equal(ErrNotCycleSkeleton))
	})
})
