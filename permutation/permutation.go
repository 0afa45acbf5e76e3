// Package permutation samples a uniform random permutation of
// {0, ..., n-1} using a Fisher-Yates backward shuffle, drawing its
// randomness from an entropy.Source.
package permutation

import (
	"math/bits"

	"github.com/gtanzer/zk/entropy"
)

// Sample returns a permutation pi of {0, ..., n-1} with pi chosen
// uniformly over the symmetric group on n elements. n must be at least
// 1. The rejection-sampling bound used for each draw is the smallest
// power of two strictly greater than the current index, which is
// tighter than bounding every draw against n (spec's "possibly-buggy
// source behavior" called out the looser n-based bound as a candidate
// for tightening).
func Sample(n int, src *entropy.Source) ([]uint64, error) {
	pi := make([]uint64, n)
	for i := range pi {
		pi[i] = uint64(i)
	}

	for i := n - 1; i > 0; i-- {
		bound := nextPow2GreaterThan(i)
		var j uint64
		for {
			u, err := src.U64()
			if err != nil {
				return nil, err
			}
			j = u % bound
			if j <= uint64(i) {
				break
			}
		}
		pi[i], pi[j] = pi[j], pi[i]
	}

	return pi, nil
}

// nextPow2GreaterThan returns the smallest power of two strictly
// greater than i, for i >= 1.
func nextPow2GreaterThan(i int) uint64 {
	return uint64(1) << bits.Len64(uint64(i))
}
