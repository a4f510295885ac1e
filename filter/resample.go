package filter

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// resample replaces the population by drawing N ancestors from the current
// population with probability proportional to weight (multinomial
// resampling).  For each output slot a uniform draw is placed into the
// cumulative weight sequence with a binary search, selecting the smallest
// index whose cumulative weight covers it.  Weights reset to uniform
// afterwards since the draw itself now encodes the weighting
func (p *Particles) resample(rnd *rand.Rand) {

	cum := make([]float64, p.n)
	total := 0.0

	for i, w := range p.weights {
		total += w
		cum[i] = total
	}

	prior := mat.DenseCopyOf(p.states)

	for i := 0; i < p.n; i++ {
		u := rnd.Float64()

		idx := sort.SearchFloat64s(cum, u)

		// floating error at u close to 1 can push the search past the
		// last ancestor
		if idx >= p.n {
			idx = 0
		}

		for s := 0; s < nStates; s++ {
			p.states.Set(s, i, prior.At(s, idx))
		}
	}

	for i := range p.weights {
		p.weights[i] = 1 / float64(p.n)
	}
}

// effectiveSampleSize returns 1/sum(w^2), the standard degeneracy measure
// of a normalised weight vector.  It ranges from 1 when all weight sits on
// one particle up to N for uniform weights
func effectiveSampleSize(w []float64) float64 {

	sum := 0.0

	for _, v := range w {
		sum += v * v
	}

	if sum == 0 {
		return 0
	}

	return 1 / sum
}
