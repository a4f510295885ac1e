package filter

import (
	"math"
	"testing"
)

// almostEqual checks if two float64 values are approximately equal
func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestHellingerIdentical(t *testing.T) {

	h := []float64{4, 2, 0, 8, 6}

	d := Hellinger(h, h)

	if !almostEqual(d, 0, 1e-9) {
		t.Errorf("identical histograms expected distance 0, got %f", d)
	}

	// scaling one histogram must not matter, comparison is on the
	// normalised distributions
	scaled := []float64{8, 4, 0, 16, 12}

	d = Hellinger(h, scaled)

	if !almostEqual(d, 0, 1e-9) {
		t.Errorf("scaled histogram expected distance 0, got %f", d)
	}
}

func TestHellingerDisjoint(t *testing.T) {

	a := []float64{5, 3, 0, 0}
	b := []float64{0, 0, 2, 7}

	d := Hellinger(a, b)

	if !almostEqual(d, 1, 1e-9) {
		t.Errorf("disjoint support expected distance 1, got %f", d)
	}
}

func TestHellingerSymmetricAndBounded(t *testing.T) {

	cases := []struct {
		name string
		a, b []float64
	}{
		{"partial overlap", []float64{1, 2, 3, 0}, []float64{0, 3, 2, 1}},
		{"heavy skew", []float64{100, 1, 0, 0}, []float64{1, 100, 0, 0}},
		{"uniform vs peaked", []float64{1, 1, 1, 1}, []float64{0, 0, 4, 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ab := Hellinger(tc.a, tc.b)
			ba := Hellinger(tc.b, tc.a)

			if !almostEqual(ab, ba, 1e-12) {
				t.Errorf("distance not symmetric: %f vs %f", ab, ba)
			}

			if ab < 0 || ab > 1 {
				t.Errorf("distance %f outside [0,1]", ab)
			}
		})
	}
}

func TestHellingerZeroMass(t *testing.T) {

	// an all zero histogram comes from a particle crop fully outside the
	// frame and must score as maximally distant
	empty := []float64{0, 0, 0}
	ref := []float64{1, 2, 3}

	if d := Hellinger(empty, ref); d != 1 {
		t.Errorf("zero mass histogram expected distance 1, got %f", d)
	}
}

func TestNormalizeWeights(t *testing.T) {

	w := []float64{2, 6, 2}
	normalizeWeights(w)

	sum := 0.0
	for _, v := range w {
		sum += v
	}

	if !almostEqual(sum, 1, 1e-9) {
		t.Errorf("weights sum to %f, expected 1", sum)
	}

	if !almostEqual(w[1], 0.6, 1e-9) {
		t.Errorf("weight proportion lost, got %f", w[1])
	}
}

func TestNormalizeWeightsDegenerate(t *testing.T) {

	cases := []struct {
		name string
		w    []float64
	}{
		{"all zero", []float64{0, 0, 0, 0}},
		{"nan", []float64{math.NaN(), 0, 0, 0}},
		{"inf", []float64{math.Inf(1), 1, 1, 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			normalizeWeights(tc.w)

			for i, v := range tc.w {
				if !almostEqual(v, 1/float64(len(tc.w)), 1e-12) {
					t.Errorf("weight %d is %f, expected uniform fallback", i, v)
				}
			}
		})
	}
}
