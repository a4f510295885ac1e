package filter

import (
	"image"
	"math"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/stat/distuv"
)

// updateWeights measures every particle against the target appearance on
// the given grayscale frame.  Each particle's box is cropped from the
// frame, reduced to an intensity histogram and compared with the reference
// histogram through the Hellinger distance.  Distances convert to weights
// through a zero mean Gaussian density with standard deviation
// 1/MeasurementSigma, then the weights are normalised to sum to 1
func (p *Particles) updateWeights(cfg Config, tm *TargetModel, gray gocv.Mat) {

	bounds := image.Rect(0, 0, gray.Cols(), gray.Rows())

	density := distuv.Normal{Mu: 0, Sigma: 1 / cfg.MeasurementSigma}

	for i := 0; i < p.n; i++ {
		x, y, _, _ := p.StateAt(i)
		p.boxes[i] = tm.boxAt(x, y)

		hist := cropHist(gray, p.boxes[i].Intersect(bounds), cfg.Bins)
		d := Hellinger(hist, tm.hist)

		p.weights[i] = density.Prob(d)
	}

	normalizeWeights(p.weights)
}

// cropHist computes the intensity histogram of the given frame region.  A
// region with zero area, which happens when a particle drifts fully
// outside the frame, yields an all zero histogram so the particle scores
// the maximal Hellinger distance instead of faulting
func cropHist(gray gocv.Mat, rect image.Rectangle, bins int) []float64 {

	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return make([]float64, bins)
	}

	crop := gray.Region(rect)
	defer crop.Close()

	return grayHist(crop, bins)
}

// Hellinger returns the Hellinger distance between two histograms of equal
// bin count.  Both are normalised to sum to 1 before comparison.  The
// distance is bounded to [0,1], is 0 for identical distributions and 1 for
// distributions with disjoint support.  A histogram with zero total mass is
// treated as maximally distant
func Hellinger(h, ref []float64) float64 {

	hSum := 0.0
	refSum := 0.0

	for i := range h {
		hSum += h[i]
		refSum += ref[i]
	}

	if hSum == 0 || refSum == 0 {
		return 1
	}

	bc := 0.0

	for i := range h {
		bc += math.Sqrt(h[i] / hSum * ref[i] / refSum)
	}

	// floating error can push the coefficient a hair past 1
	if bc > 1 {
		bc = 1
	}

	return math.Sqrt(1 - bc)
}

// normalizeWeights scales the weight vector to sum to 1.  A degenerate
// vector, all zero or non finite, falls back to the uniform distribution
// rather than dividing by zero
func normalizeWeights(w []float64) {

	sum := 0.0

	for _, v := range w {
		sum += v
	}

	if sum <= 0 || math.IsInf(sum, 0) || math.IsNaN(sum) {
		for i := range w {
			w[i] = 1 / float64(len(w))
		}
		return
	}

	for i := range w {
		w[i] /= sum
	}
}
