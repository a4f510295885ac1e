package filter

import (
	"image"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// nStates is the length of the particle state vector (x, y, vx, vy)
const nStates = 4

// Particles owns the filter's hypothesis population, a fixed size set of
// state vectors with parallel weights and derived bounding boxes.  The
// population is mutated in place by the Tracker pipeline and must not be
// shared between trackers
type Particles struct {
	n int
	// states is a 4xN matrix, one column per particle holding
	// (x, y, vx, vy)
	states *mat.Dense
	// weights are the normalised importance weights, they sum to 1
	weights []float64
	// boxes are the per-particle bounding boxes derived from state and
	// target dimensions during the last likelihood update
	boxes []image.Rectangle
}

// newParticles draws the initial population around the target midpoint.
// Positions and velocities are spread by the configured init scales applied
// to independent standard normal draws, velocity means are zero.  Weights
// start uniform
func newParticles(cfg Config, tm *TargetModel, rnd *rand.Rand) *Particles {

	n := cfg.ParticleCount

	p := &Particles{
		n:       n,
		states:  mat.NewDense(nStates, n, nil),
		weights: make([]float64, n),
		boxes:   make([]image.Rectangle, n),
	}

	midX, midY := tm.Midpoint()

	for i := 0; i < n; i++ {
		p.states.Set(0, i, midX+cfg.InitPosScale*rnd.NormFloat64())
		p.states.Set(1, i, midY+cfg.InitPosScale*rnd.NormFloat64())
		p.states.Set(2, i, cfg.InitVelScale*rnd.NormFloat64())
		p.states.Set(3, i, cfg.InitVelScale*rnd.NormFloat64())
		p.weights[i] = 1 / float64(n)
		p.boxes[i] = tm.boxAt(midX, midY)
	}

	return p
}

// propagate advances every particle under the constant velocity model with
// additive process noise:
//
//	state' = A(dt)*state + noiseScale*z
//
// where A is the identity with dt coupling velocity into position and z is
// a fresh standard normal draw per particle.  Positions are not clamped to
// the frame, out of bounds particles are handled by the likelihood step
func (p *Particles) propagate(cfg Config, dt float64, rnd *rand.Rand) {

	a := motionMat(dt)

	var next mat.Dense
	next.Mul(a, p.states)

	for i := 0; i < p.n; i++ {
		next.Set(0, i, next.At(0, i)+cfg.ProcessPosScale*rnd.NormFloat64())
		next.Set(1, i, next.At(1, i)+cfg.ProcessPosScale*rnd.NormFloat64())
		next.Set(2, i, next.At(2, i)+cfg.ProcessVelScale*rnd.NormFloat64())
		next.Set(3, i, next.At(3, i)+cfg.ProcessVelScale*rnd.NormFloat64())
	}

	p.states.Copy(&next)
}

// motionMat builds the constant velocity transition matrix for the given
// time step
func motionMat(dt float64) *mat.Dense {

	a := mat.NewDense(nStates, nStates, nil)

	for i := 0; i < nStates; i++ {
		a.Set(i, i, 1)
	}

	a.Set(0, 2, dt)
	a.Set(1, 3, dt)

	return a
}

// Len returns the population size
func (p *Particles) Len() int {
	return p.n
}

// StateAt returns the state vector of particle i
func (p *Particles) StateAt(i int) (x, y, vx, vy float64) {
	return p.states.At(0, i), p.states.At(1, i),
		p.states.At(2, i), p.states.At(3, i)
}

// Weights returns the current importance weights.  The returned slice is
// the filter's own storage and must not be modified
func (p *Particles) Weights() []float64 {
	return p.weights
}

// Boxes returns the per-particle bounding boxes from the last likelihood
// update
func (p *Particles) Boxes() []image.Rectangle {
	return p.boxes
}

// Centers returns the integer pixel positions of all particles, used for
// rendering the particle cloud
func (p *Particles) Centers() []image.Point {

	pts := make([]image.Point, p.n)

	for i := 0; i < p.n; i++ {
		pts[i] = image.Pt(int(p.states.At(0, i)), int(p.states.At(1, i)))
	}

	return pts
}
