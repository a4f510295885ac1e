package filter

import (
	"fmt"
	"image"
	"math"
	"math/rand"

	"gocv.io/x/gocv"
)

// Estimate is the filter's per-frame point estimate of the target state,
// the posterior mean of the particle population with its derived
// bounding box
type Estimate struct {
	// X and Y are the estimated target midpoint in pixels
	X float64
	Y float64
	// VX and VY are the estimated velocity in pixels per second
	VX float64
	VY float64
	// Box is the target box centered at the estimated position
	Box image.Rectangle
}

// Speed returns the magnitude of the estimated velocity
func (e Estimate) Speed() float64 {
	return math.Hypot(e.VX, e.VY)
}

// Tracker runs the particle filter over a frame sequence.  It owns its
// particle population exclusively and processes frames one at a time in
// delivery order, there is no concurrency inside the filter
type Tracker struct {
	cfg       Config
	target    *TargetModel
	particles *Particles
	rnd       *rand.Rand
	estimate  Estimate
	resampled bool
}

// NewTracker builds a tracker from a target model and configuration.  rnd
// is the randomness source for particle initialisation, process noise and
// resampling, seed it for reproducible runs.  The initial population is
// drawn immediately and an initial estimate computed before any frame is
// seen
func NewTracker(cfg Config, tm *TargetModel, rnd *rand.Rand) (*Tracker, error) {

	if cfg.ParticleCount <= 0 {
		return nil, fmt.Errorf("particle count %d must be positive",
			cfg.ParticleCount)
	}

	if cfg.MeasurementSigma <= 0 {
		return nil, fmt.Errorf("measurement sigma %f must be positive",
			cfg.MeasurementSigma)
	}

	if tm == nil {
		return nil, fmt.Errorf("target model is required")
	}

	if rnd == nil {
		rnd = rand.New(rand.NewSource(rand.Int63()))
	}

	t := &Tracker{
		cfg:       cfg,
		target:    tm,
		particles: newParticles(cfg, tm, rnd),
		rnd:       rnd,
		resampled: true,
	}

	t.updateEstimate()

	return t, nil
}

// Step processes one grayscale frame given the time elapsed since the
// previous frame and returns the updated estimate.  The pipeline order is
// fixed: propagate, weight, resample, estimate
func (t *Tracker) Step(gray gocv.Mat, dt float64) Estimate {

	t.particles.propagate(t.cfg, dt, t.rnd)
	t.particles.updateWeights(t.cfg, t.target, gray)

	t.resampled = true

	if t.cfg.ResampleESS > 0 &&
		effectiveSampleSize(t.particles.weights) > t.cfg.ResampleESS {
		t.resampled = false
	}

	if t.resampled {
		t.particles.resample(t.rnd)
	}

	t.updateEstimate()

	return t.estimate
}

// updateEstimate reduces the population to the posterior mean.  After a
// resample the weights are uniform so the unweighted mean applies, when
// the effective sample size gate skipped resampling the weighted mean is
// used instead
func (t *Tracker) updateEstimate() {

	var sx, sy, svx, svy float64

	for i := 0; i < t.particles.n; i++ {
		x, y, vx, vy := t.particles.StateAt(i)

		w := 1 / float64(t.particles.n)
		if !t.resampled {
			w = t.particles.weights[i]
		}

		sx += w * x
		sy += w * y
		svx += w * vx
		svy += w * vy
	}

	t.estimate = Estimate{
		X:   sx,
		Y:   sy,
		VX:  svx,
		VY:  svy,
		Box: t.target.boxAt(sx, sy),
	}
}

// Estimate returns the most recent point estimate
func (t *Tracker) Estimate() Estimate {
	return t.estimate
}

// Particles exposes the population for rendering and diagnostics.  Callers
// must not mutate it
func (t *Tracker) Particles() *Particles {
	return t.particles
}

// Target returns the tracker's target model
func (t *Tracker) Target() *TargetModel {
	return t.target
}
