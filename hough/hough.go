// Package hough implements the circle transform tracking alternative.  It
// detects circular edges near an expected ball radius in each frame and
// derives a calibrated physical velocity from the positional change between
// frames
package hough

import (
	"image"
	"math"

	"gocv.io/x/gocv"
)

// Config holds the circle detection parameters.  The defaults follow the
// OpenCV gradient Hough transform tuning used for a ping pong ball
type Config struct {
	// TargetRadius is the expected ball radius in pixels
	TargetRadius int
	// RadiusWindow bounds the search to TargetRadius +/- RadiusWindow
	RadiusWindow int
	// DiameterCM is the physical ball diameter used to calibrate pixel
	// displacement into physical velocity
	DiameterCM float64
	// MinDist is the minimum pixel distance between detected centers
	MinDist float64
	// Param1 and Param2 are the Canny edge threshold and accumulator
	// threshold of the gradient Hough transform
	Param1 float64
	Param2 float64
	// BlurAperture is the median blur kernel size applied before
	// detection, it must be odd
	BlurAperture int
}

// DefaultConfig returns the default circle detection configuration for a
// ping pong ball
func DefaultConfig() Config {
	return Config{
		TargetRadius: 26,
		RadiusWindow: 5,
		DiameterCM:   4,
		MinDist:      20,
		Param1:       50,
		Param2:       30,
		BlurAperture: 5,
	}
}

// Detection is the per-frame output of the circle tracker
type Detection struct {
	// X and Y are the detected ball center in pixels
	X float64
	Y float64
	// Radius is the measured circle radius in pixels, 0 when no circle
	// was accepted this frame
	Radius float64
	// VX and VY are the calibrated velocity in cm/s.  They hold their
	// previous values when the frame yields no usable measurement
	VX float64
	VY float64
	// Found reports whether any circle was detected this frame
	Found bool
	// Candidates holds every circle the transform returned, for
	// diagnostic rendering
	Candidates []Circle
}

// Circle is a single Hough candidate
type Circle struct {
	X      float64
	Y      float64
	Radius float64
}

// Speed returns the magnitude of the calibrated velocity in cm/s
func (d Detection) Speed() float64 {
	return math.Hypot(d.VX, d.VY)
}

// Center returns the detected position as an integer pixel point
func (d Detection) Center() image.Point {
	return image.Pt(int(d.X), int(d.Y))
}

// Tracker tracks the ball with the circle transform.  It keeps the last
// known position and velocity so frames without a detection hold state
// silently instead of failing
type Tracker struct {
	cfg      Config
	havePrev bool
	prevX    float64
	prevY    float64
	velX     float64
	velY     float64

	// history of per-frame detections for reporting
	history []Detection

	blurred gocv.Mat
	circles gocv.Mat
}

// NewTracker builds a circle tracker with the given configuration
func NewTracker(cfg Config) *Tracker {
	return &Tracker{
		cfg:     cfg,
		blurred: gocv.NewMat(),
		circles: gocv.NewMat(),
	}
}

// Close frees the Mats allocated by the tracker
func (t *Tracker) Close() error {

	if err := t.blurred.Close(); err != nil {
		return err
	}

	return t.circles.Close()
}

// Step detects the ball on one grayscale frame given the elapsed time
// since the previous frame.  The candidate whose radius is closest to the
// configured target radius becomes the measurement.  Velocity is the
// positional finite difference over dt scaled to cm/s by the measured
// radius, a zero measured radius or a missing detection holds the previous
// velocity
func (t *Tracker) Step(gray gocv.Mat, dt float64) Detection {

	gocv.MedianBlur(gray, &t.blurred, t.cfg.BlurAperture)

	gocv.HoughCirclesWithParams(t.blurred, &t.circles, gocv.HoughGradient,
		1, t.cfg.MinDist, t.cfg.Param1, t.cfg.Param2,
		t.cfg.TargetRadius-t.cfg.RadiusWindow,
		t.cfg.TargetRadius+t.cfg.RadiusWindow)

	det := Detection{
		X:  t.prevX,
		Y:  t.prevY,
		VX: t.velX,
		VY: t.velY,
	}

	if !t.circles.Empty() {
		best := -1.0

		for i := 0; i < t.circles.Cols(); i++ {
			v := t.circles.GetVecfAt(0, i)
			c := Circle{X: float64(v[0]), Y: float64(v[1]), Radius: float64(v[2])}
			det.Candidates = append(det.Candidates, c)

			diff := math.Abs(c.Radius - float64(t.cfg.TargetRadius))

			if best < 0 || diff < best {
				best = diff
				det.X = c.X
				det.Y = c.Y
				det.Radius = c.Radius
				det.Found = true
			}
		}
	}

	if det.Found && t.havePrev && dt > 0 && det.Radius > 0 {
		// calibration factor from the physical ball size and its
		// measured pixel radius
		cmPerPixel := t.cfg.DiameterCM / (2 * det.Radius)

		det.VX = (det.X - t.prevX) / dt * cmPerPixel
		det.VY = (det.Y - t.prevY) / dt * cmPerPixel
	}

	if det.Found {
		t.prevX = det.X
		t.prevY = det.Y
		t.havePrev = true
	}

	t.velX = det.VX
	t.velY = det.VY

	t.history = append(t.history, det)

	return det
}

// History returns all detections produced so far in frame order
func (t *Tracker) History() []Detection {
	return t.history
}

// Speeds returns the calibrated speed in cm/s of every processed frame,
// used for the speed curve report
func (t *Tracker) Speeds() []float64 {

	out := make([]float64, len(t.history))

	for i, d := range t.history {
		out[i] = d.Speed()
	}

	return out
}
