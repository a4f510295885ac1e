// Package render draws tracking output onto video frames.  All functions
// mutate the passed Mat in place and feed nothing back into the trackers
package render

import (
	"gocv.io/x/gocv"

	"github.com/swdee/go-balltrack/filter"
)

const (
	// particleMarkRadius is the radius of the circle marking each
	// particle position
	particleMarkRadius = 10
	particleThickness  = 1
	estimateThickness  = 2
)

// ParticleCloud renders the hypothesis population, a red circle on each
// particle position and a blue box for each particle's appearance window
func ParticleCloud(img *gocv.Mat, p *filter.Particles) {

	boxes := p.Boxes()

	for i, center := range p.Centers() {
		gocv.Circle(img, center, particleMarkRadius, Red, particleThickness)
		gocv.Rectangle(img, boxes[i], Blue, particleThickness)
	}
}

// EstimateBox renders the filter's point estimate as a green box
func EstimateBox(img *gocv.Mat, est filter.Estimate) {
	gocv.Rectangle(img, est.Box, Green, estimateThickness)
}
