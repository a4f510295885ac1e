package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// TrailStyle defines the parameters used for rendering the estimate trail
type TrailStyle struct {
	LineColor     color.RGBA
	LineThickness int
	// CircleRadius is the size of the dot marking the most recent
	// position, 0 disables the marker
	CircleRadius int
	CircleColor  color.RGBA
}

// DefaultTrailStyle returns default trail settings
func DefaultTrailStyle() TrailStyle {
	return TrailStyle{
		LineColor:     Yellow,
		LineThickness: 2,
		CircleRadius:  4,
		CircleColor:   Red,
	}
}

// Trail draws the history of estimated positions as a polyline ending in a
// marker on the most recent position
func Trail(img *gocv.Mat, points []image.Point, style TrailStyle) {

	for i := 1; i < len(points); i++ {
		gocv.Line(img, points[i-1], points[i], style.LineColor,
			style.LineThickness)
	}

	if style.CircleRadius > 0 && len(points) > 0 {
		gocv.Circle(img, points[len(points)-1], style.CircleRadius,
			style.CircleColor, -1)
	}
}
