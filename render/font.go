package render

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Font defines the parameters for rendering text on an image using GoCV
type Font struct {
	Face      gocv.HersheyFont
	Scale     float64
	Color     color.RGBA
	Thickness int
	LineType  gocv.LineType
}

// DefaultFont returns default font settings
func DefaultFont() Font {
	return Font{
		Face:      gocv.FontHersheySimplex,
		Scale:     0.5,
		Color:     White,
		Thickness: 1,
		LineType:  gocv.LineAA,
	}
}

// SpeedLabel writes the current speed onto the frame at the given position
func SpeedLabel(img *gocv.Mat, font Font, speed float64, unit string,
	at image.Point) {

	text := fmt.Sprintf("%.1f %s", speed, unit)

	gocv.PutTextWithParams(img, text, at, font.Face, font.Scale,
		font.Color, font.Thickness, font.LineType, false)
}
