package render

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/swdee/go-balltrack/hough"
)

// Circles renders a Hough detection, every candidate as a green outline
// and the accepted center as a filled red dot
func Circles(img *gocv.Mat, det hough.Detection) {

	for _, c := range det.Candidates {
		gocv.Circle(img, image.Pt(int(c.X), int(c.Y)), int(c.Radius),
			Green, 2)
	}

	if det.Found {
		gocv.Circle(img, det.Center(), 2, Red, 3)
	}
}
