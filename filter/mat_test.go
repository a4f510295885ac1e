package filter

import (
	"image"

	"gocv.io/x/gocv"
)

// newGrayMat returns a single channel Mat of the given size filled with a
// uniform intensity
func newGrayMat(w, h int, value float64) gocv.Mat {

	m := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC1)
	m.SetTo(gocv.NewScalar(value, 0, 0, 0))

	return m
}

// fillRect paints a uniform intensity into a region of a grayscale Mat,
// clipped to the Mat bounds
func fillRect(m *gocv.Mat, rect image.Rectangle, value float64) {

	clipped := rect.Intersect(image.Rect(0, 0, m.Cols(), m.Rows()))

	if clipped.Empty() {
		return
	}

	region := m.Region(clipped)
	defer region.Close()

	region.SetTo(gocv.NewScalar(value, 0, 0, 0))
}
