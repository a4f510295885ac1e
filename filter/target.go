package filter

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// intensityRange is the histogram range covering 8 bit grayscale pixels
const intensityRange = 256.0

// TargetModel holds the reference appearance of the tracked object.  It is
// built once from the initial region of interest and never modified
type TargetModel struct {
	// hist is the reference intensity histogram of the target region.
	// Bin counts are raw, normalisation happens at comparison time
	hist []float64
	// edges are the bins+1 boundary values of the histogram bins
	edges []float64
	// width and height are the target box dimensions in pixels
	width  int
	height int
	// midX and midY are the midpoint of the originating rectangle
	midX float64
	midY float64
}

// NewTargetModel builds a target model from a grayscale crop of the initial
// region of interest.  rect is the rectangle the crop was taken from in
// full frame coordinates and bins is the histogram bin count.  A rectangle
// with zero width or height is rejected
func NewTargetModel(roi gocv.Mat, rect image.Rectangle, bins int) (*TargetModel, error) {

	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return nil, fmt.Errorf("region of interest %v has zero area", rect)
	}

	if roi.Empty() {
		return nil, fmt.Errorf("region of interest crop is empty")
	}

	if bins <= 0 {
		return nil, fmt.Errorf("histogram bin count %d must be positive", bins)
	}

	edges := make([]float64, bins+1)

	for i := range edges {
		edges[i] = float64(i) * intensityRange / float64(bins)
	}

	return &TargetModel{
		hist:   grayHist(roi, bins),
		edges:  edges,
		width:  rect.Dx(),
		height: rect.Dy(),
		midX:   float64(rect.Min.X) + float64(rect.Dx())/2,
		midY:   float64(rect.Min.Y) + float64(rect.Dy())/2,
	}, nil
}

// Hist returns the reference histogram bin counts
func (tm *TargetModel) Hist() []float64 {
	return tm.hist
}

// Edges returns the histogram bin edges
func (tm *TargetModel) Edges() []float64 {
	return tm.edges
}

// Width returns the target box width in pixels
func (tm *TargetModel) Width() int {
	return tm.width
}

// Height returns the target box height in pixels
func (tm *TargetModel) Height() int {
	return tm.height
}

// Midpoint returns the midpoint of the initial region of interest
func (tm *TargetModel) Midpoint() (x, y float64) {
	return tm.midX, tm.midY
}

// boxAt centers the target box dimensions at the given position
func (tm *TargetModel) boxAt(x, y float64) image.Rectangle {

	w := float64(tm.width)
	h := float64(tm.height)

	return image.Rect(int(x-w/2), int(y-h/2), int(x+w/2), int(y+h/2))
}

// grayHist computes the intensity histogram of a single channel grayscale
// Mat with the given number of bins over the full 8 bit range
func grayHist(img gocv.Mat, bins int) []float64 {

	hist := gocv.NewMat()
	defer hist.Close()

	mask := gocv.NewMat()
	defer mask.Close()

	gocv.CalcHist([]gocv.Mat{img}, []int{0}, mask, &hist,
		[]int{bins}, []float64{0, intensityRange}, false)

	out := make([]float64, bins)

	for i := 0; i < bins; i++ {
		out[i] = float64(hist.GetFloatAt(i, 0))
	}

	return out
}
