package filter

import (
	"image"
	"testing"

	"gocv.io/x/gocv"
)

func TestNewTargetModel(t *testing.T) {

	roi := newGrayMat(30, 20, 100)
	defer roi.Close()

	tm, err := NewTargetModel(roi, image.Rect(50, 60, 80, 80), 50)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tm.Width() != 30 || tm.Height() != 20 {
		t.Errorf("target dims are %dx%d, expected 30x20", tm.Width(), tm.Height())
	}

	x, y := tm.Midpoint()

	if x != 65 || y != 70 {
		t.Errorf("midpoint is (%f,%f), expected (65,70)", x, y)
	}

	if len(tm.Edges()) != 51 {
		t.Errorf("expected 51 bin edges, got %d", len(tm.Edges()))
	}

	// all 600 pixels share one intensity so the histogram concentrates
	// its full mass in a single bin
	total := 0.0
	nonZero := 0

	for _, v := range tm.Hist() {
		total += v
		if v > 0 {
			nonZero++
		}
	}

	if total != 600 {
		t.Errorf("histogram mass is %f, expected 600", total)
	}

	if nonZero != 1 {
		t.Errorf("histogram spread over %d bins, expected 1", nonZero)
	}
}

func TestNewTargetModelDegenerateROI(t *testing.T) {

	roi := newGrayMat(10, 10, 100)
	defer roi.Close()

	cases := []struct {
		name string
		rect image.Rectangle
	}{
		{"zero width", image.Rect(10, 10, 10, 30)},
		{"zero height", image.Rect(10, 10, 30, 10)},
		{"empty", image.Rectangle{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewTargetModel(roi, tc.rect, 50); err == nil {
				t.Error("expected construction to fail")
			}
		})
	}
}

func TestNewTargetModelEmptyCrop(t *testing.T) {

	empty := gocv.NewMat()
	defer empty.Close()

	if _, err := NewTargetModel(empty, image.Rect(0, 0, 10, 10), 50); err == nil {
		t.Error("expected empty crop to fail")
	}
}

func TestCropHistZeroArea(t *testing.T) {

	frame := newGrayMat(100, 100, 50)
	defer frame.Close()

	// a particle fully outside the frame clips to an empty rect and must
	// produce an all zero histogram, not a fault
	hist := cropHist(frame, image.Rect(0, 0, 0, 0), 50)

	if len(hist) != 50 {
		t.Fatalf("histogram has %d bins, expected 50", len(hist))
	}

	for i, v := range hist {
		if v != 0 {
			t.Errorf("bin %d is %f, expected 0", i, v)
		}
	}
}
