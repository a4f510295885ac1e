// Package report produces artifacts from a completed tracking run, a speed
// curve plot, an HTML report, a contact sheet of processed frames and an
// MJPEG movie.  It is a pure consumer of tracker output
package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SpeedCurve writes a PNG line plot of per-frame ball speed to file.  unit
// labels the Y axis, cm/s for the calibrated circle tracker or px/s for
// the particle filter
func SpeedCurve(speeds []float64, unit, file string) error {

	if len(speeds) == 0 {
		return fmt.Errorf("no speed samples to plot")
	}

	p := plot.New()
	p.Title.Text = "Ball speed"
	p.X.Label.Text = "frame"
	p.Y.Label.Text = fmt.Sprintf("[%s]", unit)
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(speeds))

	for i, s := range speeds {
		xys[i].X = float64(i)
		xys[i].Y = s
	}

	line, points, err := plotter.NewLinePoints(xys)

	if err != nil {
		return fmt.Errorf("failed to build speed series: %w", err)
	}

	p.Add(line, points)

	if err := p.Save(8*vg.Inch, 5*vg.Inch, file); err != nil {
		return fmt.Errorf("failed to save speed curve: %w", err)
	}

	return nil
}
