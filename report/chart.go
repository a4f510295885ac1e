package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteHTML renders an interactive run report to a single HTML page with a
// ball speed chart and a per-frame processing latency chart
func WriteHTML(file, unit string, speeds, latencies []float64) error {

	page := components.NewPage()
	page.AddCharts(
		lineChart("Ball speed", unit, speeds),
		lineChart("Processing latency", "s", latencies),
	)

	f, err := os.Create(file)

	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}

	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	return nil
}

// lineChart builds a single line chart of per-frame values
func lineChart(title, unit string, values []float64) *charts.Line {

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: "frame"}),
		charts.WithYAxisOpts(opts.YAxis{Name: unit}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	labels := make([]string, len(values))
	data := make([]opts.LineData, len(values))

	for i, v := range values {
		labels[i] = fmt.Sprint(i)
		data[i] = opts.LineData{Value: v}
	}

	line.SetXAxis(labels).AddSeries(title, data)

	return line
}
