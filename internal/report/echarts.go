// Package report renders segmentation results for human review: interactive
// HTML charts via go-echarts and static PNG plots via gonum/plot. It
// consumes plain series, index and segment data; nothing in the analysis
// pipeline depends on it.
package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/fisia-labs/repmotion/internal/segment"
)

// RenderSegments writes an HTML chart of the segmented series to w, one line
// series per repetition so the boundaries are visible at a glance.
func RenderSegments(w io.Writer, title string, segments []segment.Segment) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1100px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("%d repetitions", len(segments))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Sample"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Signal"}),
	)

	for i, seg := range segments {
		data := make([]opts.LineData, 0, seg.Len())
		for j, v := range seg.Values {
			data = append(data, opts.LineData{Value: []interface{}{seg.Start + j, v}})
		}
		line.AddSeries(fmt.Sprintf("Rep %d", i+1), data,
			charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.4)}))
	}

	if err := line.Render(w); err != nil {
		return fmt.Errorf("rendering segment chart: %w", err)
	}
	return nil
}

// RenderExtrema writes an HTML chart of the conditioned series with detected
// peaks and valleys overlaid.
func RenderExtrema(w io.Writer, title string, xs []float64, peaks, valleys []int) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1100px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("%d peaks, %d valleys", len(peaks), len(valleys))}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Sample"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Signal"}),
	)

	data := make([]opts.LineData, 0, len(xs))
	for i, v := range xs {
		data = append(data, opts.LineData{Value: []interface{}{i, v}})
	}
	line.AddSeries("signal", data)

	scatter := charts.NewScatter()
	scatter.AddSeries("peaks", extremaScatter(xs, peaks),
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))
	scatter.AddSeries("valleys", extremaScatter(xs, valleys),
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))
	line.Overlap(scatter)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("rendering extrema chart: %w", err)
	}
	return nil
}

func extremaScatter(xs []float64, indices []int) []opts.ScatterData {
	data := make([]opts.ScatterData, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(xs) {
			data = append(data, opts.ScatterData{Value: []interface{}{i, xs[i]}})
		}
	}
	return data
}
