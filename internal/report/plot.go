package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SavePNG writes a static plot of the conditioned series with peaks and
// valleys marked, for runs where an HTML viewer is not at hand.
func SavePNG(path, title string, xs []float64, peaks, valleys []int) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Sample"
	p.Y.Label.Text = "Signal"

	pts := make(plotter.XYs, len(xs))
	for i, v := range xs {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("building series line: %w", err)
	}
	line.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add("signal", line)

	peakScatter, err := extremaPoints(xs, peaks, color.RGBA{R: 200, A: 255})
	if err != nil {
		return err
	}
	p.Add(peakScatter)
	p.Legend.Add("peaks", peakScatter)

	valleyScatter, err := extremaPoints(xs, valleys, color.RGBA{B: 200, A: 255})
	if err != nil {
		return err
	}
	p.Add(valleyScatter)
	p.Legend.Add("valleys", valleyScatter)

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}

func extremaPoints(xs []float64, indices []int, c color.RGBA) (*plotter.Scatter, error) {
	pts := make(plotter.XYs, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(xs) {
			pts = append(pts, plotter.XY{X: float64(i), Y: xs[i]})
		}
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("building extrema scatter: %w", err)
	}
	s.GlyphStyle.Color = c
	s.GlyphStyle.Radius = vg.Points(3)
	return s, nil
}
