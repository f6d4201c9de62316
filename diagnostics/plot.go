// Package diagnostics renders Gaussian process posteriors for visual
// inspection.
package diagnostics

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/gaussproc/pkg/errors"
)

// Posterior is the part of a one-dimensional model needed for plotting.
// *gp.GaussianProcess[float64] satisfies it.
type Posterior interface {
	Predict(x []float64) ([]float64, error)
	CredibleInterval(x []float64) (float64, error)
	NumberOfSamples() int
	Sample(i int) (input, output []float64, err error)
	InputDimension() int
}

// PlotConfig controls PlotPosterior1D.
type PlotConfig struct {
	Title  string
	Min    float64
	Max    float64
	Points int
	// Output selects the output dimension to draw.
	Output int
	Width  vg.Length
	Height vg.Length
}

func (c *PlotConfig) defaults() {
	if c.Points < 2 {
		c.Points = 200
	}
	if c.Width == 0 {
		c.Width = 6 * vg.Inch
	}
	if c.Height == 0 {
		c.Height = 4 * vg.Inch
	}
	if c.Title == "" {
		c.Title = "Gaussian process posterior"
	}
}

// PlotPosterior1D draws the posterior mean, the 95% credible band and the
// training samples of a model with one input dimension over [Min, Max],
// and saves the figure to filename. The format follows the extension.
func PlotPosterior1D(m Posterior, cfg PlotConfig, filename string) error {
	cfg.defaults()
	if m.InputDimension() != 1 {
		return errors.NewDimensionError("diagnostics.PlotPosterior1D", 1, m.InputDimension(), 0)
	}
	if !(cfg.Max > cfg.Min) {
		return errors.NewValidationError("range", "Max must be greater than Min", [2]float64{cfg.Min, cfg.Max})
	}

	mean := make(plotter.XYs, cfg.Points)
	upper := make(plotter.XYs, cfg.Points)
	lower := make(plotter.XYs, cfg.Points)
	step := (cfg.Max - cfg.Min) / float64(cfg.Points-1)
	for i := range mean {
		x := cfg.Min + float64(i)*step
		y, err := m.Predict([]float64{x})
		if err != nil {
			return err
		}
		if cfg.Output < 0 || cfg.Output >= len(y) {
			return errors.NewValidationError("output", "out of range", cfg.Output)
		}
		ci, err := m.CredibleInterval([]float64{x})
		if err != nil {
			return err
		}
		v := y[cfg.Output]
		mean[i] = plotter.XY{X: x, Y: v}
		upper[i] = plotter.XY{X: x, Y: v + ci}
		lower[i] = plotter.XY{X: x, Y: v - ci}
	}

	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	// band polygon: upper left to right, then lower right to left
	band := make(plotter.XYs, 0, 2*cfg.Points)
	band = append(band, upper...)
	for i := len(lower) - 1; i >= 0; i-- {
		band = append(band, lower[i])
	}
	poly, err := plotter.NewPolygon(band)
	if err != nil {
		return errors.Wrap(err, "credible band")
	}
	poly.Color = color.RGBA{R: 120, G: 160, B: 220, A: 90}
	poly.LineStyle.Width = 0

	line, err := plotter.NewLine(mean)
	if err != nil {
		return errors.Wrap(err, "posterior mean")
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = color.RGBA{B: 160, A: 255}

	p.Add(poly, line)
	p.Legend.Add("mean", line)
	p.Legend.Add("95% credible interval", poly)

	if n := m.NumberOfSamples(); n > 0 {
		pts := make(plotter.XYs, n)
		for i := range pts {
			in, out, err := m.Sample(i)
			if err != nil {
				return err
			}
			pts[i] = plotter.XY{X: in[0], Y: out[cfg.Output]}
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return errors.Wrap(err, "samples")
		}
		s.GlyphStyle.Color = color.RGBA{R: 200, A: 255}
		s.Radius = vg.Points(3)
		p.Add(s)
		p.Legend.Add("samples", s)
	}

	// vg canvases panic on some degenerate inputs
	return errors.SafeExecute("diagnostics.PlotPosterior1D", func() error {
		if err := p.Save(cfg.Width, cfg.Height, filename); err != nil {
			return errors.Wrapf(err, "save %s", filename)
		}
		return nil
	})
}
