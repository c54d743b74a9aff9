// Package ceplane renders a cost-effectiveness plane to a raster image.
package ceplane

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Params describes one incremental comparison to draw: the base-case
// point at (DeltaQALY, DeltaCost), a dashed line at slope ICER, and a
// dotted threshold line at slope WTP.
type Params struct {
	DeltaQALY float64
	DeltaCost float64
	ICER      float64
	WTP       float64
}

// minQALYSpan keeps the x axis from collapsing when the QALY delta is tiny.
const minQALYSpan = 1.0

var (
	pointColor = color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}
	icerColor  = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	wtpColor   = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
)

// Render draws the CE plane and writes it to path as a PNG, silently
// overwriting any existing file. Numeric results must already have been
// reported by the caller; a write failure here only loses the chart.
func Render(p Params, path string) error {
	plt := plot.New()
	plt.Title.Text = "Cost-Effectiveness Plane"
	plt.X.Label.Text = "Δ QALYs"
	plt.Y.Label.Text = "Δ Cost (£)"

	xSpan := math.Max(minQALYSpan, math.Abs(p.DeltaQALY)*1.2)
	ySpan := math.Max(math.Abs(p.DeltaCost)*1.2, xSpan*math.Max(math.Abs(p.ICER), p.WTP))
	plt.X.Min, plt.X.Max = -xSpan, xSpan
	plt.Y.Min, plt.Y.Max = -ySpan, ySpan

	plt.Add(plotter.NewGrid())

	hzero, err := plotter.NewLine(plotter.XYs{{X: -xSpan, Y: 0}, {X: xSpan, Y: 0}})
	if err != nil {
		return fmt.Errorf("ceplane: zero axis: %w", err)
	}
	vzero, err := plotter.NewLine(plotter.XYs{{X: 0, Y: -ySpan}, {X: 0, Y: ySpan}})
	if err != nil {
		return fmt.Errorf("ceplane: zero axis: %w", err)
	}
	plt.Add(hzero, vzero)

	base, err := plotter.NewScatter(plotter.XYs{{X: p.DeltaQALY, Y: p.DeltaCost}})
	if err != nil {
		return fmt.Errorf("ceplane: base-case point: %w", err)
	}
	base.GlyphStyle.Shape = draw.CircleGlyph{}
	base.GlyphStyle.Radius = vg.Points(5)
	base.GlyphStyle.Color = pointColor

	icerLine := plotter.NewFunction(func(x float64) float64 { return p.ICER * x })
	icerLine.LineStyle.Color = icerColor
	icerLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}

	wtpLine := plotter.NewFunction(func(x float64) float64 { return p.WTP * x })
	wtpLine.LineStyle.Color = wtpColor
	wtpLine.LineStyle.Dashes = []vg.Length{vg.Points(1), vg.Points(3)}

	plt.Add(icerLine, wtpLine, base)
	plt.Legend.Add("Base case ICER", base)
	plt.Legend.Add("Cost/QALY", icerLine)
	plt.Legend.Add("WTP threshold", wtpLine)
	plt.Legend.Top = true
	plt.Legend.Left = true

	if err := plt.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("ceplane: write %s: %w", path, err)
	}
	return nil
}
