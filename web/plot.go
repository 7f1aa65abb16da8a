package web

import (
	"fmt"
	"strings"

	"github.com/uyouii/score-predictor/model"
)

const (
	plotWidth   = 640.0
	plotHeight  = 320.0
	plotPadding = 32.0
)

type barView struct {
	X, Y, W, H float64
	Label      string
}

type tickView struct {
	X     float64
	Label string
}

// plotView is a chart laid out in SVG coordinates.
type plotView struct {
	Width, Height float64
	Baseline      float64
	Kind          model.ChartKind
	Bars          []barView
	Curve         string
	Smoothed      string
	Ticks         []tickView
}

func newPlotView(c *model.Chart) *plotView {
	if c.IsEmpty() {
		return nil
	}

	lower, upper := c.Bins[0].Lower, c.Bins[len(c.Bins)-1].Upper
	top := c.MaxDensity()
	if top <= 0 {
		top = 1
	}

	innerW, innerH := plotWidth-2*plotPadding, plotHeight-2*plotPadding
	xOf := func(x float64) float64 {
		return plotPadding + (x-lower)/(upper-lower)*innerW
	}
	yOf := func(y float64) float64 {
		return plotPadding + innerH - y/top*innerH
	}

	res := &plotView{
		Width:    plotWidth,
		Height:   plotHeight,
		Baseline: yOf(0),
		Kind:     c.Kind,
	}
	for _, b := range c.Bins {
		x0, x1 := xOf(b.Lower), xOf(b.Upper)
		y := yOf(b.Density)
		res.Bars = append(res.Bars, barView{
			X:     x0,
			Y:     y,
			W:     x1 - x0,
			H:     res.Baseline - y,
			Label: fmt.Sprintf("[%.2f, %.2f): %.0f", b.Lower, b.Upper, b.Count),
		})
		res.Ticks = append(res.Ticks, tickView{X: xOf(b.Center()), Label: fmt.Sprintf("%.1f", b.Center())})
	}
	res.Curve = polyline(c.Curve, xOf, yOf)
	res.Smoothed = polyline(c.Smoothed, xOf, yOf)
	return res
}

func polyline(points []model.Density, xOf, yOf func(float64) float64) string {
	var sb strings.Builder
	for i, p := range points {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", xOf(p.X), yOf(p.Value))
	}
	return sb.String()
}
