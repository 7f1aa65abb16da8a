// Package chart turns simulated draws into the data a renderer needs: a
// histogram, the fitted normal density and an optional kernel smoothing.
package chart

import (
	"errors"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/uyouii/score-predictor/common"
	"github.com/uyouii/score-predictor/kde"
	"github.com/uyouii/score-predictor/model"
	"github.com/uyouii/score-predictor/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	DefaultBins        = 10
	DefaultCurvePoints = 100
	// MaxDiscreteBins caps the unit-width bins of a discrete sample. Wider
	// spans are grouped into Bins integer-aligned bins.
	MaxDiscreteBins    = 200
)

type Options struct {
	// Bins is the number of equal-width bins in continuous mode. Discrete
	// samples get one bin per integer up to MaxDiscreteBins.
	Bins        int
	Overlay     bool
	Smooth      bool
	CurvePoints int
}

func DefaultOptions() Options {
	return Options{
		Bins:        DefaultBins,
		Overlay:     true,
		CurvePoints: DefaultCurvePoints,
	}
}

func (o Options) withDefaults() Options {
	if o.Bins <= 0 {
		o.Bins = DefaultBins
	}
	if o.CurvePoints < 2 {
		o.CurvePoints = DefaultCurvePoints
	}
	return o
}

// Build bins the sample. An empty sample gives a chart without bins.
func Build(sample *model.SimulatedSample, est model.Estimate, opts Options) (*model.Chart, error) {
	opts = opts.withDefaults()

	res := &model.Chart{Kind: model.HistogramChart}
	if sample.IsEmpty() {
		return res, nil
	}

	xs := append([]float64(nil), sample.Values...)
	sort.Float64s(xs)

	dividers := histogramDividers(xs, sample.Mode, opts.Bins)
	counts := stat.Histogram(nil, dividers, xs, nil)

	n := float64(len(xs))
	res.Bins = make([]model.Bin, len(counts))
	for i, count := range counts {
		bin := model.Bin{
			Lower: dividers[i],
			Upper: dividers[i+1],
			Count: count,
		}
		if width := bin.Width(); width > 0 {
			bin.Density = count / (n * width)
		}
		res.Bins[i] = bin
	}

	lower, upper := dividers[0], dividers[len(dividers)-1]
	if opts.Overlay && !est.IsDegenerate() {
		res.Curve = normalCurve(est, lower, upper, opts.CurvePoints)
		res.Kind = model.HistogramDensityChart
	}

	if opts.Smooth {
		smoothed, err := kde.Smooth(xs, opts.CurvePoints)
		switch {
		case err == nil:
			res.Smoothed = smoothed
		case !errors.Is(err, common.ErrorInvalidValue):
			return nil, err
		}
	}

	res.Summary = summarize(xs)
	return res, nil
}

// histogramDividers expects xs sorted. The last divider is strictly above
// the largest value, as stat.Histogram requires.
func histogramDividers(xs []float64, mode model.Mode, bins int) []float64 {
	lower, upper := xs[0], xs[len(xs)-1]

	// half-integer edges stop existing once the draws pass 2^52
	if mode.IsDiscrete() && lower-0.5 != lower && upper+0.5 != upper {
		return integerDividers(math.Round(lower), math.Round(upper), bins)
	}

	if lower == upper {
		pad := math.Max(0.5, math.Abs(lower)*1e-9)
		lower, upper = lower-pad, upper+pad
	}
	dividers := floats.Span(make([]float64, bins+1), lower, upper)
	dividers[bins] = math.Nextafter(upper, math.Inf(1))
	return dividers
}

// integerDividers centres unit bins on the integers in [lower, upper], or
// groups them into at most bins wider integer-aligned bins when the span
// exceeds MaxDiscreteBins.
func integerDividers(lower, upper float64, bins int) []float64 {
	span := upper - lower + 1
	width := 1.0
	if span > MaxDiscreteBins {
		width = math.Ceil(span / float64(bins))
	}

	cnt := int(math.Ceil(span / width))
	dividers := make([]float64, cnt+1)
	for i := range dividers {
		dividers[i] = lower - 0.5 + float64(i)*width
	}
	return dividers
}

// normalCurve evaluates the pdf on the standardized grid so huge sigmas do
// not overflow sigma*sigma.
func normalCurve(est model.Estimate, lower, upper float64, points int) []model.Density {
	grid := floats.Span(make([]float64, points), lower, upper)

	res := make([]model.Density, len(grid))
	for i, x := range grid {
		res[i] = model.Density{X: x, Value: distuv.UnitNormal.Prob((x-est.Mu)/est.Sigma) / est.Sigma}
	}
	return res
}

func summarize(sorted []float64) model.SampleSummary {
	sample := stats.Sample{Xs: sorted, Sorted: true}
	lo, hi := sample.Bounds()

	res := model.SampleSummary{
		Count:  len(sorted),
		Min:    lo,
		Max:    hi,
		Mean:   sample.Mean(),
		StdDev: scaledStdDev(sorted),
		Q05:    stat.Quantile(0.05, stat.Empirical, sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Q95:    stat.Quantile(0.95, stat.Empirical, sorted, nil),
	}
	if math.IsNaN(res.StdDev) {
		res.StdDev = 0
	}
	return res
}

// scaledStdDev divides by the largest magnitude first when squaring the draws
// would overflow.
func scaledStdDev(xs []float64) float64 {
	scale := utils.MagnitudeScale(xs)
	if scale == 1 {
		return stats.Sample{Xs: xs, Sorted: true}.StdDev()
	}
	return stats.Sample{Xs: utils.DivideAll(xs, scale), Sorted: true}.StdDev() * scale
}
