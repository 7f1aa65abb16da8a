package predictor

import (
	"context"
	"fmt"
	"math"

	"github.com/uyouii/score-predictor/chart"
	"github.com/uyouii/score-predictor/common"
	"github.com/uyouii/score-predictor/model"
	"github.com/uyouii/score-predictor/session"
	"github.com/uyouii/score-predictor/utils"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

type Options struct {
	Mode         model.Mode
	DropNegative bool
	SampleCount  int
	Chart        chart.Options
}

func DefaultOptions() Options {
	return Options{
		Mode:        model.ContinuousMode,
		SampleCount: DefaultSampleCount,
		Chart:       chart.DefaultOptions(),
	}
}

// Predictor runs one interaction: parse, estimate, simulate, chart and query.
type Predictor struct {
	opts Options
	src  rand.Source
}

// New returns a Predictor drawing from src. A nil src uses the global source.
func New(opts Options, src rand.Source) *Predictor {
	if opts.Mode == "" {
		opts.Mode = model.ContinuousMode
	}
	if opts.SampleCount == 0 {
		opts.SampleCount = DefaultSampleCount
	}
	return &Predictor{
		opts: opts,
		src:  src,
	}
}

func (p *Predictor) Options() Options {
	return p.opts
}

// Step is the slider granularity for mode.
func Step(mode model.Mode) float64 {
	if mode.IsDiscrete() {
		return DiscreteStep
	}
	return ContinuousStep
}

// SliderBounds spans 0 up to the largest observed score or mu + 3 sigma,
// whichever is higher.
func SliderBounds(series model.ScoreSeries, est model.Estimate, mode model.Mode) model.SliderBounds {
	upper := math.Max(series.Max(), est.Mu+BoundsZScore*est.Sigma)
	// tolerate float noise such as 5.000000000000001
	upper = math.Max(math.Ceil(upper-boundsTolerance), MinUpperBound)
	return model.SliderBounds{
		Min:  0,
		Max:  upper,
		Step: Step(mode),
	}
}

// DefaultSelection centers the point on mu and the interval on mu +/- sigma.
func DefaultSelection(est model.Estimate, bounds model.SliderBounds) model.QuerySelection {
	return model.QuerySelection{
		Point: utils.SnapToStep(est.Mu, bounds.Step),
		Low:   utils.FloorToStep(est.Mu-est.Sigma, bounds.Step),
		High:  utils.CeilToStep(est.Mu+est.Sigma, bounds.Step),
	}
}

// Predict computes the full report for raw. A nil state starts from the
// default selection. Any error aborts the whole interaction.
func (p *Predictor) Predict(ctx context.Context, raw string, state *session.State,
	in session.Input) (*model.Report, error) {
	logger := utils.GetLogger(ctx)

	series, err := ParseScores(raw, p.opts.DropNegative)
	if err != nil {
		logger.Debug("ParseScores failed", zap.String("raw", raw), zap.Error(err))
		return nil, err
	}

	est, err := Estimate(series)
	if err != nil {
		logger.Debug("Estimate failed", zap.Error(err))
		return nil, err
	}

	bounds := SliderBounds(series, est, p.opts.Mode)
	if math.IsInf(bounds.Max, 0) {
		err := fmt.Errorf("%w: scores too large, mu + 3 sigma overflows (%s)",
			common.ErrorInvalidParameter, est.DebugString())
		logger.Debug("SliderBounds failed", zap.Error(err))
		return nil, err
	}
	defaults := DefaultSelection(est, bounds)
	if state == nil {
		state = session.NewState()
	}
	selection := state.Resolve(raw, bounds, defaults, in)

	sample, err := Simulate(est, p.opts.SampleCount, p.opts.Mode, p.src)
	if err != nil {
		logger.Debug("Simulate failed", zap.Error(err))
		return nil, err
	}

	c, err := chart.Build(sample, est, p.opts.Chart)
	if err != nil {
		logger.Debug("chart Build failed", zap.Error(err))
		return nil, err
	}

	pointProb, intervalProb, err := p.query(est, selection)
	if err != nil {
		logger.Debug("query failed", zap.Any("selection", selection), zap.Error(err))
		return nil, err
	}

	report := &model.Report{
		Input:               raw,
		Mode:                p.opts.Mode,
		Series:              series,
		Estimate:            est,
		Bounds:              bounds,
		Selection:           selection,
		Sample:              sample,
		Chart:               c,
		PointProbability:    pointProb,
		IntervalProbability: intervalProb,
		Formatted: model.FormattedReport{
			Mu:       fmt.Sprintf("%.2f", est.Mu),
			Sigma:    fmt.Sprintf("%.2f", est.Sigma),
			Point:    fmt.Sprintf("%.4f", pointProb),
			Interval: utils.FormatPercent(intervalProb),
		},
	}

	logger.Debug("predict success", zap.String("estimate", est.DebugString()),
		zap.Int("draws", len(sample.Values)), zap.Float64("point", pointProb),
		zap.Float64("interval", intervalProb))
	return report, nil
}

func (p *Predictor) query(est model.Estimate, sel model.QuerySelection) (float64, float64, error) {
	if p.opts.Mode.IsDiscrete() {
		return PointMass(sel.Point, est), IntervalSum(sel.Low, sel.High, est), nil
	}

	density, err := Density(sel.Point, est)
	if err != nil {
		return 0, 0, err
	}
	return density, Interval(sel.Low, sel.High, est), nil
}
