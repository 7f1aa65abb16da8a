package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/score-predictor/common"
	"github.com/uyouii/score-predictor/model"
	"github.com/uyouii/score-predictor/session"
	"golang.org/x/exp/rand"
)

func floatPtr(f float64) *float64 {
	return &f
}

func newTestPredictor(mode model.Mode) *Predictor {
	opts := DefaultOptions()
	opts.Mode = mode
	return New(opts, rand.NewSource(11))
}

func TestSliderBounds(t *testing.T) {
	series := model.ScoreSeries{1, 2, 2, 3, 3, 2, 1, 4, 2, 3}
	bounds := SliderBounds(series, model.Estimate{Mu: 2, Sigma: 1, N: 10}, model.ContinuousMode)
	assert.Equal(t, model.SliderBounds{Min: 0, Max: 5, Step: ContinuousStep}, bounds)

	bounds = SliderBounds(model.ScoreSeries{0}, model.Estimate{N: 1}, model.DiscreteMode)
	assert.Equal(t, model.SliderBounds{Min: 0, Max: MinUpperBound, Step: DiscreteStep}, bounds)

	bounds = SliderBounds(model.ScoreSeries{7, 7}, model.Estimate{Mu: 7, N: 2}, model.DiscreteMode)
	assert.Equal(t, 7.0, bounds.Max)

	bounds = SliderBounds(series, defaultEstimate, model.DiscreteMode)
	assert.Equal(t, 5.0, bounds.Max)
}

func TestDefaultSelection(t *testing.T) {
	bounds := model.SliderBounds{Min: 0, Max: 5, Step: 1}
	sel := DefaultSelection(defaultEstimate, bounds)
	assert.Equal(t, model.QuerySelection{Point: 2, Low: 1, High: 4}, sel)

	bounds.Step = 0.5
	sel = DefaultSelection(defaultEstimate, bounds)
	assert.Equal(t, model.QuerySelection{Point: 2.5, Low: 1, High: 3.5}, sel)
}

func TestPredictContinuous(t *testing.T) {
	p := newTestPredictor(model.ContinuousMode)
	report, err := p.Predict(context.Background(), DefaultScores, nil, session.Input{})
	require.NoError(t, err)

	assert.Equal(t, model.ContinuousMode, report.Mode)
	assert.Equal(t, "2.30", report.Formatted.Mu)
	assert.Equal(t, "0.90", report.Formatted.Sigma)
	assert.Len(t, report.Sample.Values, DefaultSampleCount)
	assert.Equal(t, model.HistogramDensityChart, report.Chart.Kind)

	density, err := Density(report.Selection.Point, report.Estimate)
	require.NoError(t, err)
	assert.Equal(t, density, report.PointProbability)
	assert.Equal(t, Interval(report.Selection.Low, report.Selection.High, report.Estimate),
		report.IntervalProbability)
	assert.Equal(t, "Density", report.PointLabel())
	assert.Contains(t, report.Formatted.Interval, "%")
}

func TestPredictDiscrete(t *testing.T) {
	p := newTestPredictor(model.DiscreteMode)
	state := session.NewState()

	report, err := p.Predict(context.Background(), DefaultScores, state, session.Input{})
	require.NoError(t, err)
	assert.Equal(t, "Probability", report.PointLabel())

	report, err = p.Predict(context.Background(), DefaultScores, state, session.Input{
		Point: floatPtr(3), Low: floatPtr(3), High: floatPtr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, model.QuerySelection{Point: 3, Low: 1, High: 3}, report.Selection)
	assert.Equal(t, PointMass(3, report.Estimate), report.PointProbability)
	assert.InDelta(t, IntervalSum(1, 3, report.Estimate), report.IntervalProbability, 1e-12)
	for _, v := range report.Sample.Values {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestPredictRemembersSelectionUntilInputChanges(t *testing.T) {
	p := newTestPredictor(model.ContinuousMode)
	state := session.NewState()
	ctx := context.Background()

	_, err := p.Predict(ctx, DefaultScores, state, session.Input{})
	require.NoError(t, err)
	report, err := p.Predict(ctx, DefaultScores, state, session.Input{Point: floatPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4.0, report.Selection.Point)

	// slider untouched: the remembered value sticks
	report, err = p.Predict(ctx, DefaultScores, state, session.Input{})
	require.NoError(t, err)
	assert.Equal(t, 4.0, report.Selection.Point)

	report, err = p.Predict(ctx, "5,6,7", state, session.Input{Point: floatPtr(1)})
	require.NoError(t, err)
	assert.Equal(t, 6.0, report.Selection.Point)
}

func TestPredictErrors(t *testing.T) {
	ctx := context.Background()
	p := newTestPredictor(model.ContinuousMode)

	_, err := p.Predict(ctx, "a,b", nil, session.Input{})
	assert.True(t, errors.Is(err, common.ErrorParse))

	_, err = p.Predict(ctx, "", nil, session.Input{})
	assert.True(t, errors.Is(err, common.ErrorParse))

	// continuous density is undefined for identical scores
	_, err = p.Predict(ctx, "2,2,2", nil, session.Input{})
	assert.True(t, errors.Is(err, common.ErrorDegenerateDistribution))

	opts := DefaultOptions()
	opts.DropNegative = true
	_, err = New(opts, nil).Predict(ctx, "-1,-2", nil, session.Input{})
	assert.True(t, errors.Is(err, common.ErrorEmptySeries))
}

func TestPredictDiscreteDegenerate(t *testing.T) {
	p := newTestPredictor(model.DiscreteMode)
	report, err := p.Predict(context.Background(), "2,2,2", nil, session.Input{})
	require.NoError(t, err)

	assert.Equal(t, 0.0, report.Estimate.Sigma)
	assert.Equal(t, 1.0, report.PointProbability)
	require.Len(t, report.Sample.Values, DefaultSampleCount)
	assert.Equal(t, "100.00%", report.Formatted.Interval)
}

func TestPredictDiscreteBeyondIntegerPrecision(t *testing.T) {
	p := newTestPredictor(model.DiscreteMode)

	type result struct {
		report *model.Report
		err    error
	}
	done := make(chan result, 1)
	go func() {
		report, err := p.Predict(context.Background(), "1e16", nil, session.Input{})
		done <- result{report, err}
	}()

	var res result
	select {
	case res = <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Predict did not return for a score of 1e16")
	}
	require.NoError(t, res.err)
	assert.Equal(t, 1e16, res.report.Selection.Point)
	assert.Len(t, res.report.Sample.Values, DefaultSampleCount)
	assert.LessOrEqual(t, len(res.report.Chart.Bins), p.Options().Chart.Bins)

	_, err := json.Marshal(res.report)
	require.NoError(t, err)
}

func TestPredictLargeScores(t *testing.T) {
	p := newTestPredictor(model.ContinuousMode)
	report, err := p.Predict(context.Background(), "1e200,-1e200", nil, session.Input{})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, report.Estimate.Sigma/1e200, 1e-12)

	_, err = json.Marshal(report)
	require.NoError(t, err)

	_, err = p.Predict(context.Background(), "1.7e308,-1.7e308", nil, session.Input{})
	assert.True(t, errors.Is(err, common.ErrorInvalidParameter))
}
