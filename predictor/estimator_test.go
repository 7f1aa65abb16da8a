package predictor

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/score-predictor/common"
	"github.com/uyouii/score-predictor/model"
	"golang.org/x/exp/rand"
)

func TestEstimateDefaultScores(t *testing.T) {
	series, err := ParseScores(DefaultScores, false)
	require.NoError(t, err)

	est, err := Estimate(series)
	require.NoError(t, err)
	assert.InDelta(t, 2.3, est.Mu, 1e-12)
	assert.InDelta(t, 0.9, est.Sigma, 1e-12)
	assert.Equal(t, 10, est.N)
}

func TestEstimateSingleValue(t *testing.T) {
	est, err := Estimate(model.ScoreSeries{3.7})
	require.NoError(t, err)
	assert.Equal(t, 3.7, est.Mu)
	assert.Equal(t, 0.0, est.Sigma)
	assert.True(t, est.IsDegenerate())
}

func TestEstimateIdenticalValues(t *testing.T) {
	est, err := Estimate(model.ScoreSeries{2, 2, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, 2.0, est.Mu)
	assert.Equal(t, 0.0, est.Sigma)
}

func TestEstimateEmpty(t *testing.T) {
	_, err := Estimate(nil)
	assert.True(t, errors.Is(err, common.ErrorEmptySeries))
}

// sigma uses divisor N: sigma^2 == mean(x^2) - mean(x)^2
func TestEstimatePopulationVariance(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		n := 1 + rnd.Intn(30)
		series := make(model.ScoreSeries, n)
		sum, sumSq := 0.0, 0.0
		for i := range series {
			series[i] = math.Round(rnd.Float64()*100) / 10
			sum += series[i]
			sumSq += series[i] * series[i]
		}

		est, err := Estimate(series)
		require.NoError(t, err)

		mean := sum / float64(n)
		want := math.Sqrt(math.Max(sumSq/float64(n)-mean*mean, 0))
		assert.InDelta(t, mean, est.Mu, 1e-9)
		assert.InDelta(t, want, est.Sigma, 1e-6, "series %v", series)
	}
}

func TestEstimateLargeScores(t *testing.T) {
	est, err := Estimate(model.ScoreSeries{1e200, -1e200})
	require.NoError(t, err)
	assert.Equal(t, 0.0, est.Mu)
	assert.InDelta(t, 1.0, est.Sigma/1e200, 1e-12)

	est, err = Estimate(model.ScoreSeries{math.MaxFloat64, math.MaxFloat64})
	require.NoError(t, err)
	assert.Equal(t, math.MaxFloat64, est.Mu)
	assert.Equal(t, 0.0, est.Sigma)
}
