package predictor

import (
	"math"

	"github.com/uyouii/score-predictor/common"
	"github.com/uyouii/score-predictor/model"
	"gonum.org/v1/gonum/stat/distuv"
)

func normal(est model.Estimate) distuv.Normal {
	return distuv.Normal{Mu: est.Mu, Sigma: est.Sigma}
}

// cdf falls back to a unit step at mu when sigma is zero.
func cdf(x float64, est model.Estimate) float64 {
	if est.IsDegenerate() {
		if x >= est.Mu {
			return 1
		}
		return 0
	}
	return normal(est).CDF(x)
}

// Density returns the normal pdf at x. It has no finite value for sigma == 0.
// The pdf is taken on the standardized value so sigma*sigma never overflows.
func Density(x float64, est model.Estimate) (float64, error) {
	if est.IsDegenerate() {
		return 0, common.ErrorDegenerateDistribution
	}
	return distuv.UnitNormal.Prob((x-est.Mu)/est.Sigma) / est.Sigma, nil
}

// PointMass approximates P(round(X) == k) with a continuity correction.
func PointMass(k float64, est model.Estimate) float64 {
	k = math.Round(k)
	return cdf(k+0.5, est) - cdf(k-0.5, est)
}

// Interval returns P(a < X <= b). The bounds may come in either order.
func Interval(a, b float64, est model.Estimate) float64 {
	if a > b {
		a, b = b, a
	}
	return cdf(b, est) - cdf(a, est)
}

// IntervalSum adds the point masses of every integer in [a, b].
func IntervalSum(a, b float64, est model.Estimate) float64 {
	if a > b {
		a, b = b, a
	}
	lower, upper := math.Round(a), math.Round(b)
	// past 2^53 neighbouring integers collapse, so the sum has no distinct terms
	if upper-lower > MaxIntervalSumTerms || lower+1 == lower || upper+1 == upper {
		return cdf(upper+0.5, est) - cdf(lower-0.5, est)
	}

	res := 0.0
	terms := int(upper - lower)
	for i := 0; i <= terms; i++ {
		res += PointMass(lower+float64(i), est)
	}
	return res
}
