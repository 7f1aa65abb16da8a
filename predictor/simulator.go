package predictor

import (
	"fmt"
	"math"

	"github.com/uyouii/score-predictor/common"
	"github.com/uyouii/score-predictor/model"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Simulate draws count values from Normal(mu, sigma). In discrete mode each
// draw is rounded half away from zero and negative results are dropped.
// A nil src uses the global source.
func Simulate(est model.Estimate, count int, mode model.Mode, src rand.Source) (*model.SimulatedSample, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: sample count %d must be positive", common.ErrorInvalidParameter, count)
	}
	if est.Sigma < 0 || !isFinite(est.Sigma) || !isFinite(est.Mu) {
		return nil, fmt.Errorf("%w: %s", common.ErrorInvalidParameter, est.DebugString())
	}

	normalDist := distuv.Normal{
		Mu:    est.Mu,
		Sigma: est.Sigma,
		Src:   src,
	}

	values := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		v := normalDist.Rand()
		if math.IsInf(v, 0) {
			continue
		}
		if mode.IsDiscrete() {
			v = math.Round(v)
			if v < 0 {
				continue
			}
			// math.Round(-0.4) is -0
			v = math.Abs(v)
		}
		values = append(values, v)
	}

	return &model.SimulatedSample{
		Mode:      mode,
		Requested: count,
		Values:    values,
	}, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
