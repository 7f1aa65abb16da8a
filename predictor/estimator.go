package predictor

import (
	"fmt"
	"math"

	"github.com/uyouii/score-predictor/common"
	"github.com/uyouii/score-predictor/model"
	"github.com/uyouii/score-predictor/utils"
	"gonum.org/v1/gonum/stat"
)

// Estimate fits the normal model. Sigma is the population standard
// deviation (divisor N), so a single score gives sigma == 0.
// Scores large enough to overflow the sum of squares are fitted on a scaled
// copy and scaled back.
func Estimate(series model.ScoreSeries) (model.Estimate, error) {
	if len(series) == 0 {
		return model.Estimate{}, common.ErrorEmptySeries
	}

	var mean, std float64
	if scale := utils.MagnitudeScale(series); scale != 1 {
		mean, std = stat.PopMeanStdDev(utils.DivideAll(series, scale), nil)
		mean, std = mean*scale, std*scale
	} else {
		mean, std = stat.PopMeanStdDev(series, nil)
	}
	if len(series) == 1 {
		std = 0
	}

	if math.IsInf(mean, 0) || math.IsInf(std, 0) || math.IsNaN(mean) || math.IsNaN(std) {
		return model.Estimate{}, fmt.Errorf("%w: scores too large to fit, mu=%v sigma=%v",
			common.ErrorInvalidParameter, mean, std)
	}

	return model.Estimate{
		Mu:    mean,
		Sigma: std,
		N:     len(series),
	}, nil
}
