package kde

import (
	"fmt"
	"math"
	"sort"

	"github.com/uyouii/score-predictor/common"
	"github.com/uyouii/score-predictor/model"
	"gonum.org/v1/gonum/floats"
)

// KDEUnivariate smooths a sample with a gaussian kernel on an even grid.
type KDEUnivariate struct {
	// endogenous variable, sorted
	Endog []float64

	gridSize int

	// An adjustment factor for the bw. Bandwidth becomes bw * adjust.
	bwAdjust float64

	// Defines the length of the grid past the lowest and highest values
	// of x so that the kernel goes to zero. The end points are
	// min(x) - cut * bw and max(x) + cut * bw. The lower end is kept at
	// zero or above when the sample has no negative values.
	cut float64

	density []model.Density
	bw      float64
	fited   bool
	kernel  *GaussianKernel
}

// NewKDEUnivariate copies endog. Zero gridSize, bwAdjust and cut take the defaults.
func NewKDEUnivariate(endog []float64, gridSize int, bwAdjust, cut float64) (*KDEUnivariate, error) {
	if len(endog) < MinPointCnt {
		return nil, fmt.Errorf("%w: kde needs at least %d points, got %d",
			common.ErrorInvalidValue, MinPointCnt, len(endog))
	}

	xs := append([]float64(nil), endog...)
	sort.Float64s(xs)

	if gridSize <= 0 {
		gridSize = DefaultGridSize
	}
	if bwAdjust <= 0 {
		bwAdjust = DefaultBwAdjust
	}
	if cut <= 0 {
		cut = DefaultCut
	}

	return &KDEUnivariate{
		Endog:    xs,
		gridSize: gridSize,
		bwAdjust: bwAdjust,
		cut:      cut,
		kernel:   NewGaussianKernel(),
	}, nil
}

// Kdensity returns the estimated density on the grid and the bandwidth used.
func (kde *KDEUnivariate) Kdensity() ([]model.Density, float64, error) {
	if kde.fited {
		return kde.density, kde.bw, nil
	}

	bw := NewNormalReferenceBandWidth(kde.kernel).BandWidth(kde.Endog) * kde.bwAdjust
	if bw <= 0 || math.IsNaN(bw) {
		return nil, 0, fmt.Errorf("%w: bandwidth %v", common.ErrorInvalidValue, bw)
	}

	lower, upper := floats.Min(kde.Endog), floats.Max(kde.Endog)
	a := lower - kde.cut*bw
	if lower >= 0 {
		a = math.Max(a, 0)
	}
	b := upper + kde.cut*bw
	grid := linspace(a, b, kde.gridSize)

	n := float64(len(kde.Endog))
	row := make([]float64, len(kde.Endog))
	res := make([]model.Density, 0, len(grid))
	for _, x := range grid {
		for j, xj := range kde.Endog {
			row[j] = kde.kernel.Shape((xj - x) / bw)
		}
		res = append(res, model.Density{
			X:     x,
			Value: floats.Sum(row) / (n * bw),
		})
	}

	kde.density = res
	kde.bw = bw
	kde.fited = true

	return res, bw, nil
}

// Smooth is a shortcut for NewKDEUnivariate(xs, gridSize, 0, 0).Kdensity().
func Smooth(xs []float64, gridSize int) ([]model.Density, error) {
	k, err := NewKDEUnivariate(xs, gridSize, 0, 0)
	if err != nil {
		return nil, err
	}
	density, _, err := k.Kdensity()
	return density, err
}
