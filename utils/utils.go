package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

func FormatFloat(f float64, round int32) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	scale := math.Pow10(int(round))
	return math.Round(f*scale) / scale
}

// FormatPercent renders a probability as a percentage with two decimals, e.g. 0.5 -> "50.00%".
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p*100)
}

// SnapToStep rounds x to the nearest multiple of step.
func SnapToStep(x, step float64) float64 {
	if step <= 0 {
		return x
	}
	return math.Round(x/step) * step
}

func FloorToStep(x, step float64) float64 {
	if step <= 0 {
		return x
	}
	return math.Floor(x/step) * step
}

func CeilToStep(x, step float64) float64 {
	if step <= 0 {
		return x
	}
	return math.Ceil(x/step) * step
}

func Clamp(x, lower, upper float64) float64 {
	return math.Min(math.Max(x, lower), upper)
}

// largeMagnitude is where squaring a value gets within reach of overflow.
const largeMagnitude = 1e150

// MagnitudeScale returns max|x| when the values are large enough that sums of
// squares could overflow, otherwise 1.
func MagnitudeScale(xs []float64) float64 {
	if len(xs) == 0 {
		return 1
	}
	scale := math.Max(math.Abs(floats.Min(xs)), math.Abs(floats.Max(xs)))
	if scale < largeMagnitude {
		return 1
	}
	return scale
}

// DivideAll returns xs divided by scale. Dividing keeps x/x exact, which
// multiplying by a subnormal 1/scale does not.
func DivideAll(xs []float64, scale float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		res[i] = x / scale
	}
	return res
}
