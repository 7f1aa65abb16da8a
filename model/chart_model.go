package model

type ChartKind string

const (
	HistogramChart        ChartKind = "histogram"
	HistogramDensityChart ChartKind = "histogram+density"
)

type Density struct {
	X     float64 `json:"x"`
	Value float64 `json:"y"`
}

type Bin struct {
	Lower   float64 `json:"lower"`
	Upper   float64 `json:"upper"`
	Count   float64 `json:"count"`
	Density float64 `json:"density"`
}

func (b Bin) Width() float64 {
	return b.Upper - b.Lower
}

func (b Bin) Center() float64 {
	return (b.Lower + b.Upper) / 2
}

type SampleSummary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Q05    float64 `json:"q05"`
	Median float64 `json:"median"`
	Q95    float64 `json:"q95"`
}

type Chart struct {
	Kind     ChartKind     `json:"kind"`
	Bins     []Bin         `json:"bins"`
	Curve    []Density     `json:"curve,omitempty"`    // normal density of the fitted model
	Smoothed []Density     `json:"smoothed,omitempty"` // kernel density of the draws
	Summary  SampleSummary `json:"summary"`
}

func (c *Chart) IsEmpty() bool {
	if c == nil {
		return true
	}
	return len(c.Bins) == 0
}

// MaxDensity is the tallest value among bins and curves, used to scale plots.
func (c *Chart) MaxDensity() float64 {
	res := 0.0
	if c == nil {
		return res
	}
	for _, b := range c.Bins {
		res = max(res, b.Density)
	}
	for _, d := range c.Curve {
		res = max(res, d.Value)
	}
	for _, d := range c.Smoothed {
		res = max(res, d.Value)
	}
	return res
}
