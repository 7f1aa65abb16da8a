package model

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

type Mode string

const (
	ContinuousMode Mode = "continuous"
	DiscreteMode   Mode = "discrete"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ContinuousMode, "":
		return ContinuousMode, nil
	case DiscreteMode:
		return DiscreteMode, nil
	}
	return "", fmt.Errorf("unknown mode %q, want %q or %q", s, ContinuousMode, DiscreteMode)
}

func (m Mode) IsDiscrete() bool {
	return m == DiscreteMode
}

// ScoreSeries is a parsed list of past scores, in input order.
type ScoreSeries []float64

func (s ScoreSeries) Max() float64 {
	if len(s) == 0 {
		return 0
	}
	return floats.Max(s)
}

type Estimate struct {
	Mu    float64 `json:"mu"`
	Sigma float64 `json:"sigma"`
	N     int     `json:"n"`
}

func (e Estimate) IsDegenerate() bool {
	return e.Sigma == 0
}

func (e Estimate) DebugString() string {
	return fmt.Sprintf("mu: %v, sigma: %v, n: %v", e.Mu, e.Sigma, e.N)
}

// SimulatedSample holds the draws shown in the chart. In discrete mode
// negative draws are dropped, so len(Values) may be below Requested.
type SimulatedSample struct {
	Mode      Mode      `json:"mode"`
	Requested int       `json:"requested"`
	Values    []float64 `json:"values"`
}

func (s *SimulatedSample) IsEmpty() bool {
	if s == nil {
		return true
	}
	return len(s.Values) == 0
}

type SliderBounds struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// QuerySelection is the single score and the inclusive interval the user asks about.
type QuerySelection struct {
	Point float64 `json:"point"`
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
}

type Report struct {
	Input     string           `json:"input"`
	Mode      Mode             `json:"mode"`
	Series    ScoreSeries      `json:"series"`
	Estimate  Estimate         `json:"estimate"`
	Bounds    SliderBounds     `json:"bounds"`
	Selection QuerySelection   `json:"selection"`
	Sample    *SimulatedSample `json:"sample,omitempty"`
	Chart     *Chart           `json:"chart,omitempty"`

	// PointProbability is a density in continuous mode and a mass in discrete mode.
	PointProbability    float64 `json:"point_probability"`
	IntervalProbability float64 `json:"interval_probability"`

	Formatted FormattedReport `json:"formatted"`
}

type FormattedReport struct {
	Mu       string `json:"mu"`
	Sigma    string `json:"sigma"`
	Point    string `json:"point"`
	Interval string `json:"interval"`
}

func (r *Report) PointLabel() string {
	if r.Mode.IsDiscrete() {
		return "Probability"
	}
	return "Density"
}
