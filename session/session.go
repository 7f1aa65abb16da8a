package session

import (
	"math"

	"github.com/uyouii/score-predictor/model"
	"github.com/uyouii/score-predictor/utils"
)

// Input carries the slider values submitted with an interaction. A nil or
// non-finite field keeps the remembered value.
type Input struct {
	Point *float64 `json:"point,omitempty"`
	Low   *float64 `json:"low,omitempty"`
	High  *float64 `json:"high,omitempty"`
}

func (in Input) IsEmpty() bool {
	return in.Point == nil && in.Low == nil && in.High == nil
}

// State remembers the last query selection between interactions. It is
// reset whenever the raw score input changes. State is not safe for
// concurrent use.
type State struct {
	lastInput   string
	initialized bool
	selection   model.QuerySelection
}

func NewState() *State {
	return &State{}
}

// Resolve returns the selection to query for raw. A new raw input resets the
// selection to defaults and ignores in.
func (s *State) Resolve(raw string, bounds model.SliderBounds, defaults model.QuerySelection,
	in Input) model.QuerySelection {
	if !s.initialized || raw != s.lastInput {
		s.lastInput = raw
		s.initialized = true
		s.selection = Normalize(defaults, bounds)
		return s.selection
	}

	sel := s.selection
	apply(&sel.Point, in.Point)
	apply(&sel.Low, in.Low)
	apply(&sel.High, in.High)
	s.selection = Normalize(sel, bounds)
	return s.selection
}

func apply(dst, v *float64) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return
	}
	*dst = *v
}

func (s *State) Selection() (model.QuerySelection, bool) {
	return s.selection, s.initialized
}

func (s *State) LastInput() string {
	return s.lastInput
}

func (s *State) Reset() {
	*s = State{}
}

// Normalize snaps every value to the slider step, clamps it into bounds and
// orders the interval. NaN falls back to bounds.Min.
func Normalize(sel model.QuerySelection, bounds model.SliderBounds) model.QuerySelection {
	fit := func(x float64) float64 {
		if math.IsNaN(x) {
			return bounds.Min
		}
		return utils.Clamp(utils.SnapToStep(x, bounds.Step), bounds.Min, bounds.Max)
	}

	res := model.QuerySelection{
		Point: fit(sel.Point),
		Low:   fit(sel.Low),
		High:  fit(sel.High),
	}
	if res.Low > res.High {
		res.Low, res.High = res.High, res.Low
	}
	return res
}
