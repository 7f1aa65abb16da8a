package predictor

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/uyouii/score-predictor/common"
	"github.com/uyouii/score-predictor/model"
)

// ParseScores splits raw on commas and parses every token as a float.
// Any bad token fails the whole input. With dropNegative, values below zero
// are skipped once they have parsed.
func ParseScores(raw string, dropNegative bool) (model.ScoreSeries, error) {
	tokens := strings.Split(raw, scoreSeparator)
	res := make(model.ScoreSeries, 0, len(tokens))

	for i, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, &common.ParseError{Token: token, Index: i, Err: fmt.Errorf("empty value")}
		}

		value, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, &common.ParseError{Token: token, Index: i, Err: err}
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, &common.ParseError{Token: token, Index: i, Err: fmt.Errorf("not a finite number")}
		}

		if dropNegative && value < 0 {
			continue
		}
		res = append(res, value)
	}

	if len(res) == 0 {
		return nil, common.ErrorEmptySeries
	}
	return res, nil
}
