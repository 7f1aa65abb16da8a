package common

import (
	"errors"
	"fmt"
)

var (
	ErrorParse                  = errors.New("invalid score")
	ErrorEmptySeries            = errors.New("no scores to analyse")
	ErrorInvalidParameter       = errors.New("invalid parameter")
	ErrorDegenerateDistribution = errors.New("degenerate distribution: standard deviation is zero")
	ErrorInvalidValue           = errors.New("invalid value")
)

// ParseError reports the first token of an input that is not a finite number.
type ParseError struct {
	Token string
	Index int
	Err   error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid score %q at position %d: %v", e.Token, e.Index+1, e.Err)
	}
	return fmt.Sprintf("invalid score %q at position %d", e.Token, e.Index+1)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) Is(target error) bool {
	return target == ErrorParse
}
