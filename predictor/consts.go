package predictor

const (
	DefaultScores      = "1,2,2,3,3,2,1,4,2,3"
	DefaultSampleCount = 1000

	ContinuousStep = 0.5
	DiscreteStep   = 1.0

	// upper slider bound covers at least mu + BoundsZScore * sigma
	BoundsZScore  = 3.0
	MinUpperBound = 1.0

	boundsTolerance = 1e-9

	// beyond this many integers IntervalSum uses the closed form
	MaxIntervalSumTerms = 100000

	scoreSeparator = ","
)
