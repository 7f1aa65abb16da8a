package kde

const (
	DefaultGridSize = 100
	DefaultBwAdjust = 1.0

	// the grid extends DefaultCut bandwidths past the data so the kernel tails reach ~0
	DefaultCut = 3.0

	// IQR of a standard normal
	iqrNormalize = 1.349

	MinPointCnt = 2
)
