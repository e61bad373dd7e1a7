package recommend

// Weights control the relative influence of the three scorers. They are
// engine configuration, loaded from the config file rather than hardcoded.
type Weights struct {
	// Fit rewards candidates that leave less idle time in the free window
	// they land in.
	Fit float64

	// Earliness rewards starts close to the job's earliest allowed start.
	Earliness float64

	// Balance rewards workers holding fewer assignments this week.
	Balance float64
}

// DefaultWeights weighs all three scorers equally.
func DefaultWeights() Weights {
	return Weights{Fit: 1.0, Earliness: 1.0, Balance: 1.0}
}
