package filter

// Config holds the particle filter tuning parameters.  The noise scale
// fields are applied directly as linear scales on standard normal draws,
// they are not variances
type Config struct {
	// ParticleCount is the number of particles N maintained by the filter
	ParticleCount int
	// InitPosScale and InitVelScale spread the initial particle cloud
	// around the region of interest midpoint
	InitPosScale float64
	InitVelScale float64
	// ProcessPosScale and ProcessVelScale set the per-frame motion noise
	// added during propagation
	ProcessPosScale float64
	ProcessVelScale float64
	// MeasurementSigma controls how sharply appearance mismatch is
	// penalised.  The Gaussian used to convert Hellinger distance to a
	// weight has standard deviation 1/MeasurementSigma, so a larger value
	// means sharper discrimination between near and far matches
	MeasurementSigma float64
	// Bins is the number of intensity histogram bins
	Bins int
	// ResampleESS optionally gates resampling on the effective sample
	// size, skipping the resample step while the ESS is above this value.
	// The default of 0 resamples unconditionally every frame
	ResampleESS float64
}

// DefaultConfig returns the default filter configuration
func DefaultConfig() Config {
	return Config{
		ParticleCount:    20,
		InitPosScale:     40,
		InitVelScale:     1,
		ProcessPosScale:  25,
		ProcessVelScale:  20,
		MeasurementSigma: 20,
		Bins:             50,
		ResampleESS:      0,
	}
}
