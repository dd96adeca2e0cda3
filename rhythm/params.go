package rhythm

// Verdict banding and on-time window, in milliseconds of mean signed error.
// Fixed by the scoring model, not tunable per call.
const (
	OnTimeBandMs = 10.0  // |error| below this counts as on time
	RushMeanMs   = -20.0 // mean below this: player is rushing
	DragMeanMs   = 20.0  // mean above this: player is dragging
)

// Params holds all detection and matching parameters.
type Params struct {
	// Adaptive threshold: max(noiseFloor*NoiseFloorMultiplier+NoiseFloorAdd, MinThreshold).
	NoiseFloorMultiplier float64
	NoiseFloorAdd        float64
	MinThreshold         float64

	// Peaks must clear threshold*StrengthMultiplier.
	StrengthMultiplier float64

	// Minimum time between accepted onsets.
	MinSeparationMs float64

	// Maximum onset-to-beat distance for a match, in seconds.
	ToleranceSec float64

	// High-pass cutoff applied before the onset-strength stage.
	HighpassCutoffHz float64

	// STFT framing for the onset-strength provider.
	WindowSize int
	HopSize    int

	// Tempo used when the estimator cannot find enough beats.
	FallbackBPM float64
}

// NewDefaultParams creates default parameters.
func NewDefaultParams() *Params {
	return &Params{
		NoiseFloorMultiplier: 3.0,
		NoiseFloorAdd:        0.1,
		MinThreshold:         0.15,
		StrengthMultiplier:   1.5,
		MinSeparationMs:      50.0,
		ToleranceSec:         0.15,
		HighpassCutoffHz:     60.0,
		WindowSize:           1024,
		HopSize:              512,
		FallbackBPM:          120.0,
	}
}
