package rhythm

// Threshold holds the detection floor and the derived peak-acceptance level.
type Threshold struct {
	Base float64 // detection floor
	Peak float64 // Base * StrengthMultiplier, the level onsets must clear
}

// AdaptiveThreshold scales the measured noise floor into a detection
// threshold. The minimum floor keeps the threshold usable on silent input:
// a zero noise floor still yields MinThreshold, never zero.
func AdaptiveThreshold(noiseFloor float64, p *Params) Threshold {
	base := noiseFloor*p.NoiseFloorMultiplier + p.NoiseFloorAdd
	if base < p.MinThreshold {
		base = p.MinThreshold
	}
	return Threshold{
		Base: base,
		Peak: base * p.StrengthMultiplier,
	}
}
