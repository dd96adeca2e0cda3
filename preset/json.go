package preset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/algo-rhythm/rhythm"
)

// File is the JSON schema for detection presets. Every field is optional;
// absent fields keep their defaults.
type File struct {
	NoiseFloorMultiplier *float64 `json:"noise_floor_multiplier"`
	NoiseFloorAdd        *float64 `json:"noise_floor_add"`
	MinThreshold         *float64 `json:"min_threshold"`
	StrengthMultiplier   *float64 `json:"strength_multiplier"`
	MinSeparationMs      *float64 `json:"min_separation_ms"`
	ToleranceSec         *float64 `json:"tolerance_sec"`
	HighpassCutoffHz     *float64 `json:"highpass_cutoff_hz"`
	WindowSize           *int     `json:"window_size"`
	HopSize              *int     `json:"hop_size"`
	FallbackBPM          *float64 `json:"fallback_bpm"`
}

// LoadJSON loads a preset JSON file and applies it on top of default params.
func LoadJSON(path string) (*rhythm.Params, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}

	p := rhythm.NewDefaultParams()
	if err := ApplyFile(p, &f); err != nil {
		return nil, err
	}
	return p, nil
}

// ApplyFile applies a parsed preset file onto an existing params object.
func ApplyFile(dst *rhythm.Params, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination params")
	}
	if f == nil {
		return nil
	}

	if f.NoiseFloorMultiplier != nil {
		if *f.NoiseFloorMultiplier <= 0 {
			return fmt.Errorf("noise_floor_multiplier must be > 0")
		}
		dst.NoiseFloorMultiplier = *f.NoiseFloorMultiplier
	}
	if f.NoiseFloorAdd != nil {
		if *f.NoiseFloorAdd < 0 {
			return fmt.Errorf("noise_floor_add must be >= 0")
		}
		dst.NoiseFloorAdd = *f.NoiseFloorAdd
	}
	if f.MinThreshold != nil {
		if *f.MinThreshold <= 0 {
			return fmt.Errorf("min_threshold must be > 0")
		}
		dst.MinThreshold = *f.MinThreshold
	}
	if f.StrengthMultiplier != nil {
		// The peak threshold must stay strictly above the detection floor.
		if *f.StrengthMultiplier <= 1 {
			return fmt.Errorf("strength_multiplier must be > 1")
		}
		dst.StrengthMultiplier = *f.StrengthMultiplier
	}
	if f.MinSeparationMs != nil {
		if *f.MinSeparationMs < 0 {
			return fmt.Errorf("min_separation_ms must be >= 0")
		}
		dst.MinSeparationMs = *f.MinSeparationMs
	}
	if f.ToleranceSec != nil {
		if *f.ToleranceSec <= 0 {
			return fmt.Errorf("tolerance_sec must be > 0")
		}
		dst.ToleranceSec = *f.ToleranceSec
	}
	if f.HighpassCutoffHz != nil {
		if *f.HighpassCutoffHz <= 0 {
			return fmt.Errorf("highpass_cutoff_hz must be > 0")
		}
		dst.HighpassCutoffHz = *f.HighpassCutoffHz
	}
	if f.WindowSize != nil {
		if *f.WindowSize < 2 {
			return fmt.Errorf("window_size must be >= 2")
		}
		dst.WindowSize = *f.WindowSize
	}
	if f.HopSize != nil {
		if *f.HopSize < 1 {
			return fmt.Errorf("hop_size must be >= 1")
		}
		dst.HopSize = *f.HopSize
	}
	if f.HopSize != nil || f.WindowSize != nil {
		if dst.HopSize > dst.WindowSize {
			return fmt.Errorf("hop_size must not exceed window_size")
		}
	}
	if f.FallbackBPM != nil {
		if *f.FallbackBPM <= 0 {
			return fmt.Errorf("fallback_bpm must be > 0")
		}
		dst.FallbackBPM = *f.FallbackBPM
	}
	return nil
}
