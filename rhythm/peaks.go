package rhythm

import (
	"math"
	"sort"
)

// Onset is a detected event: a time in seconds and the envelope value that
// produced it.
type Onset struct {
	Time     float64 `json:"time"`
	Strength float64 `json:"strength"`
}

type peakCandidate struct {
	frame    int
	strength float64
}

// PickPeaks extracts temporally isolated local maxima from an onset-strength
// envelope. Candidates are interior frames that rise strictly from the left,
// do not rise to the right (a plateau is accepted only on its rising edge)
// and reach the peak threshold. Acceptance is strongest-first: a weak early
// peak inside the exclusion window of a stronger later one is suppressed,
// which a left-to-right scan would get wrong. Equal strengths are ordered by
// earliest frame so results are deterministic.
//
// Returned onsets are chronological and no two are closer than the minimum
// separation. An envelope shorter than three frames has no interior and
// yields no onsets.
func PickPeaks(env []float64, peakThreshold float64, sampleRate, hopSize int, minSeparationMs float64) []Onset {
	if len(env) < 3 {
		return nil
	}
	minFrames := int(math.Round(minSeparationMs / 1000.0 * float64(sampleRate) / float64(hopSize)))

	var candidates []peakCandidate
	for i := 1; i < len(env)-1; i++ {
		if env[i] < peakThreshold {
			continue
		}
		if env[i] > env[i-1] && env[i] >= env[i+1] {
			candidates = append(candidates, peakCandidate{frame: i, strength: env[i]})
		}
	}

	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].strength != candidates[b].strength {
			return candidates[a].strength > candidates[b].strength
		}
		return candidates[a].frame < candidates[b].frame
	})

	var accepted []peakCandidate
	for _, c := range candidates {
		tooClose := false
		for _, a := range accepted {
			if abs(c.frame-a.frame) < minFrames {
				tooClose = true
				break
			}
		}
		if !tooClose {
			accepted = append(accepted, c)
		}
	}

	sort.Slice(accepted, func(a, b int) bool {
		return accepted[a].frame < accepted[b].frame
	})

	onsets := make([]Onset, len(accepted))
	for i, c := range accepted {
		onsets[i] = Onset{
			Time:     float64(c.frame) * float64(hopSize) / float64(sampleRate),
			Strength: c.strength,
		}
	}
	return onsets
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
