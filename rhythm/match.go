package rhythm

import "math"

// Match pairs one expected beat with its nearest detected onset. ErrorMs is
// signed: positive means the hit landed late, negative early.
type Match struct {
	BeatTime  float64 `json:"beat_time"`
	OnsetTime float64 `json:"onset_time"`
	ErrorMs   float64 `json:"error_ms"`
}

// MatchOnsets pairs each beat with the nearest onset by absolute time
// difference, searching the whole onset list, and keeps the pair when the
// distance is within tolerance. Beats are matched independently, so one loud
// onset sitting between two tight beats may be credited to both; a stricter
// one-to-one assignment would change accuracy figures and is deliberately
// not applied. Beats with no onset in range produce no Match.
func MatchOnsets(onsets []Onset, grid []float64, toleranceSec float64) []Match {
	if len(onsets) == 0 {
		return nil
	}

	var matches []Match
	for _, beat := range grid {
		best := 0
		bestDiff := math.Abs(onsets[0].Time - beat)
		for i := 1; i < len(onsets); i++ {
			if d := math.Abs(onsets[i].Time - beat); d < bestDiff {
				best = i
				bestDiff = d
			}
		}
		if bestDiff <= toleranceSec {
			matches = append(matches, Match{
				BeatTime:  beat,
				OnsetTime: onsets[best].Time,
				ErrorMs:   (onsets[best].Time - beat) * 1000.0,
			})
		}
	}
	return matches
}
