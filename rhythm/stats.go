package rhythm

import "math"

// Stats summarizes the signed timing errors of a take against its beat grid.
type Stats struct {
	TotalBeats int `json:"total_beats"`
	Hits       int `json:"hits"`
	Missed     int `json:"missed"`

	MeanErrorMs float64 `json:"mean_error_ms"`
	StdErrorMs  float64 `json:"std_error_ms"`

	EarlyHits  int `json:"early_hits"`
	LateHits   int `json:"late_hits"`
	OnTimeHits int `json:"on_time_hits"`

	Accuracy float64 `json:"accuracy"` // matched beats as percent of expected
	Verdict  string  `json:"verdict"`
}

// Summarize reduces matched errors into summary metrics. The standard
// deviation is the population form. The verdict bands on the mean error:
// below -20 ms rushing, above +20 ms dragging, otherwise locked in.
func Summarize(matches []Match, totalBeats int) Stats {
	st := Stats{
		TotalBeats: totalBeats,
		Hits:       len(matches),
		Missed:     totalBeats - len(matches),
	}
	if totalBeats > 0 {
		st.Accuracy = float64(len(matches)) / float64(totalBeats) * 100.0
	}

	if len(matches) > 0 {
		var sum float64
		for _, m := range matches {
			sum += m.ErrorMs
			switch {
			case m.ErrorMs < 0:
				st.EarlyHits++
			case m.ErrorMs > 0:
				st.LateHits++
			}
			if math.Abs(m.ErrorMs) < OnTimeBandMs {
				st.OnTimeHits++
			}
		}
		st.MeanErrorMs = sum / float64(len(matches))

		var sq float64
		for _, m := range matches {
			d := m.ErrorMs - st.MeanErrorMs
			sq += d * d
		}
		st.StdErrorMs = math.Sqrt(sq / float64(len(matches)))
	}

	switch {
	case st.Hits > 0 && st.MeanErrorMs < RushMeanMs:
		st.Verdict = "rushing"
	case st.Hits > 0 && st.MeanErrorMs > DragMeanMs:
		st.Verdict = "dragging"
	default:
		st.Verdict = "locked in"
	}
	return st
}
