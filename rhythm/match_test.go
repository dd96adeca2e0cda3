package rhythm

import (
	"math"
	"testing"
)

func onsetsAt(times ...float64) []Onset {
	out := make([]Onset, len(times))
	for i, tm := range times {
		out[i] = Onset{Time: tm, Strength: 1}
	}
	return out
}

func TestMatchOnsetsExactScenario(t *testing.T) {
	matches := MatchOnsets(onsetsAt(0.51), []float64{0.5}, 0.15)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if math.Abs(matches[0].ErrorMs-10.0) > 1e-9 {
		t.Fatalf("error = %gms, want +10ms (late)", matches[0].ErrorMs)
	}
}

func TestMatchOnsetsEmptyOnsets(t *testing.T) {
	matches := MatchOnsets(nil, []float64{0, 0.5, 1.0}, 0.15)
	if len(matches) != 0 {
		t.Fatalf("got %d matches for empty onset list, want 0", len(matches))
	}
}

func TestMatchOnsetsOutsideToleranceMissed(t *testing.T) {
	matches := MatchOnsets(onsetsAt(0.7), []float64{0.5}, 0.15)
	if len(matches) != 0 {
		t.Fatalf("got %d matches, want 0 for onset 200ms off", len(matches))
	}
}

func TestMatchOnsetsToleranceBound(t *testing.T) {
	const tolerance = 0.15
	onsets := onsetsAt(0.04, 0.48, 1.13, 1.62, 2.01)
	grid := []float64{0, 0.5, 1.0, 1.5, 2.0}
	matches := MatchOnsets(onsets, grid, tolerance)
	for _, m := range matches {
		if math.Abs(m.ErrorMs) > tolerance*1000 {
			t.Fatalf("match error %gms exceeds tolerance %gms", m.ErrorMs, tolerance*1000)
		}
	}
}

func TestMatchOnsetsSignedError(t *testing.T) {
	matches := MatchOnsets(onsetsAt(0.45, 1.05), []float64{0.5, 1.0}, 0.15)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if matches[0].ErrorMs >= 0 {
		t.Fatalf("early hit error = %gms, want negative", matches[0].ErrorMs)
	}
	if matches[1].ErrorMs <= 0 {
		t.Fatalf("late hit error = %gms, want positive", matches[1].ErrorMs)
	}
}

// Beats are matched independently, so a single onset between two close beats
// is credited to both. This mirrors the long-standing scoring behavior and
// must not silently change.
func TestMatchOnsetsOneOnsetMayServeTwoBeats(t *testing.T) {
	matches := MatchOnsets(onsetsAt(0.55), []float64{0.5, 0.6}, 0.15)
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2 (per-beat independent matching)", len(matches))
	}
	if matches[0].OnsetTime != matches[1].OnsetTime {
		t.Fatalf("matches consumed different onsets: %g vs %g",
			matches[0].OnsetTime, matches[1].OnsetTime)
	}
}

func TestMatchOnsetsPicksNearestAcrossWholeList(t *testing.T) {
	// The nearest onset to beat 1.0 is late in the list; a windowed search
	// stopping at the first in-tolerance onset would pick 0.9.
	matches := MatchOnsets(onsetsAt(0.9, 1.02), []float64{1.0}, 0.15)
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].OnsetTime != 1.02 {
		t.Fatalf("matched onset %g, want nearest 1.02", matches[0].OnsetTime)
	}
}
