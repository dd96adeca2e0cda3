package rhythm

import (
	"math"
	"testing"
)

func TestAdaptiveThresholdNeverBelowFloor(t *testing.T) {
	p := NewDefaultParams()
	for _, noise := range []float64{0, 1e-6, 0.001, 0.016, 0.05, 0.5, 10} {
		thr := AdaptiveThreshold(noise, p)
		if thr.Base < p.MinThreshold {
			t.Fatalf("noise %g: base %g below minimum %g", noise, thr.Base, p.MinThreshold)
		}
		if thr.Peak <= thr.Base {
			t.Fatalf("noise %g: peak %g must exceed base %g", noise, thr.Peak, thr.Base)
		}
	}
}

func TestAdaptiveThresholdSilence(t *testing.T) {
	p := NewDefaultParams()
	thr := AdaptiveThreshold(0, p)
	if thr.Base != 0.15 {
		t.Fatalf("silent base = %g, want 0.15", thr.Base)
	}
	if math.Abs(thr.Peak-0.225) > 1e-12 {
		t.Fatalf("silent peak = %g, want 0.225", thr.Peak)
	}
}

func TestAdaptiveThresholdScalesWithNoise(t *testing.T) {
	p := NewDefaultParams()
	thr := AdaptiveThreshold(0.1, p)
	want := 0.1*3.0 + 0.1
	if math.Abs(thr.Base-want) > 1e-12 {
		t.Fatalf("base = %g, want %g", thr.Base, want)
	}
	if math.Abs(thr.Peak-want*1.5) > 1e-12 {
		t.Fatalf("peak = %g, want %g", thr.Peak, want*1.5)
	}
}
