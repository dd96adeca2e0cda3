package rhythm

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"testing"
)

func fixedEnvelope(env []float64) OnsetStrengthFunc {
	return func([]float64, int, int, int) ([]float64, error) {
		return env, nil
	}
}

func fixedTempo(bpm float64, beats []float64) TempoEstimateFunc {
	return func([]float64, int) (float64, []float64, error) {
		return bpm, beats, nil
	}
}

func TestAnalyzeSilence(t *testing.T) {
	sr := 44100
	samples := make([]float64, sr*5)
	a := NewAnalyzer(sr, nil, fixedEnvelope(make([]float64, 200)), nil)

	r, err := a.Analyze(samples, 120, 0)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if r.NoiseFloor != 0 {
		t.Fatalf("noise floor = %g, want 0", r.NoiseFloor)
	}
	if r.BaseThreshold != 0.15 {
		t.Fatalf("base threshold = %g, want 0.15", r.BaseThreshold)
	}
	if len(r.Onsets) != 0 {
		t.Fatalf("got %d onsets from silence, want 0", len(r.Onsets))
	}
	if r.Stats.TotalBeats != 10 {
		t.Fatalf("expected beats = %d, want 10 over 5s at 120 BPM", r.Stats.TotalBeats)
	}
	if r.Stats.Accuracy != 0 {
		t.Fatalf("accuracy = %g, want 0", r.Stats.Accuracy)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	a := NewAnalyzer(44100, nil, fixedEnvelope(nil), nil)
	r, err := a.Analyze(nil, 120, 0)
	if err != nil {
		t.Fatalf("Analyze on empty input: %v", err)
	}
	if r.Duration != 0 || len(r.Grid) != 0 || len(r.Onsets) != 0 {
		t.Fatalf("empty input produced non-empty result: %+v", r)
	}
}

func TestAnalyzeDeterminism(t *testing.T) {
	sr := 44100
	rng := rand.New(rand.NewSource(7))
	samples := make([]float64, sr*3)
	env := make([]float64, 250)
	for i := range samples {
		samples[i] = rng.Float64()*2 - 1
	}
	for i := range env {
		env[i] = rng.Float64()
	}

	a := NewAnalyzer(sr, nil, fixedEnvelope(env), nil)
	r1, err := a.Analyze(samples, 100, 0.1)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	r2, err := a.Analyze(samples, 100, 0.1)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !reflect.DeepEqual(r1, r2) {
		t.Fatalf("identical input produced different results:\n%+v\n%+v", r1, r2)
	}
}

func TestAnalyzeTempoFallbackOnSingleBeat(t *testing.T) {
	sr := 44100
	samples := make([]float64, sr*2)
	a := NewAnalyzer(sr, nil, fixedEnvelope(make([]float64, 100)), fixedTempo(87, []float64{0.3}))

	r, err := a.Analyze(samples, 0, 0)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if r.BPM != 120 {
		t.Fatalf("bpm = %g, want fallback 120 when the estimator finds one beat", r.BPM)
	}
	if !r.TempoEstimated {
		t.Fatalf("TempoEstimated = false, want true")
	}
}

func TestAnalyzeEstimatedTempoAnchorsGrid(t *testing.T) {
	sr := 44100
	samples := make([]float64, sr*2)
	a := NewAnalyzer(sr, nil, fixedEnvelope(make([]float64, 100)),
		fixedTempo(100, []float64{0.25, 0.85, 1.45}))

	r, err := a.Analyze(samples, 0, 0)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if r.BPM != 100 {
		t.Fatalf("bpm = %g, want estimated 100", r.BPM)
	}
	if r.GridOffset != 0.25 {
		t.Fatalf("grid offset = %g, want first estimated beat 0.25", r.GridOffset)
	}
	if len(r.Grid) > 0 && r.Grid[0] != 0.25 {
		t.Fatalf("grid starts at %g, want 0.25", r.Grid[0])
	}
}

func TestAnalyzeNoEstimatorFallsBack(t *testing.T) {
	sr := 44100
	a := NewAnalyzer(sr, nil, fixedEnvelope(make([]float64, 50)), nil)
	r, err := a.Analyze(make([]float64, sr), 0, 0)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if r.BPM != 120 {
		t.Fatalf("bpm = %g, want fallback 120 without an estimator", r.BPM)
	}
}

func TestAnalyzeInvalidParameters(t *testing.T) {
	env := fixedEnvelope(make([]float64, 10))

	a := NewAnalyzer(0, nil, env, nil)
	if _, err := a.Analyze(make([]float64, 100), 120, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("zero sample rate: err = %v, want ErrInvalidParameter", err)
	}

	a = NewAnalyzer(44100, nil, env, nil)
	if _, err := a.Analyze(make([]float64, 100), -1, 0); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("negative bpm: err = %v, want ErrInvalidParameter", err)
	}
	if _, err := a.Analyze(make([]float64, 100), 120, -0.1); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("negative offset: err = %v, want ErrInvalidParameter", err)
	}
}

func TestAnalyzeUpstreamFailures(t *testing.T) {
	sr := 44100
	samples := make([]float64, sr)

	failing := func([]float64, int, int, int) ([]float64, error) {
		return nil, fmt.Errorf("decoder exploded")
	}
	a := NewAnalyzer(sr, nil, failing, nil)
	if _, err := a.Analyze(samples, 120, 0); !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("provider error: err = %v, want ErrUpstreamUnavailable", err)
	}

	a = NewAnalyzer(sr, nil, fixedEnvelope([]float64{0.1, -0.2, 0.3}), nil)
	if _, err := a.Analyze(samples, 120, 0); !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("negative envelope: err = %v, want ErrUpstreamUnavailable", err)
	}

	a = NewAnalyzer(sr, nil, fixedEnvelope(make([]float64, sr)), nil)
	if _, err := a.Analyze(samples, 120, 0); !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("oversized envelope: err = %v, want ErrUpstreamUnavailable", err)
	}

	a = NewAnalyzer(sr, nil, nil, nil)
	if _, err := a.Analyze(samples, 120, 0); !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("nil provider: err = %v, want ErrUpstreamUnavailable", err)
	}
}
