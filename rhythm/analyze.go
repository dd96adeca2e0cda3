package rhythm

import (
	"fmt"

	"github.com/cwbudde/algo-rhythm/dsp"
)

// OnsetStrengthFunc computes a per-hop novelty envelope from audio samples.
// Values must be non-negative, one per hop of the input.
type OnsetStrengthFunc func(samples []float64, sampleRate, windowSize, hopSize int) ([]float64, error)

// TempoEstimateFunc estimates a tempo in BPM and coarse beat times.
type TempoEstimateFunc func(samples []float64, sampleRate int) (float64, []float64, error)

// Analyzer runs the full timing analysis: high-pass filtering, onset
// detection against an adaptive threshold, beat-grid generation and
// onset-to-beat matching. The onset-strength and tempo stages are injected
// so the engine can be exercised with any novelty signal.
//
// An Analyzer holds no per-call state; the same instance may be used for
// independent recordings concurrently.
type Analyzer struct {
	sampleRate    int
	params        *Params
	onsetStrength OnsetStrengthFunc
	estimateTempo TempoEstimateFunc
}

// Result is the complete outcome of one analysis run.
type Result struct {
	SampleRate int     `json:"sample_rate"`
	Duration   float64 `json:"duration"`

	BPM            float64 `json:"bpm"`
	TempoEstimated bool    `json:"tempo_estimated"`
	GridOffset     float64 `json:"grid_offset"`

	NoiseFloor    float64 `json:"noise_floor"`
	BaseThreshold float64 `json:"base_threshold"`
	PeakThreshold float64 `json:"peak_threshold"`

	Onsets  []Onset   `json:"onsets"`
	Grid    []float64 `json:"grid"`
	Matches []Match   `json:"matches"`
	Stats   Stats     `json:"stats"`
}

// NewAnalyzer creates an analyzer for the given sample rate. A nil params
// uses defaults. The tempo estimator is optional; without one, analyses
// with an unknown tempo fall back to Params.FallbackBPM.
func NewAnalyzer(sampleRate int, params *Params, onsetStrength OnsetStrengthFunc, estimateTempo TempoEstimateFunc) *Analyzer {
	if params == nil {
		params = NewDefaultParams()
	}
	return &Analyzer{
		sampleRate:    sampleRate,
		params:        params,
		onsetStrength: onsetStrength,
		estimateTempo: estimateTempo,
	}
}

// Analyze runs the pipeline on one recording. A positive bpm is taken as the
// known metronome tempo with the grid starting at offset; bpm == 0 requests
// tempo estimation, in which case a zero offset is replaced by the first
// estimated beat. Empty input is not an error: it yields an empty result
// with zero accuracy.
func (a *Analyzer) Analyze(samples []float64, bpm, offset float64) (*Result, error) {
	if a.sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be > 0, got %d", ErrInvalidParameter, a.sampleRate)
	}
	if bpm < 0 {
		return nil, fmt.Errorf("%w: bpm must be >= 0, got %g", ErrInvalidParameter, bpm)
	}
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must be >= 0, got %g", ErrInvalidParameter, offset)
	}
	if a.onsetStrength == nil {
		return nil, fmt.Errorf("%w: no onset-strength provider", ErrUpstreamUnavailable)
	}

	p := a.params
	if p.WindowSize <= 0 || p.HopSize <= 0 {
		return nil, fmt.Errorf("%w: window %d and hop %d must be > 0", ErrInvalidParameter, p.WindowSize, p.HopSize)
	}
	duration := float64(len(samples)) / float64(a.sampleRate)

	// Noise is profiled on the raw signal; the filter only feeds the
	// novelty stage.
	noiseFloor := NoiseFloor(samples, a.sampleRate)
	thr := AdaptiveThreshold(noiseFloor, p)

	filtered := dsp.HighpassFilter(samples, a.sampleRate, p.HighpassCutoffHz)

	env, err := a.onsetStrength(filtered, a.sampleRate, p.WindowSize, p.HopSize)
	if err != nil {
		return nil, fmt.Errorf("%w: onset strength: %v", ErrUpstreamUnavailable, err)
	}
	if err := validateEnvelope(env, len(samples), p.HopSize); err != nil {
		return nil, err
	}

	onsets := PickPeaks(env, thr.Peak, a.sampleRate, p.HopSize, p.MinSeparationMs)

	estimated := false
	if bpm == 0 {
		bpm, offset, err = a.resolveTempo(samples, offset)
		if err != nil {
			return nil, err
		}
		estimated = true
	}

	grid, err := BeatGrid(bpm, duration, offset)
	if err != nil {
		return nil, err
	}

	matches := MatchOnsets(onsets, grid, p.ToleranceSec)

	return &Result{
		SampleRate:     a.sampleRate,
		Duration:       duration,
		BPM:            bpm,
		TempoEstimated: estimated,
		GridOffset:     offset,
		NoiseFloor:     noiseFloor,
		BaseThreshold:  thr.Base,
		PeakThreshold:  thr.Peak,
		Onsets:         onsets,
		Grid:           grid,
		Matches:        matches,
		Stats:          Summarize(matches, len(grid)),
	}, nil
}

// resolveTempo asks the estimator for a tempo, falling back to the default
// whenever it cannot produce at least two beats (a single beat has no
// interval to divide by).
func (a *Analyzer) resolveTempo(samples []float64, offset float64) (float64, float64, error) {
	if a.estimateTempo == nil {
		return a.params.FallbackBPM, offset, nil
	}
	bpm, beats, err := a.estimateTempo(samples, a.sampleRate)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: tempo estimator: %v", ErrUpstreamUnavailable, err)
	}
	if len(beats) <= 1 || bpm <= 0 {
		return a.params.FallbackBPM, offset, nil
	}
	if offset == 0 && beats[0] > 0 {
		offset = beats[0]
	}
	return bpm, offset, nil
}

func validateEnvelope(env []float64, numSamples, hopSize int) error {
	if len(env) > numSamples/hopSize+2 {
		return fmt.Errorf("%w: envelope has %d frames for %d samples at hop %d",
			ErrUpstreamUnavailable, len(env), numSamples, hopSize)
	}
	for i, v := range env {
		if v < 0 {
			return fmt.Errorf("%w: negative envelope value %g at frame %d", ErrUpstreamUnavailable, v, i)
		}
	}
	return nil
}
