package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-rhythm/dsp"
	"github.com/cwbudde/algo-rhythm/flux"
	"github.com/cwbudde/algo-rhythm/internal/audioio"
	"github.com/cwbudde/algo-rhythm/preset"
	"github.com/cwbudde/algo-rhythm/rhythm"
)

// outRecord is the JSON dump of a detection run.
type outRecord struct {
	FileName      string         `json:"file_name"`
	SampleRate    int            `json:"sample_rate"`
	NoiseFloor    float64        `json:"noise_floor"`
	PeakThreshold float64        `json:"peak_threshold"`
	Onsets        []rhythm.Onset `json:"onsets"`
}

func main() {
	input := flag.String("input", "", "Input WAV file (required)")
	presetPath := flag.String("preset", "", "Detection preset JSON file (optional)")
	jsonOut := flag.String("json", "", "Write detected onsets to this JSON path (optional)")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: -input WAV file is required")
		flag.Usage()
		os.Exit(1)
	}

	params := rhythm.NewDefaultParams()
	if *presetPath != "" {
		var err error
		params, err = preset.LoadJSON(*presetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading preset %q: %v\n", *presetPath, err)
			os.Exit(1)
		}
	}

	samples, sr, err := audioio.ReadWAVMono(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", *input, err)
		os.Exit(1)
	}

	noiseFloor := rhythm.NoiseFloor(samples, sr)
	thr := rhythm.AdaptiveThreshold(noiseFloor, params)
	filtered := dsp.HighpassFilter(samples, sr, params.HighpassCutoffHz)

	env, err := flux.OnsetStrength(filtered, sr, params.WindowSize, params.HopSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing onset strength: %v\n", err)
		os.Exit(1)
	}
	onsets := rhythm.PickPeaks(env, thr.Peak, sr, params.HopSize, params.MinSeparationMs)

	fmt.Printf("%s: %d samples @ %d Hz\n", *input, len(samples), sr)
	fmt.Printf("Noise floor %.6f, peak threshold %.4f\n", noiseFloor, thr.Peak)
	fmt.Printf("Detected %d onsets:\n", len(onsets))
	for i, o := range onsets {
		fmt.Printf("  %3d: %8.4fs  (strength %.3f)\n", i+1, o.Time, o.Strength)
	}

	if *jsonOut != "" {
		rec := outRecord{
			FileName:      *input,
			SampleRate:    sr,
			NoiseFloor:    noiseFloor,
			PeakThreshold: thr.Peak,
			Onsets:        onsets,
		}
		buf, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding onsets: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*jsonOut, buf, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", *jsonOut, err)
			os.Exit(1)
		}
		fmt.Printf("Onsets saved to %s\n", *jsonOut)
	}
}
