package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cwbudde/algo-rhythm/flux"
	"github.com/cwbudde/algo-rhythm/internal/audioio"
	"github.com/cwbudde/algo-rhythm/preset"
	"github.com/cwbudde/algo-rhythm/rhythm"
)

func main() {
	input := flag.String("input", "", "Input WAV file (required)")
	bpm := flag.Float64("bpm", 0, "Known metronome tempo in BPM (0 = estimate from the recording)")
	offset := flag.Float64("offset", 0, "Time of the first expected beat in seconds")
	trim := flag.Float64("trim", 0, "Analyze only the first N seconds (0 = whole file)")
	saveTrimmed := flag.String("save-trimmed", "", "Write the trimmed input to this WAV path (optional)")
	sampleRate := flag.Int("sample-rate", 0, "Resample to this rate before analysis (0 = keep native)")
	presetPath := flag.String("preset", "", "Detection preset JSON file (optional)")
	jsonOut := flag.String("json", "", "Write the full analysis result to this JSON path (optional)")
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
	fmt.Printf("Loaded %s: %d samples @ %d Hz (%.2fs)\n",
		*input, len(samples), sr, float64(len(samples))/float64(sr))

	if *sampleRate > 0 && *sampleRate != sr {
		samples, err = audioio.ResampleIfNeeded(samples, sr, *sampleRate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resampling: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Resampled %d Hz -> %d Hz\n", sr, *sampleRate)
		sr = *sampleRate
	}

	if *trim > 0 {
		samples = audioio.Trim(samples, sr, *trim)
		fmt.Printf("Trimmed to first %.1fs\n", *trim)
		if *saveTrimmed != "" {
			if err := audioio.WriteMonoWAV(*saveTrimmed, samples, sr); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", *saveTrimmed, err)
				os.Exit(1)
			}
			fmt.Printf("Trimmed audio saved as %s\n", *saveTrimmed)
		}
	}

	analyzer := rhythm.NewAnalyzer(sr, params, flux.OnsetStrength, flux.EstimateTempo)
	result, err := analyzer.Analyze(samples, *bpm, *offset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing: %v\n", err)
		os.Exit(1)
	}

	printReport(result)

	if *jsonOut != "" {
		buf, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*jsonOut, buf, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", *jsonOut, err)
			os.Exit(1)
		}
		fmt.Printf("\nResult saved to %s\n", *jsonOut)
	}
}

func printReport(r *rhythm.Result) {
	rule := strings.Repeat("=", 60)

	fmt.Println()
	fmt.Println(rule)
	fmt.Println("TIMING ANALYSIS")
	fmt.Println(rule)
	if r.TempoEstimated {
		fmt.Printf("Tempo: %.1f BPM (estimated)\n", r.BPM)
	} else {
		fmt.Printf("Tempo: %.1f BPM\n", r.BPM)
	}
	fmt.Printf("Noise floor (RMS): %.6f\n", r.NoiseFloor)
	fmt.Printf("Detection threshold: %.4f (peak %.4f)\n", r.BaseThreshold, r.PeakThreshold)
	fmt.Printf("Detected hits: %d\n", len(r.Onsets))
	fmt.Println()
	fmt.Printf("Expected beats: %d\n", r.Stats.TotalBeats)
	fmt.Printf("Beats hit:      %d\n", r.Stats.Hits)
	fmt.Printf("Missed beats:   %d\n", r.Stats.Missed)
	fmt.Printf("Accuracy:       %.1f%%\n", r.Stats.Accuracy)

	if r.Stats.Hits > 0 {
		fmt.Println()
		fmt.Printf("Average timing error: %+.1fms\n", r.Stats.MeanErrorMs)
		fmt.Printf("Standard deviation:   %.1fms\n", r.Stats.StdErrorMs)
		fmt.Printf("On-time hits (within %.0fms): %d\n", rhythm.OnTimeBandMs, r.Stats.OnTimeHits)
		fmt.Printf("Early hits: %d\n", r.Stats.EarlyHits)
		fmt.Printf("Late hits:  %d\n", r.Stats.LateHits)
	}

	fmt.Println()
	switch r.Stats.Verdict {
	case "rushing":
		fmt.Println("-> You're rushing! Try to relax and stay with the click.")
	case "dragging":
		fmt.Println("-> You're dragging! Try to anticipate the beat slightly.")
	default:
		fmt.Println("-> Great timing! You're locked in with the metronome.")
	}
	fmt.Println(rule)
}
