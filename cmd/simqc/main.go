package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"simqc/internal/models"
	"simqc/internal/synth"
	"simqc/pkg/analysis"
	"simqc/pkg/config"
	"simqc/pkg/reslice"
	"simqc/pkg/spectral"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "simqc.yaml", "Path to YAML configuration file")
	check := flag.String("check", "fourier", "Check to run: fourier, rawangle, reslice or axial")
	size := flag.Int("size", 128, "Lateral size of the synthetic demo stack")
	zSlices := flag.Int("z", 16, "Z slices of the synthetic demo stack")
	workers := flag.Int("workers", 0, "Worker partitions for the batch 1D transform (0 = config value)")
	showAxial := flag.Bool("axial", false, "Include the orthogonal axial spectrum in the fourier check")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *workers > 0 {
		cfg.Processing.NumWorkers = *workers
	}

	if cfg.Processing.Verbose {
		fmt.Println("================================")
		fmt.Println("SIM QUALITY CONTROL - FOURIER DOMAIN ANALYSIS")
		fmt.Println("================================")
		fmt.Printf("Check: %s, stack %dx%dx%d, %d angles x %d phases\n",
			*check, *size, *size, *zSlices, cfg.Sim.Angles, cfg.Sim.Phases)
	}

	startTime := time.Now()
	switch *check {
	case "fourier":
		runCheck(&analysis.FourierCheck{
			WinFraction:      cfg.Fourier.WinFraction,
			Resolutions:      cfg.Fourier.Resolutions,
			ShowAxial:        *showAxial,
			CorrectedBinning: cfg.Fourier.CorrectedBinning,
			BlurRadius:       cfg.Fourier.BlurRadius,
		}, synth.Recon(*size, *size, *zSlices))

	case "rawangle":
		runCheck(&analysis.RawAngleCheck{
			Phases:      cfg.Sim.Phases,
			Angles:      cfg.Sim.Angles,
			WinFraction: cfg.Fourier.WinFraction,
		}, synth.Raw(*size, *size, cfg.Sim.Phases, *zSlices, cfg.Sim.Angles))

	case "reslice":
		vol := synth.Recon(*size, *size, *zSlices)
		resampler := &reslice.Resampler{Interpolate: cfg.Reslice.Interpolate}
		ortho, err := resampler.Reslice(vol)
		if err != nil {
			log.Fatalf("Reslice failed: %v", err)
		}
		fmt.Printf("Orthogonal view: %dx%d pixels, %d slices"+
			" (pixel %.3fx%.3fx%.3f %s)\n",
			ortho.Width, ortho.Height, ortho.ZSlices,
			ortho.Cal.PixelWidth, ortho.Cal.PixelHeight, ortho.Cal.PixelDepth,
			ortho.Cal.Unit)

	case "axial":
		vol := synth.Recon(*size, *size, *zSlices)
		spectra, err := spectral.AxialSpectra(vol, cfg.Processing.NumWorkers)
		if err != nil {
			log.Fatalf("Axial spectra failed: %v", err)
		}
		fmt.Printf("Axial spectra: %dx%d pixels, %d frequency planes\n",
			spectra.Width, spectra.Height, spectra.ZSlices)

	default:
		fmt.Fprintf(os.Stderr, "Unknown check %q\n", *check)
		flag.Usage()
		os.Exit(1)
	}

	if cfg.Processing.Verbose {
		fmt.Printf("\nCompleted in %.2f seconds\n", time.Since(startTime).Seconds())
	}
}

// runCheck executes a QC check against a volume and prints its report.
func runCheck(check analysis.Check, vol *models.ImageVolume) {
	result, err := check.Run(vol)
	if err != nil {
		log.Fatalf("%s failed: %v", check.Name(), err)
	}
	fmt.Println()
	result.Report(os.Stdout)
}
