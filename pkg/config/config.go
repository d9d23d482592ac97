// Package config provides configuration loading and management for simqc.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// SIM acquisition parameters
	Sim struct {
		// Angles is the number of illumination pattern angles
		Angles int `yaml:"angles"`

		// Phases is the number of illumination pattern phases
		Phases int `yaml:"phases"`
	} `yaml:"sim"`

	// Fourier analysis parameters
	Fourier struct {
		// WinFraction is the edge fraction tapered by the window function
		// before the 2D transform
		WinFraction float64 `yaml:"winFraction"`

		// Resolutions lists the target resolutions (in the calibration
		// unit) marked as rings on power spectra
		Resolutions []float64 `yaml:"resolutions"`

		// BlurRadius is a display-only smoothing radius for 512x512
		// spectra; it does not affect numeric results
		BlurRadius float64 `yaml:"blurRadius"`

		// CorrectedBinning selects the corrected radial bin policy
		// instead of the historical one
		CorrectedBinning bool `yaml:"correctedBinning"`
	} `yaml:"fourier"`

	// Reslice parameters
	Reslice struct {
		// Interpolate enables aspect-correct resampling along Z during
		// orthogonal reslicing
		Interpolate bool `yaml:"interpolate"`
	} `yaml:"reslice"`

	// Processing parameters
	Processing struct {
		// NumWorkers is the worker partition count for the batch 1D
		// transform
		NumWorkers int `yaml:"numWorkers"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"processing"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default acquisition parameters
	cfg.Sim.Angles = 3
	cfg.Sim.Phases = 5

	// Set default Fourier parameters
	cfg.Fourier.WinFraction = 0.01
	cfg.Fourier.Resolutions = []float64{0.10, 0.12, 0.15, 0.2, 0.3, 0.6}
	cfg.Fourier.BlurRadius = 0.0
	cfg.Fourier.CorrectedBinning = false

	// Set default reslice parameters
	cfg.Reslice.Interpolate = true

	// Set default processing parameters
	cfg.Processing.NumWorkers = runtime.NumCPU() * 2
	cfg.Processing.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
