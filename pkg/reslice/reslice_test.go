package reslice

import (
	"errors"
	"testing"

	"simqc/internal/models"
	"simqc/internal/synth"
)

// TestResliceSingleVoxel verifies the geometric mapping: a bright voxel at
// (x, y, z) ends up in output plane y at coordinates (x, z).
func TestResliceSingleVoxel(t *testing.T) {
	width, height, nz := 8, 8, 4
	x, y, z := 3, 5, 2
	vol := synth.SingleVoxel(width, height, nz, x, y, z)
	resampler := &Resampler{Interpolate: false}
	ortho, err := resampler.Reslice(vol)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ortho.ZSlices != height || ortho.Height != nz || ortho.Width != width {
		t.Fatalf("expected %dx%d planes x%d slices, got %dx%d x%d",
			width, nz, height, ortho.Width, ortho.Height, ortho.ZSlices)
	}
	got := ortho.At(ortho.SliceIndex(0, y, 0), x, z)
	if got != 1000 {
		t.Errorf("expected bright voxel at plane %d (%d,%d), got %f", y, x, z, got)
	}
	// everything else stays dark
	var bright int
	for _, v := range ortho.Data {
		if v != 0 {
			bright++
		}
	}
	if bright != 1 {
		t.Errorf("expected exactly 1 bright voxel, got %d", bright)
	}
}

// TestResliceRoundTrip verifies that reslicing twice restores the original
// volume for unit-calibrated data.
func TestResliceRoundTrip(t *testing.T) {
	width, height, nz := 8, 8, 4
	vol := synth.SingleVoxel(width, height, nz, 3, 5, 2)
	resampler := &Resampler{Interpolate: false}
	ortho, err := resampler.Reslice(vol)
	if err != nil {
		t.Fatalf("first reslice: unexpected error: %v", err)
	}
	back, err := resampler.Reslice(ortho)
	if err != nil {
		t.Fatalf("second reslice: unexpected error: %v", err)
	}
	if back.Width != width || back.Height != height || back.ZSlices != nz {
		t.Fatalf("round trip changed shape: got %dx%d x%d",
			back.Width, back.Height, back.ZSlices)
	}
	for i := range vol.Data {
		if vol.Data[i] != back.Data[i] {
			t.Fatalf("round trip mismatch at %d: %f vs %f", i, vol.Data[i], back.Data[i])
		}
	}
}

// TestResliceInterpolatedSpacing verifies the aspect-correct Z spacing: for
// anisotropic input the orthogonal planes are stretched so voxels become
// isotropic relative to the original Y spacing.
func TestResliceInterpolatedSpacing(t *testing.T) {
	vol := synth.Recon(16, 16, 8) // pixel 0.08, depth 0.125 microns
	resampler := &Resampler{Interpolate: true}
	ortho, err := resampler.Reslice(vol)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// zSpacing = 0.125/0.08 = 1.5625: 8 slices resample to height 12
	if ortho.Height != 12 {
		t.Errorf("expected resampled height 12, got %d", ortho.Height)
	}
	// output slices = 16 / 1.5625 = 10
	if ortho.ZSlices != 10 {
		t.Errorf("expected 10 output slices, got %d", ortho.ZSlices)
	}
	// Z axis of the output carries the original Y spacing scaled by the
	// output spacing
	wantDepth := vol.Cal.PixelHeight * (vol.Cal.PixelDepth / vol.Cal.PixelHeight)
	if diff := ortho.Cal.PixelDepth - wantDepth; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected output Z spacing %f, got %f", wantDepth, ortho.Cal.PixelDepth)
	}
}

// TestResliceRejectsBadInput verifies the precision and slice-count
// requirements.
func TestResliceRejectsBadInput(t *testing.T) {
	resampler := &Resampler{Interpolate: true}

	bad := models.NewImageVolume(8, 8, 1, 4, 1, 16)
	var invalid *models.InvalidInputError
	if _, err := resampler.Reslice(bad); !errors.As(err, &invalid) {
		t.Errorf("expected InvalidInputError for 16-bit input, got %v", err)
	}

	single := models.NewImageVolume(8, 8, 1, 1, 1, 32)
	if _, err := resampler.Reslice(single); !errors.As(err, &invalid) {
		t.Errorf("expected InvalidInputError for single-slice input, got %v", err)
	}
}

// TestResliceDoesNotMutateInput checks the input volume is untouched.
func TestResliceDoesNotMutateInput(t *testing.T) {
	vol := synth.Recon(16, 16, 4)
	orig := vol.Clone()
	resampler := &Resampler{Interpolate: true}
	if _, err := resampler.Reslice(vol); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range vol.Data {
		if vol.Data[i] != orig.Data[i] {
			t.Fatalf("input mutated at %d", i)
		}
	}
}
