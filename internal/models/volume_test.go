package models

import (
	"errors"
	"testing"
)

// TestParseUnit verifies that historical unit spellings map to typed units
// and unknown labels fall back to pixel calibration.
func TestParseUnit(t *testing.T) {
	cases := []struct {
		in   string
		want Unit
	}{
		{"micron", UnitMicron},
		{"microns", UnitMicron},
		{"um", UnitMicron},
		{"µm", UnitMicron},
		{"nm", UnitNanometer},
		{"mm", UnitMillimeter},
		{"pixel", UnitPixel},
		{"", UnitPixel},
		{"inch", UnitPixel},
	}
	for _, c := range cases {
		if got := ParseUnit(c.in); got != c.want {
			t.Errorf("ParseUnit(%q): expected %v, got %v", c.in, c.want, got)
		}
	}
}

// TestCalibrated verifies the typed uncalibrated marker.
func TestCalibrated(t *testing.T) {
	cal := Calibration{PixelWidth: 0.08, PixelHeight: 0.08, PixelDepth: 0.125,
		Unit: UnitMicron}
	if !cal.Calibrated() {
		t.Errorf("micron calibration should be calibrated")
	}
	cal.Unit = UnitPixel
	if cal.Calibrated() {
		t.Errorf("pixel calibration should not be calibrated")
	}
}

// TestSliceIndexing verifies the CZT plane ordering and slice accessors.
func TestSliceIndexing(t *testing.T) {
	vol := NewImageVolume(4, 3, 2, 5, 3, 16)
	if got := vol.SliceCount(); got != 30 {
		t.Errorf("expected 30 planes, got %d", got)
	}
	if got := vol.SliceIndex(0, 0, 0); got != 0 {
		t.Errorf("expected plane 0, got %d", got)
	}
	// channel varies fastest
	if got := vol.SliceIndex(1, 0, 0); got != 1 {
		t.Errorf("expected plane 1, got %d", got)
	}
	if got := vol.SliceIndex(0, 1, 0); got != 2 {
		t.Errorf("expected plane 2, got %d", got)
	}
	if got := vol.SliceIndex(0, 0, 1); got != 10 {
		t.Errorf("expected plane 10, got %d", got)
	}

	pix := make([]float32, vol.PlaneSize())
	pix[5] = 42
	if err := vol.SetSlice(7, pix); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := vol.Slice(7)[5]; got != 42 {
		t.Errorf("expected 42 after SetSlice, got %f", got)
	}
	if got := vol.At(7, 1, 1); got != 42 {
		t.Errorf("expected At(7,1,1)=42, got %f", got)
	}

	if err := vol.SetSlice(0, make([]float32, 3)); err == nil {
		t.Errorf("expected error for wrong slice size")
	}
}

// TestValidate verifies buffer/extent consistency checking.
func TestValidate(t *testing.T) {
	vol := NewImageVolume(4, 4, 1, 2, 1, 32)
	if err := vol.Validate(); err != nil {
		t.Errorf("unexpected error for consistent volume: %v", err)
	}
	vol.Data = vol.Data[:len(vol.Data)-1]
	var mismatch *DimensionMismatchError
	if err := vol.Validate(); !errors.As(err, &mismatch) {
		t.Errorf("expected DimensionMismatchError, got %v", err)
	}
}

// TestCloneIndependence verifies deep copying.
func TestCloneIndependence(t *testing.T) {
	vol := NewImageVolume(2, 2, 1, 1, 1, 32)
	vol.Data[0] = 1
	dup := vol.Clone()
	dup.Data[0] = 2
	if vol.Data[0] != 1 {
		t.Errorf("clone shares backing data with original")
	}
}
