package spectral

import (
	"errors"
	"math"
	"testing"

	"simqc/internal/models"
)

// TestRingGeometry verifies the documented ellipse size: for a 512x512
// spectrum at 0.08 micron pixels, the 0.2 micron ring has full width
// 2*(512*0.08/0.2) = 409.6 pixels.
func TestRingGeometry(t *testing.T) {
	cal := models.Calibration{PixelWidth: 0.08, PixelHeight: 0.08,
		PixelDepth: 0.125, Unit: models.UnitMicron}
	rings, err := ResolutionRings(512, 512, cal, []float64{0.2}, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rings) != 1 {
		t.Fatalf("expected 1 ring, got %d", len(rings))
	}
	ring := rings[0]
	if math.Abs(ring.W-409.6) > 1e-9 || math.Abs(ring.H-409.6) > 1e-9 {
		t.Errorf("expected 409.6x409.6 ellipse, got %.4fx%.4f", ring.W, ring.H)
	}
	// centered on the DC point
	if math.Abs((ring.X+ring.W/2)-256) > 1e-9 {
		t.Errorf("expected ellipse centered at x=256, got %f", ring.X+ring.W/2)
	}
	if math.Abs((ring.Y+ring.H/2)-256) > 1e-9 {
		t.Errorf("expected ellipse centered at y=256, got %f", ring.Y+ring.H/2)
	}
}

// TestRingOrdering verifies that coarser resolutions produce smaller rings.
func TestRingOrdering(t *testing.T) {
	cal := models.Calibration{PixelWidth: 0.08, PixelHeight: 0.08,
		PixelDepth: 0.125, Unit: models.UnitMicron}
	rings, err := ResolutionRings(512, 512, cal, DefaultResolutions, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rings) != len(DefaultResolutions) {
		t.Fatalf("expected %d rings, got %d", len(DefaultResolutions), len(rings))
	}
	for i := 1; i < len(rings); i++ {
		if rings[i].Resolution > rings[i-1].Resolution && rings[i].W >= rings[i-1].W {
			t.Errorf("ring %d: coarser resolution %.2f should be smaller than %.2f (%.1f vs %.1f)",
				i, rings[i].Resolution, rings[i-1].Resolution, rings[i].W, rings[i-1].W)
		}
	}
}

// TestRingLabelParity verifies that labels alternate above and below
// successive rings.
func TestRingLabelParity(t *testing.T) {
	cal := models.Calibration{PixelWidth: 0.08, PixelHeight: 0.08,
		PixelDepth: 0.125, Unit: models.UnitMicron}
	rings, err := ResolutionRings(512, 512, cal, []float64{0.15, 0.2}, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cy := 256.0
	first := rings[0].LabelY < cy
	second := rings[1].LabelY < cy
	if first == second {
		t.Errorf("expected labels on opposite sides of center, got %f and %f",
			rings[0].LabelY, rings[1].LabelY)
	}
}

// TestRingsUncalibratedRefused verifies that pixel-only calibration yields
// no geometry.
func TestRingsUncalibratedRefused(t *testing.T) {
	uncal := models.Calibration{PixelWidth: 1, PixelHeight: 1, PixelDepth: 1,
		Unit: models.UnitPixel}
	_, err := ResolutionRings(512, 512, uncal, DefaultResolutions, 12)
	if !errors.Is(err, models.ErrUncalibrated) {
		t.Errorf("expected ErrUncalibrated, got %v", err)
	}
}
