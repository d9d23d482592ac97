package spectral

import (
	"fmt"

	"simqc/internal/models"
)

// DefaultResolutions are the target resolutions (in the calibration unit)
// marked on reconstructed-data power spectra.
var DefaultResolutions = []float64{0.10, 0.12, 0.15, 0.2, 0.3, 0.6}

// DefaultFontSize is the label font size assumed when placing ring labels.
const DefaultFontSize = 12.0

// ResolutionRings computes overlay geometry marking a set of target
// resolutions on a width x height power spectrum. A ring for resolution r is
// an ellipse centered on the zero-frequency point with half-axes
// width*pixelWidth/r and height*pixelHeight/r, so coarser resolutions sit
// closer to the center. Labels alternate above and below successive rings.
//
// The calibration must carry a real length unit; otherwise no geometry can
// be derived and models.ErrUncalibrated is returned.
func ResolutionRings(width, height int, cal models.Calibration,
	resolutions []float64, fontSize float64) ([]models.ResolutionRing, error) {

	if !cal.Calibrated() {
		return nil, fmt.Errorf("resolution rings for %dx%d spectrum: %w",
			width, height, models.ErrUncalibrated)
	}
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	cx := float64(width) / 2
	cy := float64(height) / 2
	rings := make([]models.ResolutionRing, 0, len(resolutions))
	for i, res := range resolutions {
		if res <= 0 {
			return nil, &models.InvalidInputError{Reason: fmt.Sprintf(
				"non-positive target resolution %g", res)}
		}
		// half-axis = pixel size * extent / resolution (two cycles)
		resX := float64(width) * cal.PixelWidth / res
		resY := float64(height) * cal.PixelHeight / res
		w := resX * 2
		h := resY * 2
		// label parity: odd rings above the ring, even rings below
		parity := 2 * (-0.5 + float64((i+1)%2))
		rings = append(rings, models.ResolutionRing{
			Resolution: res,
			X:          cx - w/2,
			Y:          cy - h/2,
			W:          w,
			H:          h,
			LabelX:     cx - fontSize,
			LabelY:     cy - parity*(h/2) - fontSize,
		})
	}
	return rings, nil
}
