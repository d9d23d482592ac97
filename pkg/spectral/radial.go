package spectral

import (
	"fmt"
	"math"

	"simqc/internal/models"
)

// RadialProfiler reduces a 2D power spectrum to a 1D radial-average profile
// binned by distance from the spectrum center.
//
// By default the historical binning is kept for comparability with older
// analyses: the raw bin index floor((R/mR)*nBins) is clamped from 0 up to 1
// and then shifted down by one, folding the two innermost bins together.
// CorrectedBinning selects a plain clamped floor((R/mR)*nBins) policy
// instead.
type RadialProfiler struct {
	CorrectedBinning bool
}

// Profile computes the radial profile of one plane of the volume, selected
// by zero-based (channel, z, time) position. The frequency axis is derived
// from the pixel calibration; uncalibrated input is refused with
// models.ErrUncalibrated rather than producing a profile in meaningless
// units.
func (r *RadialProfiler) Profile(vol *models.ImageVolume, c, z, t int) (*models.RadialProfile, error) {
	if c < 0 || c >= vol.Channels || z < 0 || z >= vol.ZSlices || t < 0 || t >= vol.Frames {
		return nil, &models.InvalidInputError{Reason: fmt.Sprintf(
			"plane (c=%d z=%d t=%d) outside stack %dx%dx%d",
			c, z, t, vol.Channels, vol.ZSlices, vol.Frames)}
	}
	pix := vol.Slice(vol.SliceIndex(c, z, t))
	return r.ProfileSlice(pix, vol.Width, vol.Height, vol.Cal, vol.Fourier)
}

// ProfileSlice computes the radial profile of a single width x height plane.
func (r *RadialProfiler) ProfileSlice(pix []float32, width, height int,
	cal models.Calibration, fourier bool) (*models.RadialProfile, error) {

	if !cal.Calibrated() {
		return nil, fmt.Errorf("radial profile of %dx%d plane: %w",
			width, height, models.ErrUncalibrated)
	}
	x0 := float64(width) / 2
	y0 := float64(height) / 2
	mR := float64(width+height) / 4
	nBins := int(3 * mR / 4)
	if nBins < 1 {
		return nil, &models.InvalidInputError{Reason: fmt.Sprintf(
			"image %dx%d too small for radial binning", width, height)}
	}

	counts := make([]float64, nBins)
	sums := make([]float64, nBins)
	xmin, xmax := x0-mR, x0+mR
	ymin, ymax := y0-mR, y0+mR
	for i := xmin; i < xmax; i++ {
		for j := ymin; j < ymax; j++ {
			radius := math.Sqrt((i-x0)*(i-x0) + (j-y0)*(j-y0))
			bin := int(math.Floor((radius / mR) * float64(nBins)))
			if r.CorrectedBinning {
				if bin > nBins-1 {
					bin = nBins - 1
				}
			} else {
				// historical policy: raw bin 0 becomes 1, then shift down
				if bin == 0 {
					bin = 1
				}
				bin--
				if bin > nBins-1 {
					bin = nBins - 1
				}
			}
			counts[bin]++
			sums[bin] += pixelValue(pix, width, height, int(i), int(j))
		}
	}

	profile := &models.RadialProfile{
		Freq:    make([]float64, nBins),
		Mean:    make([]float64, nBins),
		Bins:    nBins,
		Fourier: fourier,
		Unit:    cal.Unit,
	}
	for i := 0; i < nBins; i++ {
		if counts[i] > 0 {
			profile.Mean[i] = sums[i] / counts[i]
		}
		// spatial frequency in inverse calibrated units; 0.5 is the
		// Nyquist factor
		profile.Freq[i] = (float64(i+1) / float64(nBins)) * 0.5 / cal.PixelWidth
	}
	return profile, nil
}

// pixelValue returns the sample at (x, y), or 0 for coordinates outside the
// plane (the sampling box can overhang a non-square image).
func pixelValue(pix []float32, width, height, x, y int) float64 {
	if x < 0 || x >= width || y < 0 || y >= height {
		return 0
	}
	return float64(pix[y*width+x])
}
