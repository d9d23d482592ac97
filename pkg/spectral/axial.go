package spectral

import (
	"fmt"

	"simqc/internal/models"
	"simqc/pkg/dft"
)

// AxialSpectra computes, independently for every (channel, time) pair, the
// 1D power spectrum along the Z axis of every XY pixel. The result has the
// same extents as the input with the Z axis replaced by axial frequency
// (index 0 = DC). Z-modulation artifacts of a SIM reconstruction show up as
// off-DC peaks here.
//
// The per-pixel transforms are partitioned across `workers` goroutines by
// pkg/dft; workers <= 0 selects a CPU-derived default.
func AxialSpectra(vol *models.ImageVolume, workers int) (*models.ImageVolume, error) {
	if err := vol.Validate(); err != nil {
		return nil, err
	}
	if vol.ZSlices < 2 {
		return nil, &models.InvalidInputError{Reason: fmt.Sprintf(
			"axial spectrum requires at least 2 Z slices, got %d", vol.ZSlices)}
	}

	out := models.NewImageVolume(vol.Width, vol.Height, vol.Channels,
		vol.ZSlices, vol.Frames, 32)
	out.Cal = vol.Cal
	out.Fourier = true

	transform := dft.New(vol.ZSlices)
	in := make([][]float32, vol.ZSlices)
	for t := 0; t < vol.Frames; t++ {
		for c := 0; c < vol.Channels; c++ {
			for z := 0; z < vol.ZSlices; z++ {
				in[z] = vol.Slice(vol.SliceIndex(c, z, t))
			}
			spectra, err := transform.PowerSpectra(in, workers)
			if err != nil {
				return nil, fmt.Errorf("axial transform (c=%d t=%d): %w", c, t, err)
			}
			for z := 0; z < vol.ZSlices; z++ {
				if err := out.SetSlice(out.SliceIndex(c, z, t), spectra[z]); err != nil {
					return nil, err
				}
			}
		}
	}
	return out, nil
}
