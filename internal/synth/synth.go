// Package synth generates deterministic synthetic SIM stacks for the CLI
// demo and the test suite: a reconstructed-style volume with a bright
// feature, and a raw-style CPZAT stack with phase/angle-modulated stripes.
package synth

import (
	"math"

	"simqc/internal/models"
)

// MicronCalibration is the calibration applied to generated volumes,
// matching a typical SIM reconstruction (80 nm lateral pixels, 125 nm Z
// steps).
var MicronCalibration = models.Calibration{
	PixelWidth:  0.08,
	PixelHeight: 0.08,
	PixelDepth:  0.125,
	Unit:        models.UnitMicron,
}

// Recon builds a reconstructed-style volume: a centered 3D Gaussian blob
// over a faint stripe pattern, 32-bit, micron-calibrated, single channel and
// time point.
func Recon(width, height, nz int) *models.ImageVolume {
	vol := models.NewImageVolume(width, height, 1, nz, 1, 32)
	vol.Cal = MicronCalibration
	cx := float64(width) / 2
	cy := float64(height) / 2
	cz := float64(nz) / 2
	sigma := float64(width) / 8
	sigmaZ := float64(nz) / 4
	for z := 0; z < nz; z++ {
		pix := vol.Slice(z)
		dz := (float64(z) - cz) / sigmaZ
		for y := 0; y < height; y++ {
			dy := (float64(y) - cy) / sigma
			for x := 0; x < width; x++ {
				dx := (float64(x) - cx) / sigma
				blob := 1000 * math.Exp(-(dx*dx+dy*dy+dz*dz)/2)
				stripes := 50 * (1 + math.Sin(2*math.Pi*float64(x)/7))
				pix[y*width+x] = float32(blob + stripes)
			}
		}
	}
	vol.DisplayMin = 0
	vol.DisplayMax = 1100
	return vol
}

// Raw builds a raw-style CPZAT stack: for every (phase, z, angle) plane the
// intensity is a stripe pattern whose orientation follows the angle index
// and whose offset follows the phase index.
func Raw(width, height, phases, nz, angles int) *models.ImageVolume {
	vol := models.NewImageVolume(width, height, 1, phases*nz*angles, 1, 16)
	vol.Cal = MicronCalibration
	period := 9.0
	for a := 0; a < angles; a++ {
		theta := math.Pi * float64(a) / float64(angles)
		// integer cycle counts keep every pattern commensurate with the
		// grid, so each plane carries the same total intensity regardless
		// of angle and phase
		cx := math.Round(math.Cos(theta) * float64(width) / period)
		cy := math.Round(math.Sin(theta) * float64(height) / period)
		if cx == 0 && cy == 0 {
			cx = 1
		}
		for z := 0; z < nz; z++ {
			for p := 0; p < phases; p++ {
				// CPZAT: phase varies fastest within the folded Z axis
				n := p + phases*(z+nz*a)
				pix := vol.Slice(n)
				shift := 2 * math.Pi * float64(p) / float64(phases)
				for y := 0; y < height; y++ {
					for x := 0; x < width; x++ {
						arg := 2*math.Pi*(cx*float64(x)/float64(width)+
							cy*float64(y)/float64(height)) + shift
						pix[y*width+x] = float32(500 * (1 + math.Sin(arg)))
					}
				}
			}
		}
	}
	vol.DisplayMin = 0
	vol.DisplayMax = 1000
	return vol
}

// SingleVoxel builds a 32-bit volume that is zero everywhere except one
// bright voxel, for geometric round-trip checks.
func SingleVoxel(width, height, nz, x, y, z int) *models.ImageVolume {
	vol := models.NewImageVolume(width, height, 1, nz, 1, 32)
	vol.Cal = models.Calibration{PixelWidth: 1, PixelHeight: 1, PixelDepth: 1,
		Unit: models.UnitMicron}
	vol.Slice(z)[y*width+x] = 1000
	vol.DisplayMax = 1000
	return vol
}
