// Package reslice produces orthogonal (top-down) views of a multi-dimensional
// image volume: the Z stack is re-sampled along the Y axis so each output
// plane is an XZ cut, one per original image row.
package reslice

import (
	"fmt"

	"simqc/internal/models"
)

// Resampler reslices hyperstacks from the top edge downward.
type Resampler struct {
	// Interpolate enables aspect-correct resampling along Z: the output
	// Z-axis spacing is recomputed so voxels remain isotropic relative to
	// the original Y spacing. When false the reslice is stride-only and
	// geometrically distorted along Z unless the source is isotropic.
	Interpolate bool
}

// Reslice builds the orthogonal view of vol. Every (channel, time)
// combination is resliced independently and composed into a hyperstack with
// the same dimension order and display range as the source. The input is
// never modified.
//
// The operation requires 32-bit float data (repeated interpolation of
// integer samples would quantize) and at least 2 slices.
func (r *Resampler) Reslice(vol *models.ImageVolume) (*models.ImageVolume, error) {
	if err := vol.Validate(); err != nil {
		return nil, err
	}
	if vol.BitDepth != 32 || vol.SliceCount() < 2 {
		return nil, &models.InvalidInputError{Reason: fmt.Sprintf(
			"orthogonal view needs a 32-bit stack of 2+ slices "+
				"(bit depth %d, %d slices)", vol.BitDepth, vol.SliceCount())}
	}

	cal := vol.Cal
	inputZSpacing := cal.PixelDepth
	outputZSpacing := 1.0
	zSpacing := 1.0
	if r.Interpolate && cal.PixelHeight > 0 {
		outputZSpacing = cal.PixelDepth / cal.PixelHeight
		zSpacing = inputZSpacing / cal.PixelHeight
	}

	width := vol.Width
	height := vol.Height
	nz := vol.ZSlices
	outSlices := int(float64(height) / outputZSpacing)
	outHeight := nz
	if zSpacing != 1.0 {
		outHeight = int(float64(nz) * zSpacing)
	}
	if outSlices < 1 || outHeight < 1 {
		return nil, &models.InvalidInputError{Reason: fmt.Sprintf(
			"degenerate reslice geometry (%d slices of height %d)",
			outSlices, outHeight)}
	}

	out := models.NewImageVolume(width, outHeight, vol.Channels, outSlices, vol.Frames, 32)
	out.Cal = models.Calibration{
		PixelWidth:  cal.PixelWidth,
		PixelHeight: cal.PixelDepth,
		PixelDepth:  cal.PixelHeight * outputZSpacing,
		Unit:        cal.Unit,
	}
	if r.Interpolate {
		// resampled back to the original Y spacing
		out.Cal.PixelHeight = cal.PixelDepth / zSpacing
	}
	out.DisplayMin = vol.DisplayMin
	out.DisplayMax = vol.DisplayMax

	raw := make([]float32, width*nz)
	for t := 0; t < vol.Frames; t++ {
		for c := 0; c < vol.Channels; c++ {
			y := 0.0
			for i := 0; i < outSlices; i++ {
				// assemble the XZ plane at row y: output row z is the
				// source row y of slice z
				row := int(y)
				if row > height-1 {
					row = height - 1
				}
				for z := 0; z < nz; z++ {
					src := vol.Slice(vol.SliceIndex(c, z, t))
					copy(raw[z*width:(z+1)*width], src[row*width:(row+1)*width])
				}
				plane := raw
				if outHeight != nz {
					plane = resizeRows(raw, width, nz, outHeight)
				}
				if err := out.SetSlice(out.SliceIndex(c, i, t), plane); err != nil {
					return nil, err
				}
				y += outputZSpacing
			}
		}
	}
	return out, nil
}

// resizeRows rescales a width x srcH plane to width x dstH by linear
// interpolation between rows, keeping columns unchanged.
func resizeRows(pix []float32, width, srcH, dstH int) []float32 {
	out := make([]float32, width*dstH)
	scale := float64(srcH) / float64(dstH)
	for y := 0; y < dstH; y++ {
		// center-aligned source coordinate for destination row y
		sy := (float64(y)+0.5)*scale - 0.5
		if sy < 0 {
			sy = 0
		}
		y0 := int(sy)
		if y0 > srcH-1 {
			y0 = srcH - 1
		}
		y1 := y0 + 1
		if y1 > srcH-1 {
			y1 = srcH - 1
		}
		frac := float32(sy - float64(y0))
		r0 := pix[y0*width : (y0+1)*width]
		r1 := pix[y1*width : (y1+1)*width]
		dst := out[y*width : (y+1)*width]
		for x := 0; x < width; x++ {
			dst[x] = r0[x] + (r1[x]-r0[x])*frac
		}
	}
	return out
}
