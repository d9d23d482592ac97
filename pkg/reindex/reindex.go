// Package reindex maps between linear slice indices and multi-dimensional
// (channel, phase, z, angle, time) positions of SIM hyperstacks. It converts
// vendor acquisition orders into the canonical CPZAT order (channel fastest,
// then phase, z, angle, time) and extracts per-angle and first-phase
// sub-stacks for the individual quality checks.
package reindex

import (
	"fmt"

	"simqc/internal/models"
)

// SliceNumber converts (position, size) pairs, fastest-varying dimension
// first, into the 1-based linear slice number of a hyperstack. For example
// SliceNumber(c, nc, z, nz, t, nt) = c + (z-1)*nc + (t-1)*nz*nc.
func SliceNumber(posSize ...int) (int, error) {
	if len(posSize) == 0 || len(posSize)%2 != 0 {
		return 0, &models.DimensionMismatchError{Reason: fmt.Sprintf(
			"need (position, size) pairs, got %d arguments", len(posSize))}
	}
	for i := 0; i < len(posSize); i += 2 {
		pos, size := posSize[i], posSize[i+1]
		if pos < 1 || pos > size {
			return 0, &models.DimensionMismatchError{Reason: fmt.Sprintf(
				"position %d outside range 1-%d", pos, size)}
		}
	}
	sliceNo := posSize[0]
	stride := 1
	for i := 2; i < len(posSize); i += 2 {
		stride *= posSize[i-1]
		sliceNo += (posSize[i] - 1) * stride
	}
	return sliceNo, nil
}

// Range is a closed 1-based position range within a dimension of the given
// total size.
type Range struct {
	Size  int
	First int
	Last  int
}

// SliceList expands ranges over N dimensions (fastest-varying first) into
// the ordered list of 1-based slice numbers they cover, with the fastest
// dimension iterated innermost.
func SliceList(dims ...Range) ([]int, error) {
	if len(dims) == 0 {
		return nil, &models.DimensionMismatchError{Reason: "no dimensions given"}
	}
	count := 1
	for _, d := range dims {
		if d.First < 1 || d.First > d.Size || d.Last < d.First || d.Last > d.Size {
			return nil, &models.DimensionMismatchError{Reason: fmt.Sprintf(
				"invalid range %d-%d within size %d", d.First, d.Last, d.Size)}
		}
		count *= d.Last - d.First + 1
	}
	pos := make([]int, len(dims))
	for i, d := range dims {
		pos[i] = d.First
	}
	list := make([]int, 0, count)
	posSize := make([]int, 2*len(dims))
	for {
		for i, d := range dims {
			posSize[2*i] = pos[i]
			posSize[2*i+1] = d.Size
		}
		n, err := SliceNumber(posSize...)
		if err != nil {
			return nil, err
		}
		list = append(list, n)
		// odometer step, fastest dimension first
		i := 0
		for ; i < len(dims); i++ {
			pos[i]++
			if pos[i] <= dims[i].Last {
				break
			}
			pos[i] = dims[i].First
		}
		if i == len(dims) {
			return list, nil
		}
	}
}

// Converter reorders vendor-format SIM acquisitions into canonical CPZAT
// hyperstacks and splits canonical stacks by angle or phase.
type Converter struct {
	// Phases is the number of illumination pattern phases (commonly 5).
	Phases int

	// Angles is the number of illumination pattern angles (commonly 3).
	Angles int
}

func (cv *Converter) validate() error {
	if cv.Phases < 1 || cv.Angles < 1 {
		return &models.DimensionMismatchError{Reason: fmt.Sprintf(
			"phases (%d) and angles (%d) must be positive", cv.Phases, cv.Angles)}
	}
	return nil
}

// FromELYRA converts a Zeiss ELYRA acquisition, which encodes angles in the
// Z dimension and phases in the time dimension, into CPZAT order. The Z
// extent must be divisible by the angle count and the time extent by the
// phase count.
func (cv *Converter) FromELYRA(vol *models.ImageVolume) (*models.ImageVolume, error) {
	if err := cv.validate(); err != nil {
		return nil, err
	}
	if err := vol.Validate(); err != nil {
		return nil, err
	}
	if vol.Frames%cv.Phases != 0 || vol.ZSlices%cv.Angles != 0 {
		return nil, &models.DimensionMismatchError{Reason: fmt.Sprintf(
			"raw ELYRA data expects angles in Z and phases in T: "+
				"%d Z / %d angles, %d T / %d phases",
			vol.ZSlices, cv.Angles, vol.Frames, cv.Phases)}
	}
	nc := vol.Channels
	nz := vol.ZSlices / cv.Angles
	nt := vol.Frames / cv.Phases

	out := models.NewImageVolume(vol.Width, vol.Height, nc,
		cv.Phases*nz*cv.Angles, nt, vol.BitDepth)
	out.Cal = vol.Cal
	out.DisplayMin = vol.DisplayMin
	out.DisplayMax = vol.DisplayMax

	outIdx := 0
	for t := 1; t <= nt; t++ {
		for a := 1; a <= cv.Angles; a++ {
			for z := 1; z <= nz; z++ {
				for p := 1; p <= cv.Phases; p++ {
					for c := 1; c <= nc; c++ {
						// ELYRA source order: C, Z, A, P, T fastest to slowest
						src, err := SliceNumber(c, nc, z, nz, a, cv.Angles,
							p, cv.Phases, t, nt)
						if err != nil {
							return nil, err
						}
						if err := out.SetSlice(outIdx, vol.Slice(src-1)); err != nil {
							return nil, err
						}
						outIdx++
					}
				}
			}
		}
	}
	return out, nil
}

// FromNSIM converts a Nikon N-SIM acquisition, which tiles phases along X
// and angles along Y within each plane, into CPZAT order. The image width
// must be divisible by the phase count and the height by the angle count.
func (cv *Converter) FromNSIM(vol *models.ImageVolume) (*models.ImageVolume, error) {
	if err := cv.validate(); err != nil {
		return nil, err
	}
	if err := vol.Validate(); err != nil {
		return nil, err
	}
	if vol.Width%cv.Phases != 0 || vol.Height%cv.Angles != 0 {
		return nil, &models.DimensionMismatchError{Reason: fmt.Sprintf(
			"N-SIM data expects phase/angle tiled in X/Y: "+
				"%dx%d image, %d phases, %d angles",
			vol.Width, vol.Height, cv.Phases, cv.Angles)}
	}
	realWidth := vol.Width / cv.Phases
	realHeight := vol.Height / cv.Angles
	nc, nz, nt := vol.Channels, vol.ZSlices, vol.Frames

	out := models.NewImageVolume(realWidth, realHeight, nc,
		cv.Phases*nz*cv.Angles, nt, vol.BitDepth)
	out.Cal = vol.Cal
	out.DisplayMin = vol.DisplayMin
	out.DisplayMax = vol.DisplayMax

	tile := make([]float32, realWidth*realHeight)
	outIdx := 0
	for t := 1; t <= nt; t++ {
		for a := 1; a <= cv.Angles; a++ {
			for z := 1; z <= nz; z++ {
				for p := 1; p <= cv.Phases; p++ {
					for c := 1; c <= nc; c++ {
						src, err := SliceNumber(c, nc, z, nz, t, nt)
						if err != nil {
							return nil, err
						}
						pix := vol.Slice(src - 1)
						x0 := realWidth * (p - 1)
						y0 := realHeight * (a - 1)
						for y := 0; y < realHeight; y++ {
							srcRow := (y0+y)*vol.Width + x0
							copy(tile[y*realWidth:(y+1)*realWidth],
								pix[srcRow:srcRow+realWidth])
						}
						if err := out.SetSlice(outIdx, tile); err != nil {
							return nil, err
						}
						outIdx++
					}
				}
			}
		}
	}
	return out, nil
}

// checkCPZAT verifies that phases x angles evenly divides the folded Z
// extent of a canonical stack and returns the true Z count.
func (cv *Converter) checkCPZAT(vol *models.ImageVolume) (int, error) {
	if err := cv.validate(); err != nil {
		return 0, err
	}
	if err := vol.Validate(); err != nil {
		return 0, err
	}
	pa := cv.Phases * cv.Angles
	if vol.ZSlices%pa != 0 {
		return 0, &models.DimensionMismatchError{Reason: fmt.Sprintf(
			"%d Z planes not divisible by %d phases x %d angles",
			vol.ZSlices, cv.Phases, cv.Angles)}
	}
	return vol.ZSlices / pa, nil
}

// AngleStacks splits a canonical CPZAT stack into one sub-stack per angle,
// each containing all phases and true Z planes of that angle, for per-angle
// Fourier analysis.
func (cv *Converter) AngleStacks(vol *models.ImageVolume) ([]*models.ImageVolume, error) {
	nz, err := cv.checkCPZAT(vol)
	if err != nil {
		return nil, err
	}
	return cv.extract(vol, nz, Range{cv.Phases, 1, cv.Phases})
}

// FirstPhaseStacks splits a canonical CPZAT stack into one sub-stack per
// angle keeping only the first phase, giving an axial side view of the
// illumination pattern for pattern-focus checks.
func (cv *Converter) FirstPhaseStacks(vol *models.ImageVolume) ([]*models.ImageVolume, error) {
	nz, err := cv.checkCPZAT(vol)
	if err != nil {
		return nil, err
	}
	return cv.extract(vol, nz, Range{cv.Phases, 1, 1})
}

// extract builds one sub-stack per angle covering the given phase range.
func (cv *Converter) extract(vol *models.ImageVolume, nz int, phases Range) ([]*models.ImageVolume, error) {
	nPhases := phases.Last - phases.First + 1
	stacks := make([]*models.ImageVolume, cv.Angles)
	for a := 1; a <= cv.Angles; a++ {
		list, err := SliceList(
			Range{vol.Channels, 1, vol.Channels},
			phases,
			Range{nz, 1, nz},
			Range{cv.Angles, a, a},
			Range{vol.Frames, 1, vol.Frames},
		)
		if err != nil {
			return nil, err
		}
		sub := models.NewImageVolume(vol.Width, vol.Height, vol.Channels,
			nPhases*nz, vol.Frames, vol.BitDepth)
		sub.Cal = vol.Cal
		sub.DisplayMin = vol.DisplayMin
		sub.DisplayMax = vol.DisplayMax
		for i, n := range list {
			if err := sub.SetSlice(i, vol.Slice(n-1)); err != nil {
				return nil, err
			}
		}
		stacks[a-1] = sub
	}
	return stacks, nil
}
