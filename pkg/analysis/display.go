package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"simqc/internal/models"
)

// FloorChoice selects the statistic used as the lower display bound when
// rescaling an 8-bit power spectrum for inspection.
type FloorChoice int

const (
	// FloorMode crops at the most frequent value, which for a spectrum is
	// the background level. This is the default.
	FloorMode FloorChoice = iota
	FloorMean
	FloorMin
)

// applyDisplayFloor rescales every slice of an 8-bit spectrum so the chosen
// floor statistic maps to 0 and the slice maximum to 255. The volume is
// modified in place; callers pass a freshly transformed spectrum.
func applyDisplayFloor(vol *models.ImageVolume, choice FloorChoice) {
	nSlices := vol.SliceCount()
	for s := 0; s < nSlices; s++ {
		pix := vol.Slice(s)
		floor := sliceFloor(pix, choice)
		max := float64(0)
		for _, v := range pix {
			if float64(v) > max {
				max = float64(v)
			}
		}
		span := max - floor
		if span <= 0 {
			continue // uniform slice, nothing to stretch
		}
		for i, v := range pix {
			scaled := (float64(v) - floor) / span * 255
			if scaled < 0 {
				scaled = 0
			}
			if scaled > 255 {
				scaled = 255
			}
			pix[i] = float32(scaled)
		}
	}
	vol.DisplayMin = 0
	vol.DisplayMax = 255
}

// sliceFloor computes the chosen floor statistic of an 8-bit-range slice.
func sliceFloor(pix []float32, choice FloorChoice) float64 {
	switch choice {
	case FloorMean:
		data := make([]float64, len(pix))
		for i, v := range pix {
			data[i] = float64(v)
		}
		return stat.Mean(data, nil)
	case FloorMin:
		min := math.Inf(1)
		for _, v := range pix {
			if float64(v) < min {
				min = float64(v)
			}
		}
		return min
	default:
		return modeValue(pix)
	}
}

// modeValue histograms the slice into 8-bit bins and returns the most
// frequent level.
func modeValue(pix []float32) float64 {
	var hist [256]int
	for _, v := range pix {
		bin := int(v)
		if bin < 0 {
			bin = 0
		}
		if bin > 255 {
			bin = 255
		}
		hist[bin]++
	}
	mode := 0
	for i, n := range hist {
		if n > hist[mode] {
			mode = i
		}
	}
	return float64(mode)
}
