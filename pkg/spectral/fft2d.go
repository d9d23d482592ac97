// Package spectral implements the Fourier-domain quality-control transforms
// for SIM image stacks: per-slice 2D power spectra with windowing and
// padding, axial 1D spectra, radial profile reduction, and resolution ring
// overlay geometry.
package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"simqc/internal/models"
)

// Scaling selects the output scaling of a 2D power spectrum.
type Scaling int

const (
	// ScaleLog applies log(1+x) and rescales each slice into the 8-bit
	// display range. This is the default for visual inspection.
	ScaleLog Scaling = iota

	// ScaleGamma applies a gamma curve (x/max)^gamma scaled to the 8-bit
	// range, which preserves more of the high-frequency tail than log.
	ScaleGamma

	// ScaleNone returns raw 32-bit magnitudes.
	ScaleNone
)

// DefaultWinFraction is the fraction of each image edge covered by the
// window taper when the caller does not specify one.
const DefaultWinFraction = 0.01

// winFractionEpsilon is the tolerance below which windowing is skipped.
const winFractionEpsilon = 1e-6

// Transform2D computes per-slice 2D power spectra of an image stack.
type Transform2D struct {
	// WinFraction is the fraction (0 to 1) of each edge tapered by the
	// window function before transforming. Zero disables windowing.
	WinFraction float64

	// Scaling selects log, gamma or raw output.
	Scaling Scaling

	// Gamma is the exponent used when Scaling is ScaleGamma.
	Gamma float64
}

// NewTransform2D returns a transform with the default window fraction and
// log scaling.
func NewTransform2D() *Transform2D {
	return &Transform2D{WinFraction: DefaultWinFraction, Scaling: ScaleLog, Gamma: 0.3}
}

// PadSize returns the square power-of-two size a width x height slice is
// zero-padded to before transforming.
func PadSize(width, height int) int {
	size := width
	if height > size {
		size = height
	}
	padSize := 2
	for padSize < size {
		padSize *= 2
	}
	return padSize
}

// TransformVolume computes the 2D power spectrum of every slice in the
// stack. Each slice is windowed, zero-padded to a power-of-two square,
// transformed, and quadrant-swapped so the zero-frequency component lands at
// the center of the output. The input volume is not modified.
//
// Output dimensions are the padded size on both axes; the stack layout
// (channels, Z, frames) and pixel calibration carry over, and the result is
// marked as Fourier data. A zero-variance slice yields a well-defined
// uniform spectrum.
func (t *Transform2D) TransformVolume(vol *models.ImageVolume) (*models.ImageVolume, error) {
	if err := vol.Validate(); err != nil {
		return nil, err
	}
	size := PadSize(vol.Width, vol.Height)
	bitDepth := 8
	if t.Scaling == ScaleNone {
		bitDepth = 32
	}
	out := models.NewImageVolume(size, size, vol.Channels, vol.ZSlices, vol.Frames, bitDepth)
	out.Cal = vol.Cal
	out.Fourier = true
	out.DisplayMin = 0
	out.DisplayMax = 255

	fft := fourier.NewFFT(size)
	cfft := fourier.NewCmplxFFT(size)
	nSlices := vol.SliceCount()
	for s := 0; s < nSlices; s++ {
		pix := vol.Slice(s)
		if math.Abs(t.WinFraction) > winFractionEpsilon {
			pix = applyWindow(pix, vol.Width, vol.Height, t.WinFraction)
		}
		padded := padSlice(pix, vol.Width, vol.Height, size)
		ps := powerSpectrum2D(padded, size, fft, cfft)
		swapQuadrants(ps, size)
		scaled := t.scale(ps)
		if err := out.SetSlice(s, scaled); err != nil {
			return nil, fmt.Errorf("storing spectrum slice %d: %w", s, err)
		}
	}
	return out, nil
}

// padSlice copies a width x height slice into the top-left corner of a
// zero-filled size x size float64 buffer.
func padSlice(pix []float32, width, height, size int) []float64 {
	out := make([]float64, size*size)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out[y*size+x] = float64(pix[y*width+x])
		}
	}
	return out
}

// powerSpectrum2D computes the magnitude of the 2D DFT of a size x size
// slice using two passes of 1D transforms: a real FFT across each row
// (expanded to the full spectrum by conjugate symmetry), then a complex FFT
// down each column.
func powerSpectrum2D(data []float64, size int, fft *fourier.FFT, cfft *fourier.CmplxFFT) []float64 {
	work := make([]complex128, size*size)

	rowOutput := make([]complex128, size/2+1)
	rowInput := make([]float64, size)
	for i := 0; i < size; i++ {
		copy(rowInput, data[i*size:(i+1)*size])
		fft.Coefficients(rowOutput, rowInput)
		for j := 0; j < len(rowOutput); j++ {
			work[i*size+j] = rowOutput[j]
		}
		for j := len(rowOutput); j < size; j++ {
			// conjugate symmetry: F(n-k) = conj(F(k))
			k := size - j
			work[i*size+j] = complex(real(rowOutput[k]), -imag(rowOutput[k]))
		}
	}

	colIn := make([]complex128, size)
	colOut := make([]complex128, size)
	for j := 0; j < size; j++ {
		for i := 0; i < size; i++ {
			colIn[i] = work[i*size+j]
		}
		cfft.Coefficients(colOut, colIn)
		for i := 0; i < size; i++ {
			work[i*size+j] = colOut[i]
		}
	}

	ps := make([]float64, size*size)
	for i, c := range work {
		ps[i] = math.Hypot(real(c), imag(c))
	}
	return ps
}

// swapQuadrants rearranges a size x size spectrum in place so the
// zero-frequency component moves from (0,0) to the center.
func swapQuadrants(ps []float64, size int) {
	half := size / 2
	for y := 0; y < half; y++ {
		for x := 0; x < size; x++ {
			x2 := (x + half) % size
			y2 := y + half
			ps[y*size+x], ps[y2*size+x2] = ps[y2*size+x2], ps[y*size+x]
		}
	}
}

// scale converts raw spectrum magnitudes to the configured output range.
func (t *Transform2D) scale(ps []float64) []float32 {
	out := make([]float32, len(ps))
	switch t.Scaling {
	case ScaleNone:
		for i, v := range ps {
			out[i] = float32(v)
		}
	case ScaleGamma:
		var max float64
		for _, v := range ps {
			if v > max {
				max = v
			}
		}
		if max == 0 {
			return out // flat slice: uniform zero spectrum
		}
		for i, v := range ps {
			out[i] = float32(255 * math.Pow(v/max, t.Gamma))
		}
	default: // ScaleLog
		min, max := math.Inf(1), math.Inf(-1)
		logged := make([]float64, len(ps))
		for i, v := range ps {
			lv := math.Log1p(v)
			logged[i] = lv
			if lv < min {
				min = lv
			}
			if lv > max {
				max = lv
			}
		}
		if max-min == 0 {
			return out // flat slice: uniform zero spectrum
		}
		for i, lv := range logged {
			out[i] = float32(255 * (lv - min) / (max - min))
		}
	}
	return out
}
