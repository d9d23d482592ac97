package spectral

import "math"

// edgeTaper returns a 1D window curve of length n that is 1.0 in the
// interior and rolls smoothly to 0 over the outer `win` samples of each end.
// The curve is a binary interior indicator smoothed with a Gaussian of sigma
// 0.25*win, which suppresses the edge discontinuity that would otherwise
// tile artifacts across the Fourier transform.
func edgeTaper(n, win int) []float64 {
	curve := make([]float64, n)
	for i := range curve {
		if i < win || i >= n-win {
			curve[i] = 0
		} else {
			curve[i] = 1
		}
	}
	if win <= 0 {
		return curve
	}
	return smooth1D(curve, 0.25*float64(win))
}

// smooth1D convolves data with a normalized Gaussian kernel, replicating the
// edge samples beyond the boundaries.
func smooth1D(data []float64, sigma float64) []float64 {
	if sigma <= 0 {
		return data
	}
	radius := int(3.5*sigma) + 1
	kernel := make([]float64, 2*radius+1)
	var sum float64
	for i := -radius; i <= radius; i++ {
		k := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = k
		sum += k
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	n := len(data)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var acc float64
		for j := -radius; j <= radius; j++ {
			idx := i + j
			if idx < 0 {
				idx = 0
			} else if idx >= n {
				idx = n - 1
			}
			acc += data[idx] * kernel[j+radius]
		}
		out[i] = acc
	}
	return out
}

// GaussianBlur smooths a width x height plane in place with a separable
// Gaussian of the given sigma. Spectra are blurred for display only; a
// non-positive sigma leaves the plane unchanged.
func GaussianBlur(pix []float32, width, height int, sigma float64) {
	if sigma <= 0 {
		return
	}
	line := make([]float64, width)
	for y := 0; y < height; y++ {
		row := pix[y*width : (y+1)*width]
		for x, v := range row {
			line[x] = float64(v)
		}
		smoothed := smooth1D(line, sigma)
		for x, v := range smoothed {
			row[x] = float32(v)
		}
	}
	col := make([]float64, height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			col[y] = float64(pix[y*width+x])
		}
		smoothed := smooth1D(col, sigma)
		for y, v := range smoothed {
			pix[y*width+x] = float32(v)
		}
	}
}

// applyWindow multiplies a width x height slice by the separable edge taper
// covering the outer `frac` fraction of each edge. frac = 0 returns the input
// unchanged. A new buffer is returned; the input is not modified.
func applyWindow(pix []float32, width, height int, frac float64) []float32 {
	out := make([]float32, len(pix))
	winX := int(frac * float64(width))
	winY := int(frac * float64(height))
	if winX <= 0 && winY <= 0 {
		copy(out, pix)
		return out
	}
	tx := edgeTaper(width, winX)
	ty := edgeTaper(height, winY)
	for y := 0; y < height; y++ {
		row := pix[y*width : (y+1)*width]
		wy := ty[y]
		for x := 0; x < width; x++ {
			out[y*width+x] = float32(float64(row[x]) * tx[x] * wy)
		}
	}
	return out
}
