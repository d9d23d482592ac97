// Package dft implements a fixed-length 1D discrete Fourier transform for
// batch power-spectrum computation across many independent pixels, as used
// for axial (Z) and phase-dimension spectral checks of SIM stacks.
//
// The transform is the plain O(n^2) DFT with precomputed trigonometric
// coefficient tables rather than an FFT: SIM stacks transform short vectors
// (a handful of phases or a few dozen Z planes) over very many pixels, so the
// table cache amortizes well and arbitrary lengths need no padding. There is
// no log scaling and no normalization; the lowest frequency is at index 0 and
// the spectrum is symmetric about (n-1)/2.
package dft

import (
	"fmt"
	"math"
	"runtime"
	"sync"

	"simqc/internal/models"
)

// Transform computes power spectra of fixed-length vectors. The trigonometric
// coefficients are computed once at construction and shared read-only by all
// worker partitions of a batch call.
type Transform struct {
	n int

	// cos and sin are n x n tables indexed [t*n + k] for input element t and
	// output element k. The tables are never written after construction.
	cos []float64
	sin []float64
}

// New creates a transform for vectors of length n and caches the coefficient
// tables (cost O(n^2), amortized across repeated batch calls).
func New(n int) *Transform {
	t := &Transform{
		n:   n,
		cos: make([]float64, n*n),
		sin: make([]float64, n*n),
	}
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			arg := 2 * math.Pi * float64(i) * float64(k) / float64(n)
			t.cos[i*n+k] = math.Cos(arg)
			t.sin[i*n+k] = math.Sin(arg)
		}
	}
	return t
}

// Length returns the vector length the transform was built for.
func (t *Transform) Length() int {
	return t.n
}

// PowerSpectra computes the power spectrum of the n-length vector at every
// pixel. in is shaped [n][npix]: in[i][p] is element i of the vector at pixel
// p. The result has the same shape, out[k][p] = sqrt(re^2+im^2) of DFT
// coefficient k at pixel p.
//
// The pixel range is split into `workers` contiguous disjoint partitions
// processed concurrently (workers <= 0 selects twice the available CPUs).
// Partitions write disjoint output columns, so results are identical for any
// worker count. The call blocks until all partitions finish; if any partition
// fails the whole output must be discarded and a *models.BatchError is
// returned.
func (t *Transform) PowerSpectra(in [][]float32, workers int) ([][]float32, error) {
	if len(in) != t.n {
		return nil, &models.InvalidInputError{Reason: fmt.Sprintf(
			"input has %d vectors, transform length is %d", len(in), t.n)}
	}
	npix := len(in[0])
	for i, row := range in {
		if len(row) != npix {
			return nil, &models.InvalidInputError{Reason: fmt.Sprintf(
				"ragged input: row %d has %d pixels, row 0 has %d",
				i, len(row), npix)}
		}
	}
	out := make([][]float32, t.n)
	for k := range out {
		out[k] = make([]float32, npix)
	}

	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}
	if workers > npix {
		workers = npix
	}
	if workers < 1 {
		workers = 1
	}

	chunk := npix / workers
	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := make(map[int]error)
	for w := 0; w < workers; w++ {
		pstart := w * chunk
		pend := pstart + chunk
		if w == workers-1 {
			pend = npix // last partition takes the rounding slack
		}
		wg.Add(1)
		go func(part, pstart, pend int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					mu.Lock()
					failures[part] = fmt.Errorf("%v", r)
					mu.Unlock()
				}
			}()
			t.powerSpectrumRange(in, out, pstart, pend)
		}(w, pstart, pend)
	}
	wg.Wait()
	if len(failures) > 0 {
		return nil, &models.BatchError{Failures: failures}
	}
	return out, nil
}

// powerSpectrumRange transforms the half-open pixel range [pstart, pend).
// Input samples are real; the complex DFT is accumulated in float64 and the
// magnitude written back as float32.
func (t *Transform) powerSpectrumRange(in, out [][]float32, pstart, pend int) {
	n := t.n
	re := make([]float64, n)
	for p := pstart; p < pend; p++ {
		for i := 0; i < n; i++ {
			re[i] = float64(in[i][p])
		}
		for k := 0; k < n; k++ {
			var sumRe, sumIm float64
			for i := 0; i < n; i++ {
				sumRe += re[i] * t.cos[i*n+k]
				sumIm -= re[i] * t.sin[i*n+k]
			}
			out[k][p] = float32(math.Sqrt(sumRe*sumRe + sumIm*sumIm))
		}
	}
}
