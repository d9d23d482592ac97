package dft

import (
	"math"
	"testing"

	"github.com/mjibson/go-dsp/fft"
)

// TestConstantVectorSpectrum verifies that a constant input has all of its
// power in the DC coefficient: index 0 holds the full sum, every other index
// is zero within floating-point tolerance.
func TestConstantVectorSpectrum(t *testing.T) {
	for _, n := range []int{2, 5, 8, 16, 33} {
		tr := New(n)
		in := make([][]float32, n)
		for i := range in {
			in[i] = []float32{3.0}
		}
		out, err := tr.PowerSpectra(in, 1)
		if err != nil {
			t.Fatalf("n=%d: unexpected error: %v", n, err)
		}
		wantDC := 3.0 * float64(n)
		if math.Abs(float64(out[0][0])-wantDC) > 1e-3 {
			t.Errorf("n=%d: expected DC=%f, got %f", n, wantDC, out[0][0])
		}
		for k := 1; k < n; k++ {
			if math.Abs(float64(out[k][0])) > 1e-3 {
				t.Errorf("n=%d: expected zero at index %d, got %f", n, k, out[k][0])
			}
		}
	}
}

// TestSinusoidPeak verifies that a pure sinusoid at bin k peaks exactly at
// indices k and n-k.
func TestSinusoidPeak(t *testing.T) {
	n := 32
	tr := New(n)
	for _, k := range []int{1, 3, 7, 15} {
		in := make([][]float32, n)
		for i := range in {
			in[i] = []float32{float32(math.Sin(2 * math.Pi * float64(i*k) / float64(n)))}
		}
		out, err := tr.PowerSpectra(in, 1)
		if err != nil {
			t.Fatalf("k=%d: unexpected error: %v", k, err)
		}
		maxIdx := 0
		for j := 1; j < n; j++ {
			if out[j][0] > out[maxIdx][0] {
				maxIdx = j
			}
		}
		if maxIdx != k && maxIdx != n-k {
			t.Errorf("k=%d: expected peak at %d or %d, got %d", k, k, n-k, maxIdx)
		}
		// mirror symmetry about (n-1)/2
		if math.Abs(float64(out[k][0]-out[n-k][0])) > 1e-3 {
			t.Errorf("k=%d: expected symmetric peaks, got %f and %f",
				k, out[k][0], out[n-k][0])
		}
	}
}

// TestWorkerCountDeterminism verifies that results are bit-identical
// regardless of the worker partition count.
func TestWorkerCountDeterminism(t *testing.T) {
	n := 16
	npix := 103 // deliberately not divisible by the worker counts
	tr := New(n)
	in := make([][]float32, n)
	for i := range in {
		in[i] = make([]float32, npix)
		for p := 0; p < npix; p++ {
			in[i][p] = float32(math.Sin(0.37*float64(i*p+1)) + 0.5*float64(p%7))
		}
	}
	ref, err := tr.PowerSpectra(in, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, workers := range []int{2, 8, 16} {
		got, err := tr.PowerSpectra(in, workers)
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		for k := 0; k < n; k++ {
			for p := 0; p < npix; p++ {
				if got[k][p] != ref[k][p] {
					t.Fatalf("workers=%d: mismatch at [%d][%d]: %f vs %f",
						workers, k, p, got[k][p], ref[k][p])
				}
			}
		}
	}
}

// TestAgainstFFTOracle cross-checks the DFT magnitudes against an independent
// FFT implementation on a non-trivial signal.
func TestAgainstFFTOracle(t *testing.T) {
	n := 64
	tr := New(n)
	signal := make([]float64, n)
	in := make([][]float32, n)
	for i := range in {
		signal[i] = math.Sin(2*math.Pi*5*float64(i)/float64(n)) +
			0.25*math.Cos(2*math.Pi*11*float64(i)/float64(n)) + 0.1
		in[i] = []float32{float32(signal[i])}
	}
	out, err := tr.PowerSpectra(in, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	oracle := fft.FFTReal(signal)
	for k := 0; k < n; k++ {
		want := math.Hypot(real(oracle[k]), imag(oracle[k]))
		if math.Abs(float64(out[k][0])-want) > 1e-2 {
			t.Errorf("index %d: expected magnitude %f, got %f", k, want, out[k][0])
		}
	}
}

// TestShapeValidation checks that malformed batches are rejected up front.
func TestShapeValidation(t *testing.T) {
	tr := New(4)
	if _, err := tr.PowerSpectra(make([][]float32, 3), 1); err == nil {
		t.Errorf("expected error for wrong vector count")
	}
	ragged := [][]float32{{1, 2}, {1, 2}, {1}, {1, 2}}
	if _, err := tr.PowerSpectra(ragged, 1); err == nil {
		t.Errorf("expected error for ragged input")
	}
}
