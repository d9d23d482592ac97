// Package models defines the shared data structures for SIM quality-control
// analysis: calibrated multi-dimensional image volumes, power spectra, radial
// profiles and overlay geometry.
package models

import (
	"fmt"
	"strings"
)

// Unit identifies the physical length unit of an image calibration.
// UnitPixel marks data without real-world calibration; components that need
// physical frequency or resolution scales must refuse such input.
type Unit int

const (
	UnitPixel Unit = iota
	UnitMicron
	UnitNanometer
	UnitMillimeter
)

// String returns the conventional label for the unit.
func (u Unit) String() string {
	switch u {
	case UnitMicron:
		return "micron"
	case UnitNanometer:
		return "nm"
	case UnitMillimeter:
		return "mm"
	default:
		return "pixel"
	}
}

// ParseUnit converts a unit label from acquisition metadata into a typed Unit.
// The historical spellings used by acquisition software ("um", "µm",
// "microns", ...) are accepted; anything unrecognized maps to UnitPixel.
func ParseUnit(s string) Unit {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "micro"), strings.HasPrefix(s, "um"),
		strings.HasPrefix(s, "µm"), strings.HasPrefix(s, "μm"):
		return UnitMicron
	case s == "nm" || strings.HasPrefix(s, "nanomet"):
		return UnitNanometer
	case s == "mm" || strings.HasPrefix(s, "millimet"):
		return UnitMillimeter
	default:
		return UnitPixel
	}
}

// Calibration holds the physical size of a voxel along each axis.
type Calibration struct {
	// PixelWidth is the physical length per pixel along X.
	PixelWidth float64

	// PixelHeight is the physical length per pixel along Y.
	PixelHeight float64

	// PixelDepth is the physical spacing between consecutive Z slices.
	PixelDepth float64

	// Unit is the length unit of the three sizes above.
	Unit Unit
}

// Calibrated reports whether the calibration carries a real length unit.
func (c Calibration) Calibrated() bool {
	return c.Unit != UnitPixel
}

// ImageVolume is a dense multi-dimensional stack of real-valued samples.
// Pixels within an XY plane are stored row-major; planes are ordered with
// channel varying fastest, then Z, then time (CZT order). SIM phase and angle
// dimensions, when present, are folded into Z by the CPZAT convention handled
// in pkg/reindex.
type ImageVolume struct {
	// Data holds all samples; length is Width*Height*Channels*ZSlices*Frames.
	Data []float32

	// Width and Height are the XY plane dimensions in pixels.
	Width  int
	Height int

	// Channels, ZSlices and Frames are the stack extents.
	Channels int
	ZSlices  int
	Frames   int

	// BitDepth records the precision of the source data (8, 16 or 32).
	// All samples are held as float32 regardless; BitDepth constrains which
	// operations accept the volume.
	BitDepth int

	// Cal is the physical voxel calibration. For a Fourier volume the pixel
	// sizes retain the source image calibration; frequency axes are derived
	// from them by the consumer.
	Cal Calibration

	// Fourier marks the samples as a power spectrum rather than intensity
	// imagery, with the zero-frequency component at (w/2, h/2).
	Fourier bool

	// DisplayMin and DisplayMax are the display range hints carried from the
	// source volume; they do not affect numeric results.
	DisplayMin float64
	DisplayMax float64
}

// NewImageVolume allocates a zeroed volume with the given extents.
func NewImageVolume(width, height, channels, zSlices, frames, bitDepth int) *ImageVolume {
	return &ImageVolume{
		Data:     make([]float32, width*height*channels*zSlices*frames),
		Width:    width,
		Height:   height,
		Channels: channels,
		ZSlices:  zSlices,
		Frames:   frames,
		BitDepth: bitDepth,
	}
}

// SliceCount returns the total number of XY planes in the stack.
func (v *ImageVolume) SliceCount() int {
	return v.Channels * v.ZSlices * v.Frames
}

// PlaneSize returns the number of pixels in one XY plane.
func (v *ImageVolume) PlaneSize() int {
	return v.Width * v.Height
}

// SliceIndex converts a zero-based (channel, z, time) position into the
// zero-based linear plane index with channel varying fastest.
func (v *ImageVolume) SliceIndex(c, z, t int) int {
	return c + v.Channels*(z+v.ZSlices*t)
}

// Slice returns the pixel data of plane n as a subslice of the backing array.
// The caller must not hold the returned slice across mutations of the volume.
func (v *ImageVolume) Slice(n int) []float32 {
	ps := v.PlaneSize()
	return v.Data[n*ps : (n+1)*ps]
}

// SetSlice copies pix into plane n. pix must have exactly PlaneSize samples.
func (v *ImageVolume) SetSlice(n int, pix []float32) error {
	if len(pix) != v.PlaneSize() {
		return &InvalidInputError{Reason: fmt.Sprintf(
			"slice has %d pixels, plane needs %d", len(pix), v.PlaneSize())}
	}
	copy(v.Slice(n), pix)
	return nil
}

// At returns the sample at (x, y) within plane n.
func (v *ImageVolume) At(n, x, y int) float32 {
	return v.Data[n*v.PlaneSize()+y*v.Width+x]
}

// Clone returns a deep copy of the volume.
func (v *ImageVolume) Clone() *ImageVolume {
	out := *v
	out.Data = make([]float32, len(v.Data))
	copy(out.Data, v.Data)
	return &out
}

// Validate checks the buffer length against the declared extents.
func (v *ImageVolume) Validate() error {
	want := v.Width * v.Height * v.SliceCount()
	if len(v.Data) != want {
		return &DimensionMismatchError{Reason: fmt.Sprintf(
			"buffer has %d samples but %dx%dx%d planes require %d",
			len(v.Data), v.Width, v.Height, v.SliceCount(), want)}
	}
	return nil
}

// RadialProfile is the azimuthal average of a 2D spectrum: one (frequency,
// amplitude) pair per radial bin, ascending from the zero-frequency center.
type RadialProfile struct {
	// Freq holds the spatial frequency of each bin in inverse calibrated
	// units (or inverse pixels for uncalibrated sources).
	Freq []float64

	// Mean holds the mean intensity of all pixels falling in each bin.
	Mean []float64

	// Bins is the number of radial bins used.
	Bins int

	// Fourier records whether the source image was a power spectrum,
	// which determines whether Freq is an inverse-length axis.
	Fourier bool

	// Unit is the length unit the frequency axis is the inverse of.
	Unit Unit
}

// ResolutionRing describes one resolution annulus on a power spectrum:
// the bounding box of the ellipse plus a label anchor, all in pixel
// coordinates of the spectrum image.
type ResolutionRing struct {
	// Resolution is the physical resolution the ring marks.
	Resolution float64

	// X, Y are the top-left corner of the ellipse bounding box.
	X, Y float64

	// W, H are the full width and height of the ellipse.
	W, H float64

	// LabelX, LabelY anchor the text label, alternating above/below
	// successive rings.
	LabelX, LabelY float64
}
