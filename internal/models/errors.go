package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUncalibrated is returned when a physical frequency or resolution scale
// is required but the input carries pixel-only calibration.
var ErrUncalibrated = errors.New("image has no physical calibration")

// DimensionMismatchError indicates that declared stack dimensions are
// inconsistent: slice count not divisible by phases x angles, or a vendor
// tiling that does not match the image width/height.
type DimensionMismatchError struct {
	Reason string
}

func (e *DimensionMismatchError) Error() string {
	return "dimension mismatch: " + e.Reason
}

// InvalidInputError indicates input of the wrong precision, shape or size
// for an operation (e.g. non-32-bit data or a single-slice stack passed to
// the orthogonal resampler).
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return "invalid input: " + e.Reason
}

// BatchError aggregates failures from parallel worker partitions. When any
// partition fails the whole batch result must be discarded; the error lists
// every failed partition so nothing completes silently.
type BatchError struct {
	// Failures maps partition index to the failure observed in that worker.
	Failures map[int]error
}

func (e *BatchError) Error() string {
	parts := make([]int, 0, len(e.Failures))
	for p := range e.Failures {
		parts = append(parts, p)
	}
	sort.Ints(parts)
	msgs := make([]string, len(parts))
	for i, p := range parts {
		msgs[i] = fmt.Sprintf("partition %d: %v", p, e.Failures[p])
	}
	return "batch transform failed: " + strings.Join(msgs, "; ")
}
