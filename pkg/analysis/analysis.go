// Package analysis bundles the individual SIM quality-control routines
// behind a common Check interface and collects their outputs (transformed
// images, radial profiles, overlay geometry, operator-facing notes) into
// reportable results.
package analysis

import (
	"fmt"
	"io"
	"sort"

	"simqc/internal/models"
)

// Check is one quality-control routine over an image volume. Implementations
// are stateless between runs; all configuration is carried by the struct.
type Check interface {
	// Name returns the human-readable check title.
	Name() string

	// Run executes the check against the volume and returns its results.
	// The input volume is never modified.
	Run(vol *models.ImageVolume) (*Result, error)
}

// Result holds everything a check produced for the reporting sink.
type Result struct {
	// Name is the title of the check that produced the result.
	Name string

	// Images maps a descriptive label to each produced image volume.
	Images map[string]*models.ImageVolume

	// Profiles holds radial profiles, one per channel where applicable.
	Profiles []*models.RadialProfile

	// Rings holds resolution ring overlay geometry for the spectra.
	Rings []models.ResolutionRing

	// Stats maps a statistic label to its value.
	Stats map[string]float64

	// Info holds interpretation guidance for the operator.
	Info []string
}

// NewResult returns an empty result for the named check.
func NewResult(name string) *Result {
	return &Result{
		Name:   name,
		Images: make(map[string]*models.ImageVolume),
		Stats:  make(map[string]float64),
	}
}

// AddImage records an output image under a descriptive label.
func (r *Result) AddImage(label string, vol *models.ImageVolume) {
	r.Images[label] = vol
}

// AddInfo appends an operator-facing note.
func (r *Result) AddInfo(info string) {
	r.Info = append(r.Info, info)
}

// Report writes a plain-text summary of the result.
func (r *Result) Report(w io.Writer) {
	fmt.Fprintf(w, "=== %s ===\n", r.Name)
	labels := make([]string, 0, len(r.Images))
	for label := range r.Images {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		v := r.Images[label]
		fmt.Fprintf(w, "  image %-40s %dx%d, %dC/%dZ/%dT, %d-bit\n",
			label+":", v.Width, v.Height, v.Channels, v.ZSlices, v.Frames, v.BitDepth)
	}
	for i, p := range r.Profiles {
		fmt.Fprintf(w, "  radial profile C%d: %d bins, %s frequency axis\n",
			i+1, p.Bins, "1/"+p.Unit.String())
	}
	if len(r.Rings) > 0 {
		fmt.Fprintf(w, "  resolution rings:")
		for _, ring := range r.Rings {
			fmt.Fprintf(w, " %.2f", ring.Resolution)
		}
		fmt.Fprintln(w)
	}
	statLabels := make([]string, 0, len(r.Stats))
	for label := range r.Stats {
		statLabels = append(statLabels, label)
	}
	sort.Strings(statLabels)
	for _, label := range statLabels {
		fmt.Fprintf(w, "  %s: %.4f\n", label, r.Stats[label])
	}
	for _, info := range r.Info {
		fmt.Fprintf(w, "  %s\n", info)
	}
}
