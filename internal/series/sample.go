// Package series provides conditioning and extrema detection for per-frame
// biomechanical time series. A series starts life as a sequence of Samples
// (one per video frame, possibly missing), is cleaned to a plain []float64,
// smoothed with a Savitzky-Golay filter, normalised to [0,1], and finally
// scanned for peaks and valleys that bound exercise repetitions.
package series

// Sample is a value-or-missing entry in a per-frame series. A missing sample
// marks a frame where the signal could not be computed (absent keypoint,
// degenerate geometry). The zero value is missing.
type Sample struct {
	val     float64
	present bool
}

// Value returns a present sample holding v.
func Value(v float64) Sample { return Sample{val: v, present: true} }

// Missing returns a missing sample.
func Missing() Sample { return Sample{} }

// Present reports whether the sample holds a value.
func (s Sample) Present() bool { return s.present }

// Float returns the sample's value and whether it is present.
func (s Sample) Float() (float64, bool) { return s.val, s.present }
