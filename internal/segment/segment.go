// Package segment turns detected valley indices into contiguous repetition
// segments of a conditioned series. Valleys bound repetitions; a series that
// starts or ends mid-repetition gets an implicit boundary at the relevant
// end. The segmenter never invents interior boundaries: when the result
// disagrees with the annotated repetition count it reports a RepCountError
// alongside the segments it found, leaving the policy to the caller.
package segment

import (
	"errors"
	"fmt"
)

var (
	// ErrNotEnoughExtrema means the detector did not find enough structure
	// (at least one peak and two boundary valleys) to segment the series.
	ErrNotEnoughExtrema = errors.New("not enough extrema to segment")

	// ErrRepCountMismatch means segmentation produced a different number of
	// repetitions than the annotation promised.
	ErrRepCountMismatch = errors.New("repetition count mismatch")
)

// RepCountError reports a mismatch between segmented and annotated
// repetition counts. It wraps ErrRepCountMismatch and travels alongside the
// segments that were found, so callers can inspect the data and decide
// whether to keep it.
type RepCountError struct {
	Got  int
	Want int
}

func (e *RepCountError) Error() string {
	return fmt.Sprintf("repetition count mismatch: segmented %d, annotation says %d", e.Got, e.Want)
}

func (e *RepCountError) Unwrap() error { return ErrRepCountMismatch }

// Segment is one repetition: the half-open index window [Start, End) of the
// parent series together with a view over its values. Segments from one
// Split call are contiguous and non-overlapping.
type Segment struct {
	Start  int
	End    int
	Values []float64
}

// Len returns the number of samples in the segment.
func (s Segment) Len() int { return s.End - s.Start }

// Split cuts xs into repetition segments bounded by consecutive valleys.
// When the series starts rising toward a peak before any valley, index 0
// becomes an implicit leading boundary; when it ends after the last peak
// without coming back down, len(xs)-1 becomes an implicit trailing boundary.
// Segments are returned even when their count differs from expectedReps; in
// that case the error is a *RepCountError wrapping ErrRepCountMismatch.
func Split(xs []float64, peaks, valleys []int, expectedReps int) ([]Segment, error) {
	if len(peaks) == 0 || len(valleys) == 0 {
		return nil, fmt.Errorf("%w: %d peaks, %d valleys", ErrNotEnoughExtrema, len(peaks), len(valleys))
	}

	bounds := make([]int, 0, len(valleys)+2)
	if valleys[0] > peaks[0] {
		// Series starts mid-repetition; treat the start as a boundary.
		bounds = append(bounds, 0)
	}
	bounds = append(bounds, valleys...)
	if valleys[len(valleys)-1] < peaks[len(peaks)-1] {
		// Series ends mid-repetition after the last peak.
		bounds = append(bounds, len(xs)-1)
	}

	if len(bounds) < 2 {
		return nil, fmt.Errorf("%w: only %d repetition boundaries", ErrNotEnoughExtrema, len(bounds))
	}

	segments := make([]Segment, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i], bounds[i+1]
		segments = append(segments, Segment{
			Start:  start,
			End:    end,
			Values: xs[start:end],
		})
	}

	if len(segments) != expectedReps {
		return segments, &RepCountError{Got: len(segments), Want: expectedReps}
	}
	return segments, nil
}
