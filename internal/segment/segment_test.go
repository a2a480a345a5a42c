package segment

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplitTwoRepetitions(t *testing.T) {
	xs := []float64{10, 20, 30, 20, 10, 20, 30, 20, 10}
	peaks := []int{2, 6}
	valleys := []int{0, 4, 8}

	segments, err := Split(xs, peaks, valleys, 2)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}

	want := []Segment{
		{Start: 0, End: 4, Values: []float64{10, 20, 30, 20}},
		{Start: 4, End: 8, Values: []float64{10, 20, 30, 20}},
	}
	if diff := cmp.Diff(want, segments); diff != "" {
		t.Errorf("Split mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitPrependsImplicitStart(t *testing.T) {
	// Series starts rising toward the first peak before any valley.
	xs := []float64{20, 30, 20, 10, 20, 30, 20, 10}
	peaks := []int{1, 5}
	valleys := []int{3, 7}

	segments, err := Split(xs, peaks, valleys, 2)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	if segments[0].Start != 0 {
		t.Errorf("first segment starts at %d, want implicit boundary 0", segments[0].Start)
	}
	if len(segments) != 2 {
		t.Errorf("got %d segments, want 2", len(segments))
	}
}

func TestSplitAppendsImplicitEnd(t *testing.T) {
	// Series ends mid-repetition after the last peak.
	xs := []float64{10, 20, 30, 20, 10, 20, 30, 20}
	peaks := []int{2, 6}
	valleys := []int{0, 4}

	segments, err := Split(xs, peaks, valleys, 2)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	last := segments[len(segments)-1]
	if last.End != len(xs)-1 {
		t.Errorf("last segment ends at %d, want implicit boundary %d", last.End, len(xs)-1)
	}
	if len(segments) != 2 {
		t.Errorf("got %d segments, want 2", len(segments))
	}
}

func TestSplitSegmentsAreContiguous(t *testing.T) {
	xs := make([]float64, 50)
	for i := range xs {
		xs[i] = float64(i % 10)
	}
	valleys := []int{0, 10, 20, 30, 40}
	peaks := []int{9, 19, 29, 39}

	segments, err := Split(xs, peaks, valleys, 4)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}
	for i := 1; i < len(segments); i++ {
		if segments[i].Start != segments[i-1].End {
			t.Errorf("segment %d starts at %d, previous ends at %d", i, segments[i].Start, segments[i-1].End)
		}
	}
}

func TestSplitRoundTrip(t *testing.T) {
	xs := []float64{10, 20, 30, 20, 10, 20, 30, 20, 10}
	valleys := []int{0, 4, 8}
	peaks := []int{2, 6}

	segments, err := Split(xs, peaks, valleys, 2)
	if err != nil {
		t.Fatalf("Split returned error: %v", err)
	}

	var concat []float64
	for _, seg := range segments {
		concat = append(concat, seg.Values...)
	}
	if diff := cmp.Diff(xs[valleys[0]:valleys[len(valleys)-1]], concat); diff != "" {
		t.Errorf("concatenated segments differ from series window (-want +got):\n%s", diff)
	}
}

func TestSplitRepCountMismatch(t *testing.T) {
	xs := []float64{10, 20, 30, 20, 10, 20, 30, 20, 10}
	segments, err := Split(xs, []int{2, 6}, []int{0, 4, 8}, 3)

	if !errors.Is(err, ErrRepCountMismatch) {
		t.Fatalf("expected ErrRepCountMismatch, got %v", err)
	}
	var repErr *RepCountError
	if !errors.As(err, &repErr) {
		t.Fatal("error is not a *RepCountError")
	}
	if repErr.Got != 2 || repErr.Want != 3 {
		t.Errorf("RepCountError = got %d want %d, expected got 2 want 3", repErr.Got, repErr.Want)
	}
	// The segments found are still returned alongside the error.
	if len(segments) != 2 {
		t.Errorf("got %d segments with mismatch error, want 2", len(segments))
	}
}

func TestSplitNotEnoughExtrema(t *testing.T) {
	testCases := []struct {
		name    string
		peaks   []int
		valleys []int
	}{
		{"no_peaks", nil, []int{0, 4}},
		{"no_valleys", []int{2}, nil},
		// A lone valley at the peak index triggers neither repair rule,
		// leaving a single boundary.
		{"single_boundary", []int{2}, []int{2}},
	}

	xs := []float64{10, 20, 30, 20, 10}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Split(xs, tc.peaks, tc.valleys, 1)
			if !errors.Is(err, ErrNotEnoughExtrema) {
				t.Errorf("expected ErrNotEnoughExtrema, got %v", err)
			}
		})
	}
}
