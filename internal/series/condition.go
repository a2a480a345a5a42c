package series

import (
	"fmt"

	"github.com/pconstantinou/savitzkygolay"
	"gonum.org/v1/gonum/floats"
)

// Clean drops missing samples and returns the remaining values in order.
// No interpolation happens: gaps simply vanish, so indices into the result
// no longer line up with frame numbers. Output is never longer than input.
func Clean(samples []Sample) []float64 {
	out := make([]float64, 0, len(samples))
	for _, s := range samples {
		if v, ok := s.Float(); ok {
			out = append(out, v)
		}
	}
	return out
}

// Smooth applies a Savitzky-Golay filter (local polynomial regression over a
// sliding window) to xs. windowLength must be a positive odd integer,
// polyOrder must be smaller than windowLength, and xs must be at least one
// window long. Output length equals input length.
func Smooth(xs []float64, windowLength, polyOrder int) ([]float64, error) {
	if windowLength <= 0 || windowLength%2 == 0 {
		return nil, fmt.Errorf("%w: window length %d must be a positive odd integer", ErrInvalidParameter, windowLength)
	}
	if polyOrder < 0 || polyOrder >= windowLength {
		return nil, fmt.Errorf("%w: poly order %d must be in [0, %d)", ErrInvalidParameter, polyOrder, windowLength)
	}
	if len(xs) < windowLength {
		return nil, fmt.Errorf("%w: series length %d shorter than window %d", ErrInvalidParameter, len(xs), windowLength)
	}

	// The filter has stricter window requirements than the checks above
	// (it rejects windows shorter than 5); keep the sentinel uniform.
	filter, err := savitzkygolay.NewFilter(windowLength, 0, polyOrder)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	// The filter wants sample positions; frames are equally spaced.
	t := make([]float64, len(xs))
	for i := range t {
		t[i] = float64(i)
	}
	smoothed, err := filter.Process(xs, t)
	if err != nil {
		return nil, fmt.Errorf("smoothing series: %w", err)
	}
	return smoothed, nil
}

// Normalize min-max scales xs into [0,1]. When all values are equal it
// returns an all-zero slice together with ErrZeroRange; callers that can
// live with a flat signal may ignore the error.
func Normalize(xs []float64) ([]float64, error) {
	if len(xs) == 0 {
		return nil, nil
	}
	min := floats.Min(xs)
	max := floats.Max(xs)
	out := make([]float64, len(xs))
	if min == max {
		return out, fmt.Errorf("%w: all %d values equal %v", ErrZeroRange, len(xs), min)
	}
	span := max - min
	for i, v := range xs {
		out[i] = (v - min) / span
	}
	return out, nil
}
