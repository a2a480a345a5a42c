package series

import (
	"fmt"
	"sort"
)

// DetectParams gates which local extrema count as repetition peaks and
// valleys. Heights apply to the (typically normalised) series values,
// distances are in samples, prominences use the topographic definition.
type DetectParams struct {
	MinPeakHeight       float64 `json:"min_peak_height"`
	MinValleyHeight     float64 `json:"min_valley_height"`
	MinPeakDistance     int     `json:"min_peak_distance"`
	MinValleyDistance   int     `json:"min_valley_distance"`
	MinPeakProminence   float64 `json:"min_peak_prominence"`
	MinValleyProminence float64 `json:"min_valley_prominence"`
}

// Detect locates peaks and valleys in xs. Peaks are local maxima at least
// MinPeakHeight tall, MinPeakDistance samples apart and MinPeakProminence
// prominent. Valleys are found by running the same detector over the negated
// series with a -MinValleyHeight height gate, so a valley must lie at or
// below MinValleyHeight. Both index sets are strictly increasing and index
// into xs. Deterministic for identical inputs.
func Detect(xs []float64, p DetectParams) (peaks, valleys []int, err error) {
	if p.MinPeakDistance < 1 || p.MinValleyDistance < 1 {
		return nil, nil, fmt.Errorf("%w: extrema distances must be >= 1 sample", ErrInvalidParameter)
	}

	peaks = findPeaks(xs, p.MinPeakHeight, p.MinPeakDistance, p.MinPeakProminence)

	negated := make([]float64, len(xs))
	for i, v := range xs {
		negated[i] = -v
	}
	valleys = findPeaks(negated, -p.MinValleyHeight, p.MinValleyDistance, p.MinValleyProminence)

	return peaks, valleys, nil
}

// findPeaks returns indices of local maxima passing the height, distance and
// prominence gates, in increasing order. Flat-topped maxima report their
// plateau midpoint.
func findPeaks(xs []float64, minHeight float64, minDistance int, minProminence float64) []int {
	candidates := localMaxima(xs)

	kept := candidates[:0]
	for _, i := range candidates {
		if xs[i] >= minHeight {
			kept = append(kept, i)
		}
	}
	kept = filterByDistance(xs, kept, minDistance)

	out := make([]int, 0, len(kept))
	for _, i := range kept {
		if prominence(xs, i) >= minProminence {
			out = append(out, i)
		}
	}
	return out
}

// localMaxima finds interior samples strictly greater than both neighbours.
// A plateau bounded by strictly smaller samples on both sides counts once,
// at its midpoint. Series endpoints are never maxima.
func localMaxima(xs []float64) []int {
	var maxima []int
	i := 1
	for i < len(xs)-1 {
		if xs[i] <= xs[i-1] {
			i++
			continue
		}
		// Walk the (possibly one-sample) plateau.
		j := i
		for j < len(xs)-1 && xs[j+1] == xs[i] {
			j++
		}
		if j < len(xs)-1 && xs[j+1] < xs[i] {
			maxima = append(maxima, (i+j)/2)
		}
		i = j + 1
	}
	return maxima
}

// filterByDistance suppresses maxima closer than minDistance samples to a
// taller surviving maximum. Ties resolve in favour of the leftmost, which
// keeps the result deterministic.
func filterByDistance(xs []float64, maxima []int, minDistance int) []int {
	if len(maxima) < 2 || minDistance <= 1 {
		return maxima
	}

	// Visit maxima from tallest to shortest.
	order := make([]int, len(maxima))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return xs[maxima[order[a]]] > xs[maxima[order[b]]]
	})

	valid := make([]bool, len(maxima))
	for i := range valid {
		valid[i] = true
	}
	for _, k := range order {
		if !valid[k] {
			continue
		}
		for n := k - 1; n >= 0 && maxima[k]-maxima[n] < minDistance; n-- {
			valid[n] = false
		}
		for n := k + 1; n < len(maxima) && maxima[n]-maxima[k] < minDistance; n++ {
			valid[n] = false
		}
	}

	out := maxima[:0]
	for i, idx := range maxima {
		if valid[i] {
			out = append(out, idx)
		}
	}
	return out
}

// prominence measures how far the maximum at i rises above the higher of the
// lowest points reached before meeting a strictly taller sample on each side.
// Edges of the series act as bases when no taller sample exists.
func prominence(xs []float64, i int) float64 {
	peak := xs[i]

	leftBase := peak
	for j := i - 1; j >= 0; j-- {
		if xs[j] > peak {
			break
		}
		if xs[j] < leftBase {
			leftBase = xs[j]
		}
	}

	rightBase := peak
	for j := i + 1; j < len(xs); j++ {
		if xs[j] > peak {
			break
		}
		if xs[j] < rightBase {
			rightBase = xs[j]
		}
	}

	base := leftBase
	if rightBase > base {
		base = rightBase
	}
	return peak - base
}
