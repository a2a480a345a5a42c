// Package features computes the per-repetition statistic vector consumed by
// the downstream correctness classifier. Each segmented repetition yields one
// Record of 16 named statistics over the segment's raw values.
//
// Conventions follow the classifier's training data: standard deviation and
// variance are population forms, skewness and kurtosis are the bias-adjusted
// sample forms (kurtosis is excess kurtosis), and percentiles interpolate
// linearly between order statistics. Degenerate segments (too short, or with
// zero variance) produce NaN sentinels in the affected fields rather than
// errors; consumers must treat NaN as "undefined for this repetition".
package features

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/fisia-labs/repmotion/internal/segment"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const entropyBins = 10

// Record holds the statistics of one repetition. Repetition is the 1-based
// position of the segment within its segmentation. JSON field names match
// the classifier's feature schema.
type Record struct {
	Repetition        int     `json:"Repetition"`
	Min               float64 `json:"min"`
	Max               float64 `json:"max"`
	Median            float64 `json:"median"`
	Duration          int     `json:"duration"`
	StdDev            float64 `json:"standardDeviation"`
	Mean              float64 `json:"mean"`
	Range             float64 `json:"range"`
	Variance          float64 `json:"variance"`
	CoV               float64 `json:"CoV"`
	Skewness          float64 `json:"skewness"`
	Kurtosis          float64 `json:"kurtosis"`
	IQR               float64 `json:"IQR"`
	TotalDisplacement float64 `json:"TotalDisplacement"`
	Entropy           float64 `json:"Entropy"`
	Smoothness        float64 `json:"Smoothness"`
	Symmetry          float64 `json:"Symmetry"`
}

// MarshalJSON encodes NaN sentinels as null, since JSON has no NaN literal
// and the classifier's loader expects null for undefined statistics.
func (r Record) MarshalJSON() ([]byte, error) {
	m := map[string]interface{}{
		"Repetition": r.Repetition,
		"duration":   r.Duration,
	}
	set := func(key string, v float64) {
		if math.IsNaN(v) {
			m[key] = nil
		} else {
			m[key] = v
		}
	}
	set("min", r.Min)
	set("max", r.Max)
	set("median", r.Median)
	set("standardDeviation", r.StdDev)
	set("mean", r.Mean)
	set("range", r.Range)
	set("variance", r.Variance)
	set("CoV", r.CoV)
	set("skewness", r.Skewness)
	set("kurtosis", r.Kurtosis)
	set("IQR", r.IQR)
	set("TotalDisplacement", r.TotalDisplacement)
	set("Entropy", r.Entropy)
	set("Smoothness", r.Smoothness)
	set("Symmetry", r.Symmetry)
	return json.Marshal(m)
}

// Extract computes one Record per segment, in order. It never fails: any
// statistic that is undefined for a segment is NaN in the result.
func Extract(segments []segment.Segment) []Record {
	records := make([]Record, 0, len(segments))
	for i, seg := range segments {
		rec := compute(seg.Values)
		rec.Repetition = i + 1
		records = append(records, rec)
	}
	return records
}

func compute(xs []float64) Record {
	nan := math.NaN()
	rec := Record{
		Duration:   len(xs),
		Min:        nan,
		Max:        nan,
		Median:     nan,
		StdDev:     nan,
		Mean:       nan,
		Range:      nan,
		Variance:   nan,
		CoV:        nan,
		Skewness:   nan,
		Kurtosis:   nan,
		IQR:        nan,
		Entropy:    nan,
		Smoothness: nan,
		Symmetry:   nan,
	}
	if len(xs) == 0 {
		return rec
	}

	n := len(xs)
	rec.Min = floats.Min(xs)
	rec.Max = floats.Max(xs)
	rec.Range = rec.Max - rec.Min
	rec.Mean = stat.Mean(xs, nil)
	rec.Variance = stat.PopVariance(xs, nil)
	rec.StdDev = math.Sqrt(rec.Variance)

	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)
	rec.Median = percentile(sorted, 0.5)
	rec.IQR = percentile(sorted, 0.75) - percentile(sorted, 0.25)

	if rec.Mean != 0 {
		rec.CoV = rec.StdDev / rec.Mean
	}
	if n >= 3 && rec.Variance > 0 {
		rec.Skewness = stat.Skew(xs, nil)
	}
	if n >= 4 && rec.Variance > 0 {
		rec.Kurtosis = stat.ExKurtosis(xs, nil)
	}

	var displacement float64
	for i := 1; i < n; i++ {
		displacement += math.Abs(xs[i] - xs[i-1])
	}
	rec.TotalDisplacement = displacement

	rec.Entropy = signalEntropy(xs, rec.Min, rec.Range)

	if n >= 3 {
		// Mean squared second discrete difference.
		var sum float64
		for i := 2; i < n; i++ {
			d2 := xs[i] - 2*xs[i-1] + xs[i-2]
			sum += d2 * d2
		}
		rec.Smoothness = sum / float64(n-2)
	}

	var absDev float64
	for _, v := range xs {
		absDev += math.Abs(v - rec.Mean)
	}
	rec.Symmetry = absDev / float64(n)

	return rec
}

// percentile returns the p-quantile of sorted values, interpolating linearly
// between order statistics. Matches the numpy "linear" percentile method
// the classifier's features were built with (gonum's quantile cumulant
// kinds use a different interpolation).
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// signalEntropy is the Shannon entropy of a 10-bin histogram of xs. With a
// density histogram the bin probabilities reduce to count/n, so a constant
// segment (zero range) collapses into one bin and has zero entropy.
func signalEntropy(xs []float64, min, span float64) float64 {
	if span == 0 {
		return 0
	}
	counts := make([]float64, entropyBins)
	width := span / entropyBins
	for _, v := range xs {
		bin := int((v - min) / width)
		if bin >= entropyBins {
			bin = entropyBins - 1
		}
		counts[bin]++
	}
	floats.Scale(1/float64(len(xs)), counts)
	return stat.Entropy(counts)
}
