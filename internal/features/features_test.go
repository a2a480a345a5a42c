package features

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fisia-labs/repmotion/internal/segment"
)

func seg(values ...float64) segment.Segment {
	return segment.Segment{Start: 0, End: len(values), Values: values}
}

func TestExtractKnownValues(t *testing.T) {
	records := Extract([]segment.Segment{seg(1, 2, 3, 4)})
	require.Len(t, records, 1)
	rec := records[0]

	assert.Equal(t, 1, rec.Repetition)
	assert.Equal(t, 4, rec.Duration)
	assert.Equal(t, 1.0, rec.Min)
	assert.Equal(t, 4.0, rec.Max)
	assert.Equal(t, 3.0, rec.Range)
	assert.InDelta(t, 2.5, rec.Mean, 1e-12)
	assert.InDelta(t, 2.5, rec.Median, 1e-12)
	assert.InDelta(t, 1.25, rec.Variance, 1e-12)
	assert.InDelta(t, math.Sqrt(1.25), rec.StdDev, 1e-12)
	assert.InDelta(t, math.Sqrt(1.25)/2.5, rec.CoV, 1e-12)
	assert.InDelta(t, 1.5, rec.IQR, 1e-12)
	assert.InDelta(t, 3.0, rec.TotalDisplacement, 1e-12)
	assert.InDelta(t, 0.0, rec.Smoothness, 1e-12)
	assert.InDelta(t, 1.0, rec.Symmetry, 1e-12)
	// Four values land in four distinct bins of the 10-bin histogram.
	assert.InDelta(t, math.Log(4), rec.Entropy, 1e-12)
	// Symmetric values: zero skewness, known sample excess kurtosis.
	assert.InDelta(t, 0.0, rec.Skewness, 1e-12)
	assert.InDelta(t, -1.2, rec.Kurtosis, 1e-9)
}

func TestExtractConstantSegment(t *testing.T) {
	records := Extract([]segment.Segment{seg(5, 5, 5, 5, 5)})
	require.Len(t, records, 1)
	rec := records[0]

	assert.Equal(t, 0.0, rec.StdDev)
	assert.Equal(t, 0.0, rec.Variance)
	assert.Equal(t, 0.0, rec.Range)
	// Nonzero mean, zero spread: CoV is defined and zero.
	assert.Equal(t, 0.0, rec.CoV)
	assert.True(t, math.IsNaN(rec.Skewness), "skewness of constant segment should be NaN")
	assert.True(t, math.IsNaN(rec.Kurtosis), "kurtosis of constant segment should be NaN")
	assert.Equal(t, 0.0, rec.Entropy)
	assert.Equal(t, 0.0, rec.Smoothness)
	assert.Equal(t, 0.0, rec.Symmetry)
}

func TestExtractZeroMeanSegment(t *testing.T) {
	records := Extract([]segment.Segment{seg(-1, 0, 1)})
	require.Len(t, records, 1)
	assert.True(t, math.IsNaN(records[0].CoV), "CoV with zero mean should be NaN")
}

func TestExtractShortSegments(t *testing.T) {
	records := Extract([]segment.Segment{seg(1, 2)})
	require.Len(t, records, 1)
	rec := records[0]

	assert.Equal(t, 2, rec.Duration)
	assert.True(t, math.IsNaN(rec.Smoothness), "smoothness needs three samples")
	assert.True(t, math.IsNaN(rec.Skewness), "skewness needs three samples")
	assert.True(t, math.IsNaN(rec.Kurtosis), "kurtosis needs four samples")
	assert.InDelta(t, 1.0, rec.TotalDisplacement, 1e-12)
}

func TestExtractRepetitionIndices(t *testing.T) {
	records := Extract([]segment.Segment{
		seg(1, 2, 1),
		seg(2, 3, 2),
		seg(1, 3, 1),
	})
	require.Len(t, records, 3)
	for i, rec := range records {
		assert.Equal(t, i+1, rec.Repetition)
	}
}

func TestRecordJSONFieldNames(t *testing.T) {
	records := Extract([]segment.Segment{seg(1, 2, 3, 4)})
	data, err := json.Marshal(records[0])
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, key := range []string{
		"Repetition", "min", "max", "median", "duration", "standardDeviation",
		"mean", "range", "variance", "CoV", "skewness", "kurtosis", "IQR",
		"TotalDisplacement", "Entropy", "Smoothness", "Symmetry",
	} {
		assert.Contains(t, decoded, key)
	}
}

func TestRecordMarshalsNaNAsNull(t *testing.T) {
	records := Extract([]segment.Segment{seg(5, 5, 5, 5, 5)})
	data, err := json.Marshal(records[0])
	require.NoError(t, err, "NaN sentinels must not break JSON encoding")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded["skewness"])
	assert.Nil(t, decoded["kurtosis"])
	assert.Equal(t, 0.0, decoded["CoV"])
}

func TestPercentileLinearInterpolation(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1.75, percentile(sorted, 0.25), 1e-12)
	assert.InDelta(t, 3.25, percentile(sorted, 0.75), 1e-12)
	assert.InDelta(t, 1.0, percentile(sorted, 0), 1e-12)
	assert.InDelta(t, 4.0, percentile(sorted, 1), 1e-12)
	assert.Equal(t, 7.0, percentile([]float64{7}, 0.5))
}
