package pose

import "github.com/fisia-labs/repmotion/internal/series"

// AngleSeries computes the angle at keypoint b between rays to keypoints a
// and c for every frame. Frames where any of the three keypoints is absent,
// or where the geometry is degenerate, contribute a missing sample. The
// result always has exactly one sample per input frame.
func AngleSeries(frames []Frame, a, b, c string) []series.Sample {
	out := make([]series.Sample, len(frames))
	for i, f := range frames {
		pa, okA := f.Lookup(a)
		pb, okB := f.Lookup(b)
		pc, okC := f.Lookup(c)
		if !okA || !okB || !okC {
			out[i] = series.Missing()
			continue
		}
		deg, err := Angle(pa, pb, pc)
		if err != nil {
			out[i] = series.Missing()
			continue
		}
		out[i] = series.Value(deg)
	}
	return out
}

// DistanceSeries computes the distance between keypoints a and b for every
// frame, with missing samples where either keypoint is absent. One sample
// per input frame.
func DistanceSeries(frames []Frame, a, b string) []series.Sample {
	out := make([]series.Sample, len(frames))
	for i, f := range frames {
		pa, okA := f.Lookup(a)
		pb, okB := f.Lookup(b)
		if !okA || !okB {
			out[i] = series.Missing()
			continue
		}
		out[i] = series.Value(Distance(pa, pb))
	}
	return out
}

// TrimFrames clips a frame sequence to the annotation window
// [startTime, endTime] in seconds, inclusive of the end frame. Out-of-range
// windows clamp to the sequence bounds; an inverted window yields nil.
func TrimFrames(frames []Frame, startTime, endTime float64, fps int) []Frame {
	start := int(startTime * float64(fps))
	end := int(endTime*float64(fps)) + 1

	if start < 0 {
		start = 0
	}
	if end > len(frames) {
		end = len(frames)
	}
	if start >= end {
		return nil
	}
	return frames[start:end]
}
