// Package pipeline wires the repetition-analysis stages together: trim the
// keypoint frames to an annotation window, derive the angle or distance
// series, condition it, detect extrema, segment into repetitions, and
// extract per-repetition features. Every stage is a pure transform, so runs
// over independent sessions share nothing and fan out freely.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fisia-labs/repmotion/internal/config"
	"github.com/fisia-labs/repmotion/internal/features"
	"github.com/fisia-labs/repmotion/internal/pose"
	"github.com/fisia-labs/repmotion/internal/segment"
	"github.com/fisia-labs/repmotion/internal/series"
	"github.com/fisia-labs/repmotion/internal/store"
)

// ErrMissingData means too few frames resolved the required keypoints to
// condition the series at all.
var ErrMissingData = errors.New("not enough resolvable frames")

// SignalSpec names the biomechanical signal to analyse. Three keypoints
// describe a joint angle (vertex in the middle); two describe a distance.
type SignalSpec struct {
	Name      string   `json:"name"`
	Keypoints []string `json:"keypoints"`
}

// Validate checks the keypoint arity.
func (s SignalSpec) Validate() error {
	if n := len(s.Keypoints); n != 2 && n != 3 {
		return fmt.Errorf("signal %q: need 2 (distance) or 3 (angle) keypoints, got %d", s.Name, n)
	}
	return nil
}

// Result is the analysis of one annotation window of one session.
type Result struct {
	RunID      string            `json:"run_id"`
	Video      string            `json:"video"`
	Signal     string            `json:"signal"`
	Annotation store.Annotation  `json:"annotation"`
	Smoothed   []float64         `json:"-"`
	Peaks      []int             `json:"peaks"`
	Valleys    []int             `json:"valleys"`
	Segments   []segment.Segment `json:"-"`
	Features   []features.Record `json:"features"`

	// RepCountWarning is set when segmentation found a different number of
	// repetitions than the annotation promised. The data is still usable.
	RepCountWarning string `json:"rep_count_warning,omitempty"`

	// Err records a per-annotation failure during a batch run.
	Err error `json:"-"`
}

// Analyze runs the full pipeline for one annotation window.
func Analyze(frames []pose.Frame, ann store.Annotation, sig SignalSpec, p config.Params) (*Result, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}

	window := pose.TrimFrames(frames, ann.StartTime, ann.EndTime, p.FPS)

	var raw []series.Sample
	if len(sig.Keypoints) == 3 {
		raw = pose.AngleSeries(window, sig.Keypoints[0], sig.Keypoints[1], sig.Keypoints[2])
	} else {
		raw = pose.DistanceSeries(window, sig.Keypoints[0], sig.Keypoints[1])
	}

	cleaned := series.Clean(raw)
	if len(cleaned) < p.SmoothWindow {
		return nil, fmt.Errorf("%w: %d of %d frames resolved signal %q, smoothing needs %d",
			ErrMissingData, len(cleaned), len(window), sig.Name, p.SmoothWindow)
	}

	smoothed, err := series.Smooth(cleaned, p.SmoothWindow, p.SmoothPolyOrder)
	if err != nil {
		return nil, fmt.Errorf("conditioning signal %q: %w", sig.Name, err)
	}
	normalized, err := series.Normalize(smoothed)
	if err != nil {
		// A flat signal has no repetitions worth segmenting.
		return nil, fmt.Errorf("signal %q: %w", sig.Name, err)
	}

	peaks, valleys, err := series.Detect(normalized, p.Detect)
	if err != nil {
		return nil, fmt.Errorf("detecting extrema in signal %q: %w", sig.Name, err)
	}

	result := &Result{
		RunID:      uuid.NewString(),
		Signal:     sig.Name,
		Annotation: ann,
		Smoothed:   normalized,
		Peaks:      peaks,
		Valleys:    valleys,
	}

	segments, err := segment.Split(normalized, peaks, valleys, ann.Repetitions)
	if err != nil {
		var repErr *segment.RepCountError
		if errors.As(err, &repErr) {
			result.RepCountWarning = repErr.Error()
		} else {
			return nil, fmt.Errorf("segmenting signal %q: %w", sig.Name, err)
		}
	}
	result.Segments = segments
	result.Features = features.Extract(segments)
	return result, nil
}

// Runner fans Analyze out across sessions with a bounded worker count.
type Runner struct {
	Workers int
	Params  config.Params
}

// Run analyses every annotation of every session. Per-annotation failures do
// not stop the batch: they come back as Results with Err set. The returned
// error is only non-nil when the context is cancelled.
func (r *Runner) Run(ctx context.Context, sessions []store.Session, sig SignalSpec) ([]*Result, error) {
	type job struct {
		session    *store.Session
		annotation store.Annotation
	}
	var jobs []job
	for i := range sessions {
		for _, ann := range sessions[i].Annotations {
			jobs = append(jobs, job{session: &sessions[i], annotation: ann})
		}
	}

	workers := r.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]*Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Analyze(j.session.Keypoints, j.annotation, sig, r.Params)
			if err != nil {
				res = &Result{
					Video:      j.session.Video,
					Signal:     sig.Name,
					Annotation: j.annotation,
					Err:        err,
				}
			} else {
				res.Video = j.session.Video
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
