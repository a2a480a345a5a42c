// Package pose models pose-estimation keypoint sequences and derives
// per-frame biomechanical signals (joint angles, limb distances) from them.
// Keypoints follow the COCO naming convention ("left_knee", "right_wrist").
package pose

import (
	"errors"
	"math"
)

// ErrDegenerateGeometry is returned when an angle is requested at a vertex
// with a zero-length ray, where the angle is undefined.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// Keypoint is a named 2D anatomical landmark with a detection confidence
// score, as produced per frame by an external pose estimator.
type Keypoint struct {
	Name  string  `json:"name" bson:"name"`
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
	Score float64 `json:"score" bson:"score"`
}

// Frame is the set of keypoints detected in one video frame.
type Frame []Keypoint

// Point is a 2D coordinate.
type Point struct {
	X float64
	Y float64
}

// Lookup finds a keypoint by name and returns its coordinates.
func (f Frame) Lookup(name string) (Point, bool) {
	for _, kp := range f {
		if kp.Name == name {
			return Point{X: kp.X, Y: kp.Y}, true
		}
	}
	return Point{}, false
}

// Angle returns the angle in degrees at vertex p2 formed by the rays to p1
// and p3. Either ray having zero magnitude makes the angle undefined and
// yields ErrDegenerateGeometry rather than NaN.
func Angle(p1, p2, p3 Point) (float64, error) {
	v1x, v1y := p1.X-p2.X, p1.Y-p2.Y
	v2x, v2y := p3.X-p2.X, p3.Y-p2.Y

	mag1 := math.Hypot(v1x, v1y)
	mag2 := math.Hypot(v2x, v2y)
	if mag1 == 0 || mag2 == 0 {
		return 0, ErrDegenerateGeometry
	}

	cos := (v1x*v2x + v1y*v2y) / (mag1 * mag2)
	// Floating noise can push the ratio just outside [-1, 1].
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * (180 / math.Pi), nil
}

// Distance returns the Euclidean distance between two points.
func Distance(p1, p2 Point) float64 {
	return math.Hypot(p1.X-p2.X, p1.Y-p2.Y)
}
