// Package config loads analysis tuning parameters from JSON. Fields are
// pointers so a partial config file overrides only what it names; Resolve
// fills the rest from defaults. The document-store URI is deliberately not
// part of the file: it comes from a flag or the environment so credentials
// never live in the repository.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fisia-labs/repmotion/internal/series"
)

// EnvMongoURI names the environment variable consulted for the document
// store connection string when no flag supplies one.
const EnvMongoURI = "REPMOTION_MONGO_URI"

// Defaults for the repetition pipeline. Detector thresholds assume the
// series has been normalised to [0,1] before detection.
const (
	DefaultFPS                 = 25
	DefaultSmoothWindow        = 15
	DefaultSmoothPolyOrder     = 3
	DefaultMinPeakHeight       = 0.6
	DefaultMinValleyHeight     = 0.4
	DefaultMinPeakDistance     = 10
	DefaultMinValleyDistance   = 10
	DefaultMinPeakProminence   = 0.1
	DefaultMinValleyProminence = 0.1
)

// Tuning is the JSON schema for analysis parameters. All fields are
// optional; omitted fields keep their defaults.
type Tuning struct {
	FPS             *int `json:"fps,omitempty"`
	SmoothWindow    *int `json:"smooth_window,omitempty"`
	SmoothPolyOrder *int `json:"smooth_poly_order,omitempty"`

	MinPeakHeight       *float64 `json:"min_peak_height,omitempty"`
	MinValleyHeight     *float64 `json:"min_valley_height,omitempty"`
	MinPeakDistance     *int     `json:"min_peak_distance,omitempty"`
	MinValleyDistance   *int     `json:"min_valley_distance,omitempty"`
	MinPeakProminence   *float64 `json:"min_peak_prominence,omitempty"`
	MinValleyProminence *float64 `json:"min_valley_prominence,omitempty"`
}

// Params are fully resolved analysis parameters.
type Params struct {
	FPS             int
	SmoothWindow    int
	SmoothPolyOrder int
	Detect          series.DetectParams
}

// Load reads a Tuning from a JSON file. The path must have a .json
// extension and the file must be under 1MB.
func Load(path string) (*Tuning, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var t Tuning
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &t, nil
}

// Resolve merges the tuning over the defaults. A nil receiver resolves to
// pure defaults.
func (t *Tuning) Resolve() Params {
	p := Params{
		FPS:             DefaultFPS,
		SmoothWindow:    DefaultSmoothWindow,
		SmoothPolyOrder: DefaultSmoothPolyOrder,
		Detect: series.DetectParams{
			MinPeakHeight:       DefaultMinPeakHeight,
			MinValleyHeight:     DefaultMinValleyHeight,
			MinPeakDistance:     DefaultMinPeakDistance,
			MinValleyDistance:   DefaultMinValleyDistance,
			MinPeakProminence:   DefaultMinPeakProminence,
			MinValleyProminence: DefaultMinValleyProminence,
		},
	}
	if t == nil {
		return p
	}
	if t.FPS != nil {
		p.FPS = *t.FPS
	}
	if t.SmoothWindow != nil {
		p.SmoothWindow = *t.SmoothWindow
	}
	if t.SmoothPolyOrder != nil {
		p.SmoothPolyOrder = *t.SmoothPolyOrder
	}
	if t.MinPeakHeight != nil {
		p.Detect.MinPeakHeight = *t.MinPeakHeight
	}
	if t.MinValleyHeight != nil {
		p.Detect.MinValleyHeight = *t.MinValleyHeight
	}
	if t.MinPeakDistance != nil {
		p.Detect.MinPeakDistance = *t.MinPeakDistance
	}
	if t.MinValleyDistance != nil {
		p.Detect.MinValleyDistance = *t.MinValleyDistance
	}
	if t.MinPeakProminence != nil {
		p.Detect.MinPeakProminence = *t.MinPeakProminence
	}
	if t.MinValleyProminence != nil {
		p.Detect.MinValleyProminence = *t.MinValleyProminence
	}
	return p
}

// MongoURI resolves the document store URI: an explicit flag value wins,
// then the environment. Empty means unconfigured.
func MongoURI(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvMongoURI)
}
