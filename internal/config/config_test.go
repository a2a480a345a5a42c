package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveDefaults(t *testing.T) {
	p := (*Tuning)(nil).Resolve()

	if p.FPS != DefaultFPS {
		t.Errorf("FPS = %d, want %d", p.FPS, DefaultFPS)
	}
	if p.SmoothWindow != DefaultSmoothWindow || p.SmoothPolyOrder != DefaultSmoothPolyOrder {
		t.Errorf("smoothing = (%d, %d), want (%d, %d)",
			p.SmoothWindow, p.SmoothPolyOrder, DefaultSmoothWindow, DefaultSmoothPolyOrder)
	}
	if p.Detect.MinPeakHeight != DefaultMinPeakHeight {
		t.Errorf("MinPeakHeight = %v, want %v", p.Detect.MinPeakHeight, DefaultMinPeakHeight)
	}
	if p.Detect.MinPeakDistance != DefaultMinPeakDistance {
		t.Errorf("MinPeakDistance = %v, want %v", p.Detect.MinPeakDistance, DefaultMinPeakDistance)
	}
}

func TestLoadPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.json")
	content := `{"smooth_window": 21, "min_peak_height": 0.7}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tuning, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	p := tuning.Resolve()

	if p.SmoothWindow != 21 {
		t.Errorf("SmoothWindow = %d, want override 21", p.SmoothWindow)
	}
	if p.Detect.MinPeakHeight != 0.7 {
		t.Errorf("MinPeakHeight = %v, want override 0.7", p.Detect.MinPeakHeight)
	}
	// Fields the file omits keep their defaults.
	if p.SmoothPolyOrder != DefaultSmoothPolyOrder {
		t.Errorf("SmoothPolyOrder = %d, want default %d", p.SmoothPolyOrder, DefaultSmoothPolyOrder)
	}
	if p.Detect.MinValleyHeight != DefaultMinValleyHeight {
		t.Errorf("MinValleyHeight = %v, want default %v", p.Detect.MinValleyHeight, DefaultMinValleyHeight)
	}
}

func TestLoadRejectsNonJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for non-.json extension")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestMongoURIPrecedence(t *testing.T) {
	t.Setenv(EnvMongoURI, "mongodb://from-env:27017")

	if got := MongoURI("mongodb://from-flag:27017"); got != "mongodb://from-flag:27017" {
		t.Errorf("flag value should win, got %q", got)
	}
	if got := MongoURI(""); got != "mongodb://from-env:27017" {
		t.Errorf("empty flag should fall back to env, got %q", got)
	}
}
