package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fisia-labs/repmotion/internal/config"
	"github.com/fisia-labs/repmotion/internal/pipeline"
	"github.com/fisia-labs/repmotion/internal/report"
	"github.com/fisia-labs/repmotion/internal/store"
)

var (
	configPath   = flag.String("config", "", "Path to JSON tuning config (optional)")
	mongoURI     = flag.String("mongo-uri", "", "Document store URI (falls back to "+config.EnvMongoURI+")")
	database     = flag.String("db", "fisia", "Document store database name")
	collection   = flag.String("collection", "sessions", "Sessions collection name")
	exercise     = flag.String("exercise", "", "Exercise name to analyse")
	professional = flag.String("professional", "", "Professional annotator identifier")
	signalName   = flag.String("signal", "", "Signal name used in output files")
	angleSpec    = flag.String("angle", "", "Three comma-separated keypoints for a joint angle (e.g. left_hip,left_knee,left_ankle)")
	distanceSpec = flag.String("distance", "", "Two comma-separated keypoints for a limb distance")
	outDir       = flag.String("out", "out", "Output directory for feature and chart files")
	workers      = flag.Int("workers", 4, "Concurrent session analyses")
	charts       = flag.Bool("charts", false, "Also write HTML and PNG charts per annotation")
)

func buildSignal() (pipeline.SignalSpec, error) {
	var keypoints []string
	switch {
	case *angleSpec != "" && *distanceSpec != "":
		return pipeline.SignalSpec{}, fmt.Errorf("use either -angle or -distance, not both")
	case *angleSpec != "":
		keypoints = splitNames(*angleSpec)
	case *distanceSpec != "":
		keypoints = splitNames(*distanceSpec)
	default:
		return pipeline.SignalSpec{}, fmt.Errorf("one of -angle or -distance is required")
	}

	name := *signalName
	if name == "" {
		name = strings.Join(keypoints, "-")
	}
	sig := pipeline.SignalSpec{Name: name, Keypoints: keypoints}
	return sig, sig.Validate()
}

func splitNames(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeResult(dir string, idx int, res *pipeline.Result, withCharts bool) error {
	base := fmt.Sprintf("%s_%s_%03d", res.Video, res.Signal, idx)

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling result: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, base+".json"), data, 0644); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}

	if !withCharts {
		return nil
	}
	f, err := os.Create(filepath.Join(dir, base+".html"))
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()
	if err := report.RenderSegments(f, base, res.Segments); err != nil {
		return err
	}
	return report.SavePNG(filepath.Join(dir, base+".png"), base, res.Smoothed, res.Peaks, res.Valleys)
}

func main() {
	flag.Parse()

	if *exercise == "" || *professional == "" {
		log.Fatal("-exercise and -professional are required")
	}
	sig, err := buildSignal()
	if err != nil {
		log.Fatalf("invalid signal: %v", err)
	}

	var tuning *config.Tuning
	if *configPath != "" {
		tuning, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
	}
	params := tuning.Resolve()

	uri := config.MongoURI(*mongoURI)
	if uri == "" {
		log.Fatalf("no document store URI: pass -mongo-uri or set %s", config.EnvMongoURI)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, uri, *database, *collection)
	if err != nil {
		log.Fatalf("opening document store: %v", err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			log.Printf("closing document store: %v", err)
		}
	}()

	sessions, err := st.Sessions(ctx, *exercise, *professional)
	if err != nil {
		log.Fatalf("querying sessions: %v", err)
	}
	log.Printf("analysing %d sessions of %q annotated by %q", len(sessions), *exercise, *professional)

	runner := &pipeline.Runner{Workers: *workers, Params: params}
	results, err := runner.Run(ctx, sessions, sig)
	if err != nil {
		log.Fatalf("running pipeline: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}

	failed := 0
	for i, res := range results {
		if res.Err != nil {
			failed++
			log.Printf("annotation %d of video %q: %v", i, res.Video, res.Err)
			continue
		}
		if res.RepCountWarning != "" {
			log.Printf("annotation %d of video %q: %s", i, res.Video, res.RepCountWarning)
		}
		if err := writeResult(*outDir, i, res, *charts); err != nil {
			log.Fatalf("writing result %d: %v", i, err)
		}
	}
	log.Printf("wrote %d results (%d failed) to %s", len(results)-failed, failed, *outDir)
}
