// Command georef runs the red-annotation detection and georeferencing
// pipeline over a scanned map image: detect annotation polygons, fit an
// affine transform from tie points, apply it, and emit KML.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/y-nomura-cosmoroot/mapannotate/internal/config"
	"github.com/y-nomura-cosmoroot/mapannotate/internal/detect"
	"github.com/y-nomura-cosmoroot/mapannotate/internal/geo"
	"github.com/y-nomura-cosmoroot/mapannotate/internal/georef"
	"github.com/y-nomura-cosmoroot/mapannotate/internal/kml"
	"github.com/y-nomura-cosmoroot/mapannotate/internal/polygon"
	"github.com/y-nomura-cosmoroot/mapannotate/internal/raster"
	"github.com/y-nomura-cosmoroot/mapannotate/internal/version"
)

func main() {
	setupLogging()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "detect":
		err = runDetect(os.Args[2:])
	case "fit":
		err = runFit(os.Args[2:])
	case "scale":
		err = runScale(os.Args[2:])
	case "run":
		err = runPipeline(os.Args[2:])
	case "version":
		fmt.Println(version.Version)
		return
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		slog.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: georef <detect|fit|scale|run|version> [flags]")
}

func setupLogging() {
	level := slog.LevelInfo
	if os.Getenv("GEOREF_DEBUG") != "" {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func detectorFromConfig(cfg config.Config) *detect.Detector {
	return detect.New(detect.Params{
		Polygon: polygon.Params{
			MinArea:      cfg.Detection.MinArea,
			MinPerimeter: cfg.Detection.MinPerimeter,
			EpsilonFrac:  cfg.Detection.EpsilonFrac,
			MinVertices:  cfg.Detection.MinVertices,
			MaxVertices:  cfg.Detection.MaxVertices,
			MinCompact:   cfg.Detection.MinCompact,
		},
		DedupIoU: cfg.Detection.DedupIoU,
	})
}

func runDetect(args []string) error {
	fs := flag.NewFlagSet("detect", flag.ExitOnError)
	imagePath := fs.String("image", "", "path to the scanned map image")
	configPath := fs.String("config", "", "optional path to a YAML config file")
	outPath := fs.String("out", "", "path to write detected polygons as JSON (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *imagePath == "" {
		return fmt.Errorf("-image is required")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	r, err := raster.Load(*imagePath)
	if err != nil {
		return fmt.Errorf("load image: %w", err)
	}

	d := detectorFromConfig(cfg)
	polys := d.Detect(r)
	slog.Info("detected annotation polygons", "count", len(polys))

	return writeJSON(*outPath, polys)
}

func runFit(args []string) error {
	fs := flag.NewFlagSet("fit", flag.ExitOnError)
	tiePointsPath := fs.String("tiepoints", "", "path to tie points JSON")
	configPath := fs.String("config", "", "optional path to a YAML config file")
	outPath := fs.String("out", "", "path to write the fitted transform as JSON (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *tiePointsPath == "" {
		return fmt.Errorf("-tiepoints is required")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	points, err := readTiePoints(*tiePointsPath)
	if err != nil {
		return err
	}

	transform, err := georef.Fit(points, georef.FitParams{MinCondition: cfg.Georef.MinCondition})
	if err != nil {
		return fmt.Errorf("fit transform: %w", err)
	}

	return writeJSON(*outPath, transform)
}

func runScale(args []string) error {
	fs := flag.NewFlagSet("scale", flag.ExitOnError)
	tiePointsPath := fs.String("tiepoints", "", "path to tie points JSON")
	configPath := fs.String("config", "", "optional path to a YAML config file")
	rasterWidth := fs.Float64("raster-width", 0, "raster width in pixels, for the tie-point spread warning")
	rasterHeight := fs.Float64("raster-height", 0, "raster height in pixels, for the tie-point spread warning")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *tiePointsPath == "" {
		return fmt.Errorf("-tiepoints is required")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	points, err := readTiePoints(*tiePointsPath)
	if err != nil {
		return err
	}

	result, err := georef.EstimateScale(points, cfg.Georef.DPI, *rasterWidth, *rasterHeight)
	if err != nil {
		return fmt.Errorf("estimate scale: %w", err)
	}

	for _, w := range result.Warnings {
		slog.Warn(w)
	}
	fmt.Printf("1:%.0f\n", result.Denominator)
	return nil
}

func runPipeline(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	imagePath := fs.String("image", "", "path to the scanned map image")
	tiePointsPath := fs.String("tiepoints", "", "path to tie points JSON")
	configPath := fs.String("config", "", "optional path to a YAML config file")
	outPath := fs.String("out", "", "path to write the resulting KML (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *imagePath == "" || *tiePointsPath == "" {
		return fmt.Errorf("-image and -tiepoints are required")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	r, err := raster.Load(*imagePath)
	if err != nil {
		return fmt.Errorf("load image: %w", err)
	}

	points, err := readTiePoints(*tiePointsPath)
	if err != nil {
		return err
	}

	d := detectorFromConfig(cfg)
	detected := d.Detect(r)
	slog.Info("detected annotation polygons", "count", len(detected))

	transform, err := georef.Fit(points, georef.FitParams{MinCondition: cfg.Georef.MinCondition})
	if err != nil {
		return fmt.Errorf("fit transform: %w", err)
	}

	scale, err := georef.EstimateScale(points, cfg.Georef.DPI, float64(r.Width), float64(r.Height))
	if err != nil {
		slog.Warn("scale estimation failed", "error", err)
	} else {
		for _, w := range scale.Warnings {
			slog.Warn(w)
		}
		slog.Info("estimated map scale", "denominator", scale.Denominator)
	}

	transformed, applyWarnings := georef.ApplyAll(transform, detected)
	for _, w := range applyWarnings {
		slog.Warn(w)
	}

	var out *os.File
	if *outPath == "" {
		out = os.Stdout
	} else {
		out, err = os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer out.Close()
	}

	if err := kml.Write(out, transformed); err != nil {
		return fmt.Errorf("write kml: %w", err)
	}
	return nil
}

func readTiePoints(path string) ([]geo.TiePoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tie points: %w", err)
	}
	var points []geo.TiePoint
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, fmt.Errorf("parse tie points: %w", err)
	}
	return points, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if path == "" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
