// Package config loads the tunable thresholds for the detection and
// georeferencing pipeline from an optional YAML file, falling back to the
// defaults used against the reference map corpus.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Detection holds the thresholds applied by the color segmenter and
// polygon extractor.
type Detection struct {
	MinArea      float64 `mapstructure:"min_area"`
	MinPerimeter float64 `mapstructure:"min_perimeter"`
	EpsilonFrac  float64 `mapstructure:"epsilon_frac"`
	MinVertices  int     `mapstructure:"min_vertices"`
	MaxVertices  int     `mapstructure:"max_vertices"`
	MinCompact   float64 `mapstructure:"min_compactness"`
	DedupIoU     float64 `mapstructure:"dedup_iou"`
}

// Georef holds the thresholds applied by the georeferencing engine.
type Georef struct {
	// DPI is the nominal scanning resolution used to convert a pixel
	// distance into a paper distance when estimating map scale.
	DPI float64 `mapstructure:"dpi"`
	// MinCondition is the smallest acceptable reciprocal condition number
	// of the least-squares system; below it the tie points are treated
	// as too close to collinear to trust.
	MinCondition float64 `mapstructure:"min_condition"`
}

// Config is the full set of pipeline parameters.
type Config struct {
	Detection Detection `mapstructure:"detection"`
	Georef    Georef    `mapstructure:"georef"`
}

// Defaults returns the thresholds tuned against the reference map corpus.
func Defaults() Config {
	return Config{
		Detection: Detection{
			MinArea:      500,
			MinPerimeter: 50,
			EpsilonFrac:  0.01,
			MinVertices:  3,
			MaxVertices:  50,
			MinCompact:   0.01,
			DedupIoU:     0.5,
		},
		Georef: Georef{
			DPI:          300,
			MinCondition: 1e-6,
		},
	}
}

// Load reads configuration from the named file, if it exists, layered over
// Defaults. path may be empty, in which case Defaults alone is returned.
func Load(path string) (Config, error) {
	cfg := Defaults()

	v := viper.New()
	v.SetDefault("detection.min_area", cfg.Detection.MinArea)
	v.SetDefault("detection.min_perimeter", cfg.Detection.MinPerimeter)
	v.SetDefault("detection.epsilon_frac", cfg.Detection.EpsilonFrac)
	v.SetDefault("detection.min_vertices", cfg.Detection.MinVertices)
	v.SetDefault("detection.max_vertices", cfg.Detection.MaxVertices)
	v.SetDefault("detection.min_compactness", cfg.Detection.MinCompact)
	v.SetDefault("detection.dedup_iou", cfg.Detection.DedupIoU)
	v.SetDefault("georef.dpi", cfg.Georef.DPI)
	v.SetDefault("georef.min_condition", cfg.Georef.MinCondition)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}
