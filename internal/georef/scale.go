package georef

import (
	"fmt"
	"math"
	"sort"

	"github.com/y-nomura-cosmoroot/mapannotate/internal/geo"
	"github.com/y-nomura-cosmoroot/mapannotate/pkg/geometry"
)

// earthRadiusMeters is the IUGG mean Earth radius, matching the precision
// used elsewhere for haversine distance so scale estimates stay consistent
// across this package.
const earthRadiusMeters = 6371008.8

// residualThresholdFrac is the fraction of median pairwise ground
// distance above which a tie point's back-projection residual triggers a
// warning; this is the spec's suggested default for deriving the
// threshold from the estimated ground sampling.
const residualThresholdFrac = 0.10

// spatialSpreadThreshold is the minimum fraction of the raster's pixel
// area the tie points' own bounding box must cover before a poor-spread
// warning fires.
const spatialSpreadThreshold = 0.30

// scaleFitMinCondition bounds the affine fit EstimateScale computes
// internally to obtain back-projection residuals. A failed fit (too few
// or collinear points) just means the residual and range warnings are
// skipped — scale estimation itself never requires a transform.
const scaleFitMinCondition = 1e-6

// EstimateScale infers the nominal map scale from a set of tie points and
// the scanning resolution they were captured at, expressed as a
// representative fraction denominator: one unit of distance on the
// printed map corresponds to Denominator of that same unit on the ground.
//
// Every pair of tie points gives an independent ground-distance/paper-
// distance ratio; the median of all pairs is used rather than a simple
// consecutive-pair average, so the estimate is stable under duplicate or
// reordered tie points and resistant to any single outlier pair.
//
// rasterWidth and rasterHeight are the source raster's pixel dimensions,
// used only to evaluate the tie points' spatial spread; pass 0 for either
// to skip that check (e.g. when the raster isn't available to the
// caller).
//
// Alongside the estimate, EstimateScale surfaces the three non-fatal
// warnings the georeferencer is responsible for: an excessive tie-point
// back-projection residual, a back-projected coordinate outside the
// WGS84 domain, and tie points clustered in too small a fraction of the
// raster.
func EstimateScale(points []geo.TiePoint, dpi, rasterWidth, rasterHeight float64) (geo.ScaleResult, error) {
	if len(points) < 3 {
		return geo.ScaleResult{}, newError(geo.KindInsufficientPoints,
			"need at least 3 tie points to estimate scale, got %d", len(points))
	}

	var ratios, groundDists []float64
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			groundDists = append(groundDists, haversineMeters(points[i].Geo, points[j].Geo))

			pixelDist := points[i].Pixel.Distance(points[j].Pixel)
			if pixelDist == 0 {
				continue
			}
			paperDist := pixelsToMeters(pixelDist, dpi)
			if paperDist == 0 {
				continue
			}
			ratios = append(ratios, groundDists[len(groundDists)-1]/paperDist)
		}
	}

	if len(ratios) == 0 {
		return geo.ScaleResult{}, newError(geo.KindInsufficientPoints,
			"no tie-point pair had distinct pixel coordinates")
	}

	denominator := median(ratios)

	var warnings []string
	warnings = append(warnings, residualAndRangeWarnings(points, groundDists)...)
	if w := spreadWarning(points, rasterWidth, rasterHeight); w != "" {
		warnings = append(warnings, w)
	}

	return geo.ScaleResult{Denominator: denominator, Warnings: warnings}, nil
}

// residualAndRangeWarnings fits an affine transform from points and, if
// that succeeds, back-projects every tie point's pixel coordinate through
// it. It flags the maximum residual (in meters, vs. the tie point's own
// geographic coordinate) against residualThresholdFrac of the median
// pairwise ground distance (spec.md §4.4.4 #1), and flags any
// back-projected coordinate that falls outside the WGS84 domain
// (spec.md §4.4.4 #2). A transform that can't be fit (too few or
// collinear points) skips both checks rather than failing scale
// estimation, which has no such requirement.
func residualAndRangeWarnings(points []geo.TiePoint, groundDists []float64) []string {
	transform, err := Fit(points, FitParams{MinCondition: scaleFitMinCondition})
	if err != nil {
		return nil
	}

	threshold := residualThresholdFrac * median(groundDists)
	var maxResidual float64
	outOfRange := false
	for _, p := range points {
		predicted := transform.Apply(p.Pixel)
		if !predicted.InRange() {
			outOfRange = true
		}
		if residual := haversineMeters(predicted, p.Geo); residual > maxResidual {
			maxResidual = residual
		}
	}

	var warnings []string
	if maxResidual > threshold {
		warnings = append(warnings, fmt.Sprintf(
			"maximum tie-point back-projection residual %.1fm exceeds %.0f%% of median pairwise ground distance (%.1fm); check for a miscalibrated tie point",
			maxResidual, residualThresholdFrac*100, median(groundDists)))
	}
	if outOfRange {
		warnings = append(warnings,
			"back-projecting a tie point through the fitted transform yields a latitude/longitude outside the WGS84 range; check for a miscalibrated tie point")
	}
	return warnings
}

// spreadWarning flags tie points whose own pixel-space bounding box
// covers less than spatialSpreadThreshold of the raster's area
// (spec.md §4.4.4 #3). Skipped if either raster dimension is non-positive.
func spreadWarning(points []geo.TiePoint, rasterWidth, rasterHeight float64) string {
	if rasterWidth <= 0 || rasterHeight <= 0 {
		return ""
	}

	pixels := make([]geometry.Point2D, len(points))
	for i, p := range points {
		pixels[i] = p.Pixel
	}
	box := geometry.BoundingBox(pixels)

	coverage := (box.Width * box.Height) / (rasterWidth * rasterHeight)
	if coverage < spatialSpreadThreshold {
		return fmt.Sprintf(
			"tie points span only %.0f%% of the raster's area, below the %.0f%% spread threshold; fit and scale accuracy may degrade away from the cluster",
			coverage*100, spatialSpreadThreshold*100)
	}
	return ""
}

// haversineMeters returns the great-circle distance between two
// geographic points, in meters.
func haversineMeters(a, b geo.Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

// pixelsToMeters converts a pixel distance into a physical paper distance
// given the scanning resolution in dots per inch.
func pixelsToMeters(pixels, dpi float64) float64 {
	const metersPerInch = 0.0254
	return (pixels / dpi) * metersPerInch
}

func median(xs []float64) float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
