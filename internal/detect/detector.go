// Package detect orchestrates the segmentation and polygon-extraction
// stages into a single pass over a raster image, producing the
// deduplicated set of red annotation polygons it contains.
package detect

import (
	"sort"
	"sync"

	"gocv.io/x/gocv"

	"github.com/y-nomura-cosmoroot/mapannotate/internal/annotation"
	"github.com/y-nomura-cosmoroot/mapannotate/internal/polygon"
	"github.com/y-nomura-cosmoroot/mapannotate/internal/raster"
	"github.com/y-nomura-cosmoroot/mapannotate/internal/segment"
	"github.com/y-nomura-cosmoroot/mapannotate/pkg/geometry"
)

// Params bounds the detection and deduplication thresholds.
type Params struct {
	Polygon  polygon.Params
	DedupIoU float64
}

// Detector finds red annotation polygons in a raster image.
type Detector struct {
	params Params
}

// New returns a Detector configured with params.
func New(params Params) *Detector {
	return &Detector{params: params}
}

// Detect runs the thick-border and filled-area branches concurrently and
// returns the deduplicated union of their candidate polygons.
func (d *Detector) Detect(r raster.Raster) []annotation.Polygon {
	img := r.ToMat()
	defer img.Close()

	var (
		wg            sync.WaitGroup
		thick, filled []annotation.Polygon
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		thick = d.extractBranch(img, segment.ThickBorderThresholds(), annotation.ThickBorder, "thick")
	}()
	go func() {
		defer wg.Done()
		filled = d.extractBranch(img, segment.FilledAreaThresholds(), annotation.FilledArea, "filled")
	}()
	wg.Wait()

	candidates := append(thick, filled...)
	return dedup(candidates, d.params.DedupIoU)
}

func (d *Detector) extractBranch(img gocv.Mat, thresholds segment.Thresholds, kind annotation.Kind, idPrefix string) []annotation.Polygon {
	mask := segment.Mask(img, thresholds)
	defer mask.Close()

	var cleaned gocv.Mat
	if kind == annotation.ThickBorder {
		cleaned = segment.CleanupThick(mask)
	} else {
		cleaned = segment.CleanupFilled(mask)
	}
	defer cleaned.Close()

	return polygon.Extract(cleaned, kind, d.params.Polygon, idPrefix)
}

// dedup sorts candidates by descending area and keeps each one that is not
// dominated by an already-kept polygon: dominated means the IoU against a
// kept polygon exceeds the threshold, or the candidate's centroid falls
// inside a kept polygon, or any of the candidate's vertices does.
func dedup(candidates []annotation.Polygon, iouThreshold float64) []annotation.Polygon {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Area() > candidates[j].Area()
	})

	var kept []annotation.Polygon
	for _, cand := range candidates {
		if !dominatedByAny(cand, kept, iouThreshold) {
			kept = append(kept, cand)
		}
	}
	return kept
}

func dominatedByAny(cand annotation.Polygon, kept []annotation.Polygon, iouThreshold float64) bool {
	for _, k := range kept {
		if geometry.PolygonIoU(cand.Corners, k.Corners) > iouThreshold {
			return true
		}
		if geometry.PointInPolygon(cand.Center, k.Corners) {
			return true
		}
		for _, v := range cand.Corners {
			if geometry.PointInPolygon(v, k.Corners) {
				return true
			}
		}
	}
	return false
}
