// Package georef fits, validates, and applies the affine transform that
// maps pixel-space annotation polygons onto geographic coordinates, and
// estimates the nominal scale of the source map from the same tie points.
package georef

import (
	"gonum.org/v1/gonum/mat"

	"github.com/y-nomura-cosmoroot/mapannotate/internal/geo"
)

// FitParams bounds how close to collinear the tie points are allowed to
// be before the fit is rejected.
type FitParams struct {
	MinCondition float64
}

// Fit computes the affine transform that best maps the pixel coordinates
// of points to their geographic coordinates in a least-squares sense.
//
// The two axes are solved independently — one 3-parameter QR solve for
// longitude, one for latitude — rather than as a single interleaved
// 6-parameter system. This keeps the "no accidental y-flip" property
// structurally obvious: each axis's coefficients come from its own solve
// and nothing couples their signs.
func Fit(points []geo.TiePoint, params FitParams) (geo.Affine2D, error) {
	n := len(points)
	if n < 3 {
		return geo.Affine2D{}, newError(geo.KindInsufficientPoints,
			"need at least 3 tie points, got %d", n)
	}

	for _, p := range points {
		if p.Geo.Lat < -90 || p.Geo.Lat > 90 {
			return geo.Affine2D{}, newError(geo.KindInvalidGeoRange,
				"tie point %s: latitude %v out of range", p.ID, p.Geo.Lat)
		}
		if p.Geo.Lon < -180 || p.Geo.Lon > 180 {
			return geo.Affine2D{}, newError(geo.KindInvalidGeoRange,
				"tie point %s: longitude %v out of range", p.ID, p.Geo.Lon)
		}
	}

	design := mat.NewDense(n, 3, nil)
	lon := mat.NewVecDense(n, nil)
	lat := mat.NewVecDense(n, nil)
	for i, p := range points {
		design.SetRow(i, []float64{p.Pixel.X, p.Pixel.Y, 1})
		lon.SetVec(i, p.Geo.Lon)
		lat.SetVec(i, p.Geo.Lat)
	}

	if err := checkConditioning(design, params.MinCondition); err != nil {
		return geo.Affine2D{}, err
	}

	var qr mat.QR
	qr.Factorize(design)

	lonCoef := mat.NewVecDense(3, nil)
	if err := qr.SolveVecTo(lonCoef, false, lon); err != nil {
		return geo.Affine2D{}, newError(geo.KindCollinearPoints,
			"solving longitude axis: %v", err)
	}

	latCoef := mat.NewVecDense(3, nil)
	if err := qr.SolveVecTo(latCoef, false, lat); err != nil {
		return geo.Affine2D{}, newError(geo.KindCollinearPoints,
			"solving latitude axis: %v", err)
	}

	return geo.Affine2D{
		A: lonCoef.AtVec(0), B: lonCoef.AtVec(1), C: lonCoef.AtVec(2),
		D: latCoef.AtVec(0), E: latCoef.AtVec(1), F: latCoef.AtVec(2),
	}, nil
}

// checkConditioning rejects tie points that are at or near collinear in
// pixel space: such points don't constrain a unique affine transform, and
// the least-squares solve above would otherwise silently return a
// numerically unstable result.
func checkConditioning(design *mat.Dense, minCondition float64) error {
	cond := mat.Cond(design, 2)
	if cond == 0 {
		return nil
	}
	reciprocal := 1 / cond
	if reciprocal < minCondition {
		return newError(geo.KindCollinearPoints,
			"tie points are too close to collinear (reciprocal condition %.3g < %.3g)",
			reciprocal, minCondition)
	}
	return nil
}
