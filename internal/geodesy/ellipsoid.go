// Package geodesy holds the ellipsoid and datum primitives shared by both
// directions of the grid conversion: geodetic/cartesian conversion, the
// Helmert datum shift, and the bounded fixed-point solver.
//
// All angles are radians. Degrees only appear at the public boundary.
package geodesy

import "math"

// Ellipsoid is a reference ellipsoid given by its semi-major and semi-minor
// axes in meters.
type Ellipsoid struct {
	A float64 // semi-major axis
	B float64 // semi-minor axis
}

// E2 returns the eccentricity squared, 1 - b²/a².
func (e Ellipsoid) E2() float64 {
	return 1 - (e.B*e.B)/(e.A*e.A)
}

// N returns the flattening ratio (a-b)/(a+b) used by the meridional arc series.
func (e Ellipsoid) N() float64 {
	return (e.A - e.B) / (e.A + e.B)
}

// Radii returns the transverse (prime vertical) radius of curvature nu and
// the meridional radius of curvature rho at latitude lat.
func (e Ellipsoid) Radii(lat float64) (nu, rho float64) {
	e2 := e.E2()
	sin := math.Sin(lat)
	w := 1 - e2*sin*sin
	nu = e.A / math.Sqrt(w)
	rho = e.A * (1 - e2) * math.Pow(w, -1.5)
	return nu, rho
}

// Datum tags a coordinate with the frame it is expressed in. Two datums are
// the same frame only if both name and ellipsoid match.
type Datum struct {
	Name      string
	Ellipsoid Ellipsoid
}

func (d Datum) String() string { return d.Name }

// ArcSeconds converts an angle in seconds of arc to radians.
func ArcSeconds(s float64) float64 {
	return s * math.Pi / (180 * 3600)
}
