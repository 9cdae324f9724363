package geodesy

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// latTolerance is the convergence threshold of the latitude iteration in
// ToGeodetic, in radians.
const latTolerance = 1e-16

// Geodetic is a latitude/longitude/height position on a datum's ellipsoid.
// Lat and Lon are radians, Height is meters above the ellipsoid.
type Geodetic struct {
	Lat, Lon float64
	Height   float64
	Datum    Datum
}

// Cartesian is an earth-centered X/Y/Z position in meters, in the frame of
// its datum.
type Cartesian struct {
	r3.Vec
	Datum Datum
}

// ToCartesian converts a geodetic position to earth-centered cartesian
// coordinates on the same datum.
func ToCartesian(g Geodetic) Cartesian {
	e2 := g.Datum.Ellipsoid.E2()
	nu, _ := g.Datum.Ellipsoid.Radii(g.Lat)
	sinLat, cosLat := math.Sincos(g.Lat)
	sinLon, cosLon := math.Sincos(g.Lon)

	return Cartesian{
		Vec: r3.Vec{
			X: (nu + g.Height) * cosLat * cosLon,
			Y: (nu + g.Height) * cosLat * sinLon,
			Z: ((1-e2)*nu + g.Height) * sinLat,
		},
		Datum: g.Datum,
	}
}

// ToGeodetic converts cartesian coordinates back to latitude, longitude and
// ellipsoidal height on the same datum. Latitude is found by fixed-point
// iteration; height is unstable near the poles.
func ToGeodetic(c Cartesian) (Geodetic, error) {
	ell := c.Datum.Ellipsoid
	e2 := ell.E2()
	p := math.Hypot(c.X, c.Y)

	lat0 := math.Atan2(c.Z, p*(1-e2))
	lat, err := Solve(lat0, latitudeStep(ell, c.Z, p))
	if err != nil {
		return Geodetic{}, fmt.Errorf("latitude on %s: %w", c.Datum, err)
	}

	nu, _ := ell.Radii(lat)
	return Geodetic{
		Lat:    lat,
		Lon:    math.Atan2(c.Y, c.X),
		Height: p/math.Cos(lat) - nu,
		Datum:  c.Datum,
	}, nil
}

// latitudeStep returns one refinement of the geodetic latitude of a point
// at height z above the equatorial plane and distance p from the polar axis.
func latitudeStep(ell Ellipsoid, z, p float64) func(float64) (float64, bool) {
	e2 := ell.E2()
	return func(old float64) (float64, bool) {
		nu, _ := ell.Radii(old)
		lat := math.Atan2(z+e2*nu*math.Sin(old), p)
		return lat, latConverged(old, lat)
	}
}

// latConverged reports whether two successive latitude iterates agree to
// latTolerance, or are neighbouring float64 values and cannot get closer.
func latConverged(old, lat float64) bool {
	return math.Abs(lat-old) <= latTolerance || math.Nextafter(old, lat) == lat
}
