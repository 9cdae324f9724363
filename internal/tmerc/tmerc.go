// Package tmerc implements the Transverse Mercator projection using the
// Ordnance Survey series expansion: a closed-form forward projection and an
// iterative inverse anchored on the footpoint latitude.
package tmerc

import (
	"fmt"
	"math"

	"github.com/pspoerri/bng/internal/geodesy"
)

// footpointTolerance is the convergence threshold of the footpoint latitude
// iteration, in meters of northing (0.01 mm).
const footpointTolerance = 0.00001

// Params describes a Transverse Mercator grid: the datum it is defined on,
// the scale factor on the central meridian and the true origin.
type Params struct {
	Datum geodesy.Datum

	F0   float64 // scale factor on the central meridian
	Lat0 float64 // latitude of true origin, radians
	Lon0 float64 // longitude of true origin and central meridian, radians
	N0   float64 // northing of true origin, meters
	E0   float64 // easting of true origin, meters
}

// Grid is an easting/northing pair in meters.
type Grid struct {
	Easting, Northing float64
}

// meridionalArc returns the distance along the meridian from the true
// origin latitude to lat, scaled by F0.
func (p Params) meridionalArc(lat float64) float64 {
	n := p.Datum.Ellipsoid.N()
	n2, n3 := n*n, n*n*n
	dLat, sLat := lat-p.Lat0, lat+p.Lat0

	m1 := (1 + n + (5.0/4.0)*n2 + (5.0/4.0)*n3) * dLat
	m2 := (3*n + 3*n2 + (21.0/8.0)*n3) * math.Sin(dLat) * math.Cos(sLat)
	m3 := ((15.0/8.0)*n2 + (15.0/8.0)*n3) * math.Sin(2*dLat) * math.Cos(2*sLat)
	m4 := (35.0 / 24.0) * n3 * math.Sin(3*dLat) * math.Cos(3*sLat)

	return p.Datum.Ellipsoid.B * p.F0 * (m1 - m2 + m3 - m4)
}

// radii returns nu, rho and eta² at lat, with both radii scaled by F0.
func (p Params) radii(lat float64) (nu, rho, eta2 float64) {
	nu, rho = p.Datum.Ellipsoid.Radii(lat)
	nu *= p.F0
	rho *= p.F0
	return nu, rho, nu/rho - 1
}

// Project maps a geodetic position on p.Datum onto the grid. Height is ignored.
func (p Params) Project(g geodesy.Geodetic) (Grid, error) {
	if g.Datum != p.Datum {
		return Grid{}, fmt.Errorf("projecting %s point onto %s grid: %w",
			g.Datum, p.Datum, geodesy.ErrDatumMismatch)
	}

	lat := g.Lat
	nu, rho, eta2 := p.radii(lat)
	sin, cos := math.Sincos(lat)
	tan := math.Tan(lat)
	tan2, tan4 := tan*tan, tan*tan*tan*tan
	cos3, cos5 := math.Pow(cos, 3), math.Pow(cos, 5)

	i := p.meridionalArc(lat) + p.N0
	ii := nu * sin * cos / 2
	iii := nu * sin * cos3 * (5 - tan2 + 9*eta2) / 24
	iiiA := nu * sin * cos5 * (61 - 58*tan2 + tan4) / 720
	iv := nu * cos
	// Both radii carry F0 here, as in the published series and in XI below.
	// Do not revert to an unscaled nu over a scaled rho: that skews eastings
	// by several centimeters away from the central meridian.
	v := nu * cos3 * (nu/rho - tan2) / 6
	vi := nu * cos5 * (5 - 18*tan2 + tan4 + 14*eta2 - 58*eta2*tan2) / 120

	dLon := g.Lon - p.Lon0
	return Grid{
		Northing: i + ii*math.Pow(dLon, 2) + iii*math.Pow(dLon, 4) + iiiA*math.Pow(dLon, 6),
		Easting:  p.E0 + iv*dLon + v*math.Pow(dLon, 3) + vi*math.Pow(dLon, 5),
	}, nil
}

// Footpoint returns the latitude whose meridional arc from the true origin
// equals northing - N0.
func (p Params) Footpoint(northing float64) (float64, error) {
	s, err := geodesy.Solve(footpoint{lat: p.Lat0}, p.footpointStep(northing))
	if err != nil {
		return 0, fmt.Errorf("footpoint latitude for northing %.3f: %w", northing, err)
	}
	return s.lat, nil
}

// footpoint is the state of the footpoint iteration: a trial latitude and
// its meridional arc.
type footpoint struct{ lat, m float64 }

func (p Params) footpointStep(northing float64) func(footpoint) (footpoint, bool) {
	aF0 := p.Datum.Ellipsoid.A * p.F0
	dN := northing - p.N0
	return func(s footpoint) (footpoint, bool) {
		s.lat += (dN - s.m) / aF0
		s.m = p.meridionalArc(s.lat)
		return s, math.Abs(dN-s.m) < footpointTolerance
	}
}

// Unproject maps a grid position back to latitude/longitude on p.Datum, with
// zero ellipsoidal height.
func (p Params) Unproject(g Grid) (geodesy.Geodetic, error) {
	lat, err := p.Footpoint(g.Northing)
	if err != nil {
		return geodesy.Geodetic{}, err
	}

	nu, rho, eta2 := p.radii(lat)
	sec := 1 / math.Cos(lat)
	tan := math.Tan(lat)
	tan2 := tan * tan
	tan4, tan6 := tan2*tan2, tan2*tan2*tan2

	vii := tan / (2 * rho * nu)
	viii := tan / (24 * rho * math.Pow(nu, 3)) * (5 + 3*tan2 + eta2 - 9*tan2*eta2)
	ix := tan / (720 * rho * math.Pow(nu, 5)) * (61 + 90*tan2 + 45*tan4)
	x := sec / nu
	xi := sec / (6 * math.Pow(nu, 3)) * (nu/rho + 2*tan2)
	xii := sec / (120 * math.Pow(nu, 5)) * (5 + 28*tan2 + 24*tan4)
	xiiA := sec / (5040 * math.Pow(nu, 7)) * (61 + 662*tan2 + 1320*tan4 + 720*tan6)

	dE := g.Easting - p.E0
	return geodesy.Geodetic{
		Lat:   lat - vii*math.Pow(dE, 2) + viii*math.Pow(dE, 4) - ix*math.Pow(dE, 6),
		Lon:   p.Lon0 + x*dE - xi*math.Pow(dE, 3) + xii*math.Pow(dE, 5) - xiiA*math.Pow(dE, 7),
		Datum: p.Datum,
	}, nil
}
