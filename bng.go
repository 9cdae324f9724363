// Package bng converts between WGS84 latitude/longitude and the British
// National Grid (Ordnance Survey National Grid, EPSG:27700).
//
// A WGS84 position is shifted onto the OSGB36 datum with a 7-parameter
// Helmert transform and then projected with the Ordnance Survey Transverse
// Mercator series; the inverse runs the same pipeline backwards. Results
// are valid for Great Britain and the surrounding sea. A round trip in
// either direction reproduces the input to within a few millimeters.
//
// Reference: https://en.wikipedia.org/wiki/Ordnance_Survey_National_Grid
package bng

import (
	"fmt"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/pspoerri/bng/internal/coord"
	"github.com/pspoerri/bng/internal/geodesy"
	"github.com/pspoerri/bng/internal/tmerc"
)

// EPSG is the EPSG code of the British National Grid.
const EPSG = 27700

// ErrNotConverged is returned when a conversion fails to converge, which
// happens for positions far outside the grid or for NaN input.
var ErrNotConverged = geodesy.ErrNotConverged

// Projection converts between a source CRS and WGS84 degrees.
type Projection = coord.Projection

// ProjectionForEPSG returns the Projection for an EPSG code, or nil when the
// code is not supported. 27700 is the National Grid; 4326 is WGS84 itself.
func ProjectionForEPSG(epsg int) Projection {
	return coord.ForEPSG(epsg)
}

// Location is a position on the British National Grid, in meters east and
// north of the grid's false origin.
type Location struct {
	easting, northing float64
}

// New returns the grid location at the given easting and northing.
func New(easting, northing float64) Location {
	return Location{easting: easting, northing: northing}
}

// FromLatLng converts a WGS84 point to a grid location, taking the
// ellipsoidal height as zero.
func FromLatLng(ll s2.LatLng) (Location, error) {
	grid, err := coord.GeodeticToGrid(geodesy.Geodetic{
		Lat:   ll.Lat.Radians(),
		Lon:   ll.Lng.Radians(),
		Datum: coord.WGS84,
	})
	if err != nil {
		return Location{}, fmt.Errorf("bng: converting %v: %w", ll, err)
	}
	return New(grid.Easting, grid.Northing), nil
}

// FromDegrees converts a WGS84 latitude/longitude in degrees to a grid location.
func FromDegrees(lat, lon float64) (Location, error) {
	return FromLatLng(s2.LatLngFromDegrees(lat, lon))
}

// Easting returns the easting in meters.
func (l Location) Easting() float64 { return l.easting }

// Northing returns the northing in meters.
func (l Location) Northing() float64 { return l.northing }

// LatLng converts the grid location to a WGS84 point.
func (l Location) LatLng() (s2.LatLng, error) {
	g, err := coord.GridToGeodetic(tmerc.Grid{Easting: l.easting, Northing: l.northing})
	if err != nil {
		return s2.LatLng{}, fmt.Errorf("bng: converting %v: %w", l, err)
	}
	return s2.LatLng{
		Lat: s1.Angle(g.Lat) * s1.Radian,
		Lng: s1.Angle(g.Lon) * s1.Radian,
	}, nil
}

// Degrees converts the grid location to WGS84 latitude/longitude in degrees.
func (l Location) Degrees() (lat, lon float64, err error) {
	ll, err := l.LatLng()
	if err != nil {
		return 0, 0, err
	}
	return ll.Lat.Degrees(), ll.Lng.Degrees(), nil
}

func (l Location) String() string {
	return fmt.Sprintf("E %.3f N %.3f", l.easting, l.northing)
}
