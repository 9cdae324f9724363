package coord

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pspoerri/bng/internal/geodesy"
	"github.com/pspoerri/bng/internal/tmerc"
)

// Reference ellipsoids.
var (
	// GRS80 underlies WGS84 (the two differ by 0.1 mm in the semi-minor axis).
	GRS80 = geodesy.Ellipsoid{A: 6378137.000, B: 6356752.3141}
	// Airy1830 underlies OSGB36.
	Airy1830 = geodesy.Ellipsoid{A: 6377563.396, B: 6356256.909}
)

// Datums.
var (
	WGS84  = geodesy.Datum{Name: "WGS84", Ellipsoid: GRS80}
	OSGB36 = geodesy.Datum{Name: "OSGB36", Ellipsoid: Airy1830}
)

// WGS84ToOSGB36 is the published Helmert parameter set from WGS84 to OSGB36.
// The reverse direction is WGS84ToOSGB36.Inverse().
var WGS84ToOSGB36 = geodesy.Helmert{
	From:        WGS84,
	To:          OSGB36,
	Scale:       20.4894e-6,
	Translation: r3.Vec{X: -446.448, Y: 125.157, Z: -542.060},
	Rotation: r3.Vec{
		X: geodesy.ArcSeconds(-0.1502),
		Y: geodesy.ArcSeconds(-0.2470),
		Z: geodesy.ArcSeconds(-0.8421),
	},
}

// NationalGrid is the Transverse Mercator definition of the Ordnance Survey
// National Grid on OSGB36.
var NationalGrid = tmerc.Params{
	Datum: OSGB36,
	F0:    0.9996012717,
	Lat0:  49 * math.Pi / 180,
	Lon0:  -2 * math.Pi / 180,
	N0:    -100000,
	E0:    400000,
}

// GeodeticToGrid converts a WGS84 geodetic position to National Grid
// easting/northing: cartesian on GRS80, Helmert to OSGB36, geodetic on
// Airy 1830, then Transverse Mercator.
func GeodeticToGrid(g geodesy.Geodetic) (tmerc.Grid, error) {
	c, err := WGS84ToOSGB36.Apply(geodesy.ToCartesian(g))
	if err != nil {
		return tmerc.Grid{}, fmt.Errorf("datum shift to OSGB36: %w", err)
	}
	osgb, err := geodesy.ToGeodetic(c)
	if err != nil {
		return tmerc.Grid{}, fmt.Errorf("datum shift to OSGB36: %w", err)
	}
	return NationalGrid.Project(osgb)
}

// GridToGeodetic converts National Grid easting/northing to a WGS84
// geodetic position. The returned height is the WGS84 ellipsoidal height
// of the point lying on the Airy 1830 ellipsoid.
func GridToGeodetic(grid tmerc.Grid) (geodesy.Geodetic, error) {
	osgb, err := NationalGrid.Unproject(grid)
	if err != nil {
		return geodesy.Geodetic{}, err
	}
	c, err := WGS84ToOSGB36.Inverse().Apply(geodesy.ToCartesian(osgb))
	if err != nil {
		return geodesy.Geodetic{}, fmt.Errorf("datum shift to WGS84: %w", err)
	}
	g, err := geodesy.ToGeodetic(c)
	if err != nil {
		return geodesy.Geodetic{}, fmt.Errorf("datum shift to WGS84: %w", err)
	}
	return g, nil
}
