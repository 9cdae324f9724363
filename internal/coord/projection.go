package coord

import (
	"math"

	"github.com/pspoerri/bng/internal/geodesy"
	"github.com/pspoerri/bng/internal/tmerc"
)

// Projection defines the interface for converting between a source CRS and WGS84.
type Projection interface {
	// ToWGS84 converts source CRS coordinates to WGS84 longitude/latitude (degrees).
	ToWGS84(x, y float64) (lon, lat float64, err error)

	// FromWGS84 converts WGS84 longitude/latitude (degrees) to source CRS coordinates.
	FromWGS84(lon, lat float64) (x, y float64, err error)

	// EPSG returns the EPSG code for this projection.
	EPSG() int
}

// ForEPSG returns a Projection for the given EPSG code.
// Returns nil if the EPSG code is not supported.
func ForEPSG(epsg int) Projection {
	switch epsg {
	case 27700:
		return &BritishNationalGrid{}
	case 4326:
		return &WGS84Identity{}
	default:
		return nil
	}
}

// WGS84Identity is a no-op projection for data already in EPSG:4326.
type WGS84Identity struct{}

func (w *WGS84Identity) ToWGS84(x, y float64) (lon, lat float64, err error)   { return x, y, nil }
func (w *WGS84Identity) FromWGS84(lon, lat float64) (x, y float64, err error) { return lon, lat, nil }
func (w *WGS84Identity) EPSG() int                                            { return 4326 }

// BritishNationalGrid implements the Projection interface for EPSG:27700
// (OSGB36 / British National Grid). Heights are taken as zero on the WGS84
// side.
type BritishNationalGrid struct{}

func (b *BritishNationalGrid) EPSG() int { return 27700 }

// ToWGS84 converts National Grid easting/northing to WGS84 longitude/latitude (degrees).
func (b *BritishNationalGrid) ToWGS84(easting, northing float64) (lon, lat float64, err error) {
	g, err := GridToGeodetic(tmerc.Grid{Easting: easting, Northing: northing})
	if err != nil {
		return 0, 0, err
	}
	return g.Lon * 180 / math.Pi, g.Lat * 180 / math.Pi, nil
}

// FromWGS84 converts WGS84 longitude/latitude (degrees) to National Grid easting/northing.
func (b *BritishNationalGrid) FromWGS84(lon, lat float64) (easting, northing float64, err error) {
	grid, err := GeodeticToGrid(geodesy.Geodetic{
		Lat:   lat * math.Pi / 180,
		Lon:   lon * math.Pi / 180,
		Datum: WGS84,
	})
	if err != nil {
		return 0, 0, err
	}
	return grid.Easting, grid.Northing, nil
}
