package coord

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pspoerri/bng/internal/geodesy"
	"github.com/pspoerri/bng/internal/tmerc"
)

func wgs84Degrees(lat, lon float64) geodesy.Geodetic {
	return geodesy.Geodetic{Lat: lat * math.Pi / 180, Lon: lon * math.Pi / 180, Datum: WGS84}
}

// Expected grid values come from the same Helmert + OS series pipeline and
// pin it against regressions. The 7-parameter shift itself is only good to
// a few meters against the definitive OSTN15 transformation.
var gridRefPoints = []struct {
	name     string
	lat, lon float64 // WGS84 degrees
	grid     tmerc.Grid
}{
	{"Westminster", 51.5007, -0.1246, tmerc.Grid{Easting: 530269.902, Northing: 179640.718}},
	{"Edinburgh", 55.9533, -3.1883, tmerc.Grid{Easting: 325897.218, Northing: 674001.202}},
	{"Manchester", 53.4808, -2.2426, tmerc.Grid{Easting: 383997.433, Northing: 398258.316}},
	{"Land's End", 50.0657, -5.7132, tmerc.Grid{Easting: 134369.608, Northing: 25005.052}},
	{"John o' Groats", 58.6373, -3.0689, tmerc.Grid{Easting: 338044.050, Northing: 972651.027}},
}

func TestGeodeticToGrid_ReferencePoints(t *testing.T) {
	for _, ref := range gridRefPoints {
		t.Run(ref.name, func(t *testing.T) {
			got, err := GeodeticToGrid(wgs84Degrees(ref.lat, ref.lon))
			require.NoError(t, err)
			assert.InDelta(t, ref.grid.Easting, got.Easting, 0.01)
			assert.InDelta(t, ref.grid.Northing, got.Northing, 0.01)
		})
	}
}

func TestGeodeticToGrid_DatumMismatch(t *testing.T) {
	g := wgs84Degrees(52, -1)
	g.Datum = OSGB36
	_, err := GeodeticToGrid(g)
	assert.ErrorIs(t, err, geodesy.ErrDatumMismatch)
	assert.ErrorContains(t, err, "datum shift to OSGB36")
}

// Cat and Fiddle Inn, Derbyshire.
func TestGridToGeodetic_CatAndFiddle(t *testing.T) {
	in := tmerc.Grid{Easting: 400100, Northing: 371875}

	g, err := GridToGeodetic(in)
	require.NoError(t, err)
	assert.Equal(t, WGS84, g.Datum)
	assert.InDelta(t, 53.2438973, g.Lat*180/math.Pi, 1e-6)
	assert.InDelta(t, -1.9999601, g.Lon*180/math.Pi, 1e-6)
	// A point on Airy 1830 sits about 50 m above GRS80 here.
	assert.InDelta(t, 50.0, g.Height, 1)

	g.Height = 0
	got, err := GeodeticToGrid(g)
	require.NoError(t, err)
	assert.InDelta(t, in.Easting, got.Easting, 0.01)
	assert.InDelta(t, in.Northing, got.Northing, 0.01)
}

// The true origin is defined on OSGB36, so the WGS84 point with the same
// coordinates lands within the datum shift (~100 m) of it.
func TestGeodeticToGrid_TrueOrigin(t *testing.T) {
	got, err := GeodeticToGrid(wgs84Degrees(49, -2))
	require.NoError(t, err)
	assert.InDelta(t, NationalGrid.E0, got.Easting, 200)
	assert.InDelta(t, NationalGrid.N0, got.Northing, 200)
}

func TestGridRoundTrip(t *testing.T) {
	for e := 100_000.0; e <= 650_000; e += 50_000 {
		for n := 0.0; n <= 1_200_000; n += 100_000 {
			in := tmerc.Grid{Easting: e, Northing: n}
			g, err := GridToGeodetic(in)
			require.NoError(t, err)
			g.Height = 0
			got, err := GeodeticToGrid(g)
			require.NoError(t, err)

			assert.InDelta(t, in.Easting, got.Easting, 0.01, "E %.0f N %.0f", e, n)
			assert.InDelta(t, in.Northing, got.Northing, 0.01, "E %.0f N %.0f", e, n)
		}
	}
}

func TestGeodeticRoundTrip(t *testing.T) {
	for lat := 49.9; lat <= 60.9; lat += 0.5 {
		for lon := -8.0; lon <= 1.8; lon += 0.7 {
			grid, err := GeodeticToGrid(wgs84Degrees(lat, lon))
			require.NoError(t, err)
			g, err := GridToGeodetic(grid)
			require.NoError(t, err)

			assert.InDelta(t, lat, g.Lat*180/math.Pi, 1e-6, "lat %.1f lon %.1f", lat, lon)
			assert.InDelta(t, lon, g.Lon*180/math.Pi, 1e-6, "lat %.1f lon %.1f", lat, lon)
		}
	}
}

// A 1e-6° step moves the grid position by roughly 0.07 m east and 0.11 m
// north; there are no jumps anywhere in the domain.
func TestGeodeticToGrid_Sensitivity(t *testing.T) {
	const step = 1e-6
	for lat := 50.0; lat <= 60; lat += 1 {
		for lon := -7.0; lon <= 1; lon += 1 {
			base, err := GeodeticToGrid(wgs84Degrees(lat, lon))
			require.NoError(t, err)
			moved, err := GeodeticToGrid(wgs84Degrees(lat+step, lon+step))
			require.NoError(t, err)

			dE, dN := moved.Easting-base.Easting, moved.Northing-base.Northing
			assert.Greater(t, dN, 0.09, "lat %.0f lon %.0f", lat, lon)
			assert.Less(t, dN, 0.13, "lat %.0f lon %.0f", lat, lon)
			assert.Greater(t, dE, 0.03, "lat %.0f lon %.0f", lat, lon)
			assert.Less(t, dE, 0.09, "lat %.0f lon %.0f", lat, lon)
		}
	}
}

func TestHelmertDatums(t *testing.T) {
	assert.Equal(t, WGS84, WGS84ToOSGB36.From)
	assert.Equal(t, OSGB36, WGS84ToOSGB36.To)
	assert.Equal(t, Airy1830, NationalGrid.Datum.Ellipsoid)
}

func BenchmarkGeodeticToGrid(b *testing.B) {
	g := wgs84Degrees(53.2438973, -1.9999601)
	for i := 0; i < b.N; i++ {
		GeodeticToGrid(g)
	}
}

func BenchmarkGridToGeodetic(b *testing.B) {
	grid := tmerc.Grid{Easting: 400100, Northing: 371875}
	for i := 0; i < b.N; i++ {
		GridToGeodetic(grid)
	}
}
