// Package geo holds the geographic primitives for record queries: WGS84
// points and the bounding-box filter sent to PostGIS.
package geo

import (
	"fmt"
	"strconv"
	"strings"
)

// SRID is the spatial reference for all coordinates (WGS84, lon/lat degrees).
const SRID = 4326

// Point is a WGS84 coordinate. Lon is x, Lat is y.
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Bounds is an axis-aligned bounding box in WGS84 degrees.
type Bounds struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

// BoundsFromQuery builds a bounding box from four optional query scalars.
// The filter activates only when all four are present; any smaller subset
// means no spatial filtering at all, not a partial filter and not an error.
// Min/max ordering is not validated: a backwards box is passed through as
// given and yields whatever the containment engine makes of the resulting
// ring (an empty result set for a degenerate rectangle).
func BoundsFromQuery(minLon, minLat, maxLon, maxLat *float64) *Bounds {
	if minLon == nil || minLat == nil || maxLon == nil || maxLat == nil {
		return nil
	}
	return &Bounds{
		MinLon: *minLon,
		MinLat: *minLat,
		MaxLon: *maxLon,
		MaxLat: *maxLat,
	}
}

// PolygonWKT renders the box as a closed five-vertex ring, starting and
// ending at the (MinLon, MinLat) corner, suitable for ST_GeomFromText.
func (b *Bounds) PolygonWKT() string {
	corners := [5]Point{
		{b.MinLon, b.MinLat},
		{b.MaxLon, b.MinLat},
		{b.MaxLon, b.MaxLat},
		{b.MinLon, b.MaxLat},
		{b.MinLon, b.MinLat},
	}

	parts := make([]string, 0, len(corners))
	for _, c := range corners {
		parts = append(parts, formatCoord(c.Lon)+" "+formatCoord(c.Lat))
	}
	return fmt.Sprintf("POLYGON((%s))", strings.Join(parts, ", "))
}

// Contains reports whether p lies strictly inside the box. Points exactly
// on an edge are excluded, matching the ST_Contains convention the store
// delegates to, so in-memory fakes and the database agree on boundaries.
func (b *Bounds) Contains(p Point) bool {
	return p.Lon > b.MinLon && p.Lon < b.MaxLon &&
		p.Lat > b.MinLat && p.Lat < b.MaxLat
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
