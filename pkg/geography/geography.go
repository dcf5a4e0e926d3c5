// Package geography provides small pure helpers for coordinate math.
// All distances are in meters.
package geography

import (
	"math"

	"artwork-dedup/internal/models"
)

const earthRadiusMeters = 6371000

// Distance returns the great-circle distance between two coordinate pairs in
// meters, using the haversine formula. Accurate to within a few meters at
// urban scales. Identical points return 0; degenerate inputs do not panic.
func Distance(a, b models.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// Clamp guards float drift on antipodal points before the sqrt.
	if h > 1 {
		h = 1
	}
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// BoundingBox is a lat/lon rectangle used for cheap spatial prefiltering in SQL
// before exact haversine distances are computed.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// BoxAround returns a bounding box that fully contains the circle of the given
// radius (meters) around center. The longitude span widens toward the poles;
// near the poles it degrades to the full longitude range rather than producing
// an invalid box.
func BoxAround(center models.Coordinates, radiusMeters float64) BoundingBox {
	latDelta := radiusMeters / earthRadiusMeters * 180 / math.Pi

	cosLat := math.Cos(center.Lat * math.Pi / 180)
	var lonDelta float64
	if cosLat < 1e-9 {
		lonDelta = 180
	} else {
		lonDelta = latDelta / cosLat
	}

	return BoundingBox{
		MinLat: center.Lat - latDelta,
		MaxLat: center.Lat + latDelta,
		MinLon: center.Lon - lonDelta,
		MaxLon: center.Lon + lonDelta,
	}
}
