// Package location provides the pure distance and bounding box math used by
// provider search. All distances are kilometers.
package location

import "math"

const (
	earthRadiusKm = 6371.0
	// Approximate km spanned by one degree of latitude.
	kmPerDegreeLat = 111.0
)

// DistanceUnknown is returned when a coordinate is missing. Callers must
// treat it as "not matchable", never as zero distance.
const DistanceUnknown = math.MaxFloat64

// Distance computes the haversine great-circle distance between two
// coordinates, in kilometers.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLon := (lon2 - lon1) * (math.Pi / 180)
	lat1Rad := lat1 * (math.Pi / 180)
	lat2Rad := lat2 * (math.Pi / 180)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// DistanceBetween is Distance over possibly-missing coordinates. Any nil
// coordinate yields DistanceUnknown.
func DistanceBetween(lat1, lon1, lat2, lon2 *float64) float64 {
	if lat1 == nil || lon1 == nil || lat2 == nil || lon2 == nil {
		return DistanceUnknown
	}
	return Distance(*lat1, *lon1, *lat2, *lon2)
}

// BoundingBox is a rectangular coordinate range used as a coarse pre-filter
// before exact distance computation.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// BoundingBoxAround returns the box enclosing the circle of radiusKm around
// the center. The longitude delta widens with latitude to correct for
// meridian convergence, so the box is always a superset of the true circle:
// it may admit points slightly outside, never exclude a point inside.
func BoundingBoxAround(lat, lon, radiusKm float64) BoundingBox {
	latDelta := radiusKm / kmPerDegreeLat
	lonDelta := radiusKm / (kmPerDegreeLat * math.Cos(lat*(math.Pi/180)))
	return BoundingBox{
		MinLat: lat - latDelta,
		MaxLat: lat + latDelta,
		MinLon: lon - lonDelta,
		MaxLon: lon + lonDelta,
	}
}

// Contains reports whether the point falls inside the box.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// WithinRadius reports whether the point lies within radiusKm of the center.
func WithinRadius(centerLat, centerLon, pointLat, pointLon, radiusKm float64) bool {
	return Distance(centerLat, centerLon, pointLat, pointLon) <= radiusKm
}

// WithinRadiusOf is WithinRadius over possibly-missing coordinates; a
// missing coordinate is never within any radius.
func WithinRadiusOf(centerLat, centerLon float64, pointLat, pointLon *float64, radiusKm float64) bool {
	if pointLat == nil || pointLon == nil {
		return false
	}
	return WithinRadius(centerLat, centerLon, *pointLat, *pointLon, radiusKm)
}
