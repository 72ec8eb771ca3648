// Package geo provides great-circle distance math for geospatial entity
// queries.
package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used for spherical distance.
const EarthRadiusMeters = 6371000.0

// Haversine returns the great-circle distance in meters between two
// points given in decimal degrees.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// BoundingBoxForRadius returns a latitude/longitude box that encloses the
// circle of the given radius around a point. A circle reaching either pole
// covers every longitude, so the box widens to the full [-180, 180] range;
// the same happens when the circle spans more than half the globe.
func BoundingBoxForRadius(lat, lng, radiusMeters float64) (minLat, minLng, maxLat, maxLng float64) {
	dLat := radiusMeters / EarthRadiusMeters * 180 / math.Pi

	minLat = math.Max(lat-dLat, -90)
	maxLat = math.Min(lat+dLat, 90)

	// A circle enclosing a pole contains points at any longitude
	if minLat == -90 || maxLat == 90 {
		return minLat, -180, maxLat, 180
	}

	cosLat := math.Cos(lat * math.Pi / 180)
	dLng := radiusMeters / (EarthRadiusMeters * cosLat) * 180 / math.Pi
	if dLng >= 180 {
		return minLat, -180, maxLat, 180
	}

	minLng = lng - dLng
	maxLng = lng + dLng
	// Boxes spilling over the antimeridian keep their raw bounds; callers
	// interpret minLng > 180 or maxLng < -180 after normalization.
	if minLng < -180 {
		minLng += 360
	}
	if maxLng > 180 {
		maxLng -= 360
	}

	return minLat, minLng, maxLat, maxLng
}
