package job

import (
	"math"
	"strings"
)

const earthRadiusKm = 6371.0

// Distance returns the great-circle distance in kilometers between two
// coordinates, via the haversine formula.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// WithinRadius reports whether the job lies within radiusKm of the given
// point. Jobs without coordinates are never within any radius.
func (j Job) WithinRadius(lat, lon, radiusKm float64) bool {
	if j.Latitude == nil || j.Longitude == nil {
		return false
	}
	return Distance(lat, lon, *j.Latitude, *j.Longitude) <= radiusKm
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
