package domain

import "math"

const EarthRadiusKm = 6371.0

// HaversineDistance returns the great-circle distance between two points in kilometers.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// Box is a lat/lon rectangle enclosing a search circle.
type Box struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// BoundingBox encloses the circle of radiusKm around (lat, lon). Near the poles the
// longitude span widens to the full range.
func BoundingBox(lat, lon, radiusKm float64) Box {
	deltaLat := radiusKm / EarthRadiusKm * 180 / math.Pi
	box := Box{
		MinLat: math.Max(lat-deltaLat, -90),
		MaxLat: math.Min(lat+deltaLat, 90),
		MinLon: -180,
		MaxLon: 180,
	}

	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat > 1e-6 {
		deltaLon := deltaLat / cosLat
		if deltaLon < 180 {
			box.MinLon = lon - deltaLon
			box.MaxLon = lon + deltaLon
		}
	}
	return box
}
