package geo

import (
	"math"

	"github.com/twpayne/go-polyline"

	"munroaccess.org/internal/models"
)

// Distance calculates the great-circle distance between two points in
// meters using the haversine formula on a spherical earth. The radii this
// system works with are in the hundreds of meters, so the spherical
// approximation is plenty.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // meters

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// LegPathDistance returns the on-the-ground length of a leg in meters by
// walking its encoded polyline geometry. Falls back to the straight-line
// distance between the leg endpoints when no geometry was supplied or the
// polyline cannot be decoded.
func LegPathDistance(leg models.Leg) float64 {
	endpointDistance := Distance(
		leg.From.LngLat.Lat, leg.From.LngLat.Lng,
		leg.To.LngLat.Lat, leg.To.LngLat.Lng,
	)

	if leg.Geometry == "" {
		return endpointDistance
	}

	coords, _, err := polyline.DecodeCoords([]byte(leg.Geometry))
	if err != nil || len(coords) < 2 {
		return endpointDistance
	}

	total := 0.0
	for i := 1; i < len(coords); i++ {
		total += Distance(coords[i-1][0], coords[i-1][1], coords[i][0], coords[i][1])
	}
	return total
}

// ItineraryPathDistance sums LegPathDistance over every leg.
func ItineraryPathDistance(it models.Itinerary) float64 {
	total := 0.0
	for _, leg := range it.Legs {
		total += LegPathDistance(leg)
	}
	return total
}
