// Package geo provides great-circle distance and bounding-box math for
// proximity search. Distances are in statute miles.
package geo

import (
	"errors"
	"math"
)

// EarthRadiusMiles is the mean Earth radius used by Distance.
const EarthRadiusMiles = 3959.0

// milesPerDegreeLat approximates one degree of latitude anywhere on Earth.
const milesPerDegreeLat = 69.0

var ErrOutOfRange = errors.New("coordinate out of range")

type Coordinate struct {
	Latitude  float64
	Longitude float64
}

func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Coordinate{}, ErrOutOfRange
	}
	return Coordinate{Latitude: lat, Longitude: lon}, nil
}

// Distance returns the Haversine great-circle distance between a and b,
// rounded to one decimal place. The approximation error is acceptable for
// city-scale search.
func Distance(a, b Coordinate) float64 {
	lat1 := radians(a.Latitude)
	lat2 := radians(b.Latitude)
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	d := 2 * EarthRadiusMiles * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return math.Round(d*10) / 10
}

// Box is an axis-aligned latitude/longitude rectangle.
type Box struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// BoundingBox returns a box that is a strict superset of the circle of
// radiusMiles around center: it may admit points outside the radius, but
// never excludes a point inside it. Callers must apply the precise Distance
// filter to the candidates it yields.
func BoundingBox(center Coordinate, radiusMiles float64) Box {
	latDelta := radiusMiles / milesPerDegreeLat
	lonDelta := radiusMiles / (math.Cos(radians(center.Latitude)) * milesPerDegreeLat)
	lonDelta = math.Abs(lonDelta)

	return Box{
		MinLat: center.Latitude - latDelta,
		MaxLat: center.Latitude + latDelta,
		MinLon: center.Longitude - lonDelta,
		MaxLon: center.Longitude + lonDelta,
	}
}

func (b Box) Contains(c Coordinate) bool {
	return c.Latitude >= b.MinLat && c.Latitude <= b.MaxLat &&
		c.Longitude >= b.MinLon && c.Longitude <= b.MaxLon
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
