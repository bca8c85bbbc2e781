package geo

import "math"

const earthRadiusMeters = 6371000.0

func toRad(deg float64) float64 { return deg * math.Pi / 180.0 }

func toDeg(rad float64) float64 { return rad * 180.0 / math.Pi }

// HaversineDistance returns the great-circle distance in meters between two
// points given in degrees.
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Range is a closed interval of degrees.
type Range struct {
	Min, Max float64
}

// Box bounds every point within a radius of a center. Lng holds one range,
// or two when the box crosses the antimeridian.
type Box struct {
	Lat Range
	Lng []Range
}

var fullLng = []Range{{Min: -180, Max: 180}}

// BoundingBox returns the smallest latitude/longitude box containing the
// circle of radiusMeters around (lat, lng), on the same sphere HaversineDistance
// uses. A circle reaching a pole spans every longitude.
func BoundingBox(lat, lng, radiusMeters float64) Box {
	angular := radiusMeters / earthRadiusMeters
	deltaLat := toDeg(angular)

	box := Box{Lat: Range{Min: lat - deltaLat, Max: lat + deltaLat}}
	if box.Lat.Max >= 90 || box.Lat.Min <= -90 {
		box.Lat.Min = math.Max(box.Lat.Min, -90)
		box.Lat.Max = math.Min(box.Lat.Max, 90)
		box.Lng = fullLng
		return box
	}

	// meridian tangent to the circle
	s := math.Sin(angular) / math.Cos(toRad(lat))
	if s >= 1 {
		box.Lng = fullLng
		return box
	}
	deltaLng := toDeg(math.Asin(s))
	minLng, maxLng := lng-deltaLng, lng+deltaLng
	switch {
	case minLng < -180:
		box.Lng = []Range{{Min: minLng + 360, Max: 180}, {Min: -180, Max: maxLng}}
	case maxLng > 180:
		box.Lng = []Range{{Min: minLng, Max: 180}, {Min: -180, Max: maxLng - 360}}
	default:
		box.Lng = []Range{{Min: minLng, Max: maxLng}}
	}
	return box
}
