package domain

import "math"

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Location couples a canonical street address with its coordinates.
type Location struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Coordinate returns the coordinate part of the location.
func (l Location) Coordinate() Coordinate {
	return Coordinate{Lat: l.Lat, Lon: l.Lon}
}

// IsZero reports whether the location carries no address and no coordinates.
func (l Location) IsZero() bool {
	return l.Address == "" && l.Lat == 0 && l.Lon == 0
}

// DistanceTo returns the straight-line distance between two coordinates in
// coordinate degrees. It deliberately ignores the curvature of the earth: the
// value only feeds the degraded-mode time estimate, which is calibrated on
// the same unit.
func (c Coordinate) DistanceTo(o Coordinate) float64 {
	dLat := c.Lat - o.Lat
	dLon := c.Lon - o.Lon
	return math.Sqrt(dLat*dLat + dLon*dLon)
}
