package domain

import "math"

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the point is finite and inside geodetic bounds.
func (p GeoPoint) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lon, 0) {
		return false
	}
	return p.Lon >= -180 && p.Lon <= 180 && p.Lat >= -90 && p.Lat <= 90
}

// Bounds represents a geographic bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Contains reports whether p lies inside the box, edges included.
func (b Bounds) Contains(p GeoPoint) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

// Center returns the midpoint of the box.
func (b Bounds) Center() GeoPoint {
	return GeoPoint{Lat: (b.MinLat + b.MaxLat) / 2, Lon: (b.MinLon + b.MaxLon) / 2}
}

// GeoWindow is the rectangle a search reads rasters for. Corner order is kept
// as given: (Lon0, Lat0) is the initial corner and (Lon1, Lat1) the final one.
type GeoWindow struct {
	Lon0 float64 `json:"lon0"`
	Lat0 float64 `json:"lat0"`
	Lon1 float64 `json:"lon1"`
	Lat1 float64 `json:"lat1"`
}

// WindowBetween returns the window spanned by two points.
func WindowBetween(from, to GeoPoint) GeoWindow {
	return GeoWindow{Lon0: from.Lon, Lat0: from.Lat, Lon1: to.Lon, Lat1: to.Lat}
}

// Bounds returns the window as an ordered bounding box.
func (w GeoWindow) Bounds() Bounds {
	return Bounds{
		MinLat: math.Min(w.Lat0, w.Lat1),
		MaxLat: math.Max(w.Lat0, w.Lat1),
		MinLon: math.Min(w.Lon0, w.Lon1),
		MaxLon: math.Max(w.Lon0, w.Lon1),
	}
}
