package domain

import "time"

// PastAvalanche is one recorded avalanche observation. Height is the terrain
// elevation at the observed point, or 0 when the point lies outside the
// elevation raster.
type PastAvalanche struct {
	Lon     float64   `json:"long"`
	Lat     float64   `json:"lat"`
	Time    time.Time `json:"time"`
	Comment string    `json:"comment"`
	Height  float64   `json:"height"`
}
