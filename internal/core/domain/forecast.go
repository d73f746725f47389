package domain

import "time"

// Octant is one of the eight 45° compass sectors a slope can face.
type Octant string

const (
	OctantN  Octant = "N"
	OctantNE Octant = "NE"
	OctantE  Octant = "E"
	OctantSE Octant = "SE"
	OctantS  Octant = "S"
	OctantSW Octant = "SW"
	OctantW  Octant = "W"
	OctantNW Octant = "NW"
)

// Valid reports whether o is one of the eight octants.
func (o Octant) Valid() bool {
	switch o {
	case OctantN, OctantNE, OctantE, OctantSE, OctantS, OctantSW, OctantW, OctantNW:
		return true
	}
	return false
}

// AspectInvalid marks a cell without a facing (flat ground or no data).
const AspectInvalid = -1.0

// FacingFromAspect maps an aspect in degrees (clockwise from north) to its
// octant. ok is false for values outside [0, 360].
func FacingFromAspect(aspect float64) (o Octant, ok bool) {
	if aspect < 0 || aspect > 360 || aspect != aspect {
		return "", false
	}
	switch {
	case aspect > 337.5 || aspect <= 22.5:
		return OctantN, true
	case aspect <= 67.5:
		return OctantNE, true
	case aspect <= 112.5:
		return OctantE, true
	case aspect <= 157.5:
		return OctantSE, true
	case aspect <= 202.5:
		return OctantS, true
	case aspect <= 247.5:
		return OctantSW, true
	case aspect <= 292.5:
		return OctantW, true
	default:
		return OctantNW, true
	}
}

// DangerCode is the forecast colour code: 0 none, 1 low, 2 moderate,
// 3 considerable, 4 high, 5 very high.
type DangerCode int

// ForecastRecord is one avalanche forecast entry for a location, date and
// slope octant. Boundaries are altitudes in metres.
type ForecastRecord struct {
	LocationID           int        `json:"location_id"`
	Date                 time.Time  `json:"date"`
	Facing               Octant     `json:"facing"`
	LowerBoundary        int        `json:"lower_boundary"`
	MiddleBoundary       int        `json:"middle_boundary"`
	UpperBoundary        int        `json:"upper_boundary"`
	LowerPrimaryColour   DangerCode `json:"lower_primary_colour"`
	LowerSecondaryColour DangerCode `json:"lower_secondary_colour"`
	UpperPrimaryColour   DangerCode `json:"upper_primary_colour"`
	UpperSecondaryColour DangerCode `json:"upper_secondary_colour"`
}

// Location is a named avalanche forecast region.
type Location struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DateLayout is the calendar date format used for forecast dates.
const DateLayout = "2006-01-02"
