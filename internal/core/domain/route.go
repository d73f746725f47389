package domain

import "time"

// Waypoint is one step of a computed route.
type Waypoint struct {
	Lon       float64 `json:"long"`
	Lat       float64 `json:"lat"`
	Elevation float64 `json:"height"`
}

// SearchStats describes the work a single search performed.
type SearchStats struct {
	GridWidth      int `json:"grid_width"`
	GridHeight     int `json:"grid_height"`
	FactorX        int `json:"downsample_x"`
	FactorY        int `json:"downsample_y"`
	FrontierPops   int `json:"frontier_pops"`
	FrontierPushes int `json:"frontier_pushes"`
	Expanded       int `json:"expanded"`
}

// Route is the result of a successful path search.
type Route struct {
	Waypoints    []Waypoint    `json:"waypoints"`
	Message      string        `json:"message"`
	Location     string        `json:"location"`
	ForecastDate string        `json:"forecast_date,omitempty"`
	RiskWeighing float64       `json:"risk_weighing"`
	Stats        SearchStats   `json:"stats"`
	Elapsed      time.Duration `json:"elapsed"`
}

// RouteComputed is published after a route has been found.
type RouteComputed struct {
	Time         time.Time `json:"time"`
	Location     string    `json:"location"`
	From         GeoPoint  `json:"from"`
	To           GeoPoint  `json:"to"`
	RiskWeighing float64   `json:"risk_weighing"`
	Waypoints    int       `json:"waypoints"`
	ElapsedMs    int64     `json:"elapsed_ms"`
}
