package telemetry

import "go.opentelemetry.io/otel/attribute"

// Tracer and span names.
const (
	TracerName = "github.com/icydoge/avaroute"

	SpanFindPath      = "usecases.PathService.FindPath"
	SpanForecastDates = "usecases.ForecastService.ForecastDates"
	SpanPastAvalanche = "usecases.AvalancheService.PastAvalanches"
)

// Span attribute keys for search instrumentation.
const (
	AttrLocation     = attribute.Key("avaroute.location")
	AttrRiskWeighing = attribute.Key("avaroute.risk_weighing")
	AttrGridWidth    = attribute.Key("avaroute.grid.width")
	AttrGridHeight   = attribute.Key("avaroute.grid.height")
	AttrFactorX      = attribute.Key("avaroute.grid.downsample_x")
	AttrFactorY      = attribute.Key("avaroute.grid.downsample_y")
	AttrExpanded     = attribute.Key("avaroute.search.expanded")
	AttrWaypoints    = attribute.Key("avaroute.route.waypoints")
	AttrErrorKind    = attribute.Key("avaroute.error.kind")
	AttrAvalanches   = attribute.Key("avaroute.avalanches")
)
