package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/icydoge/avaroute/internal/core/domain"
	"github.com/icydoge/avaroute/internal/core/usecases"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	waypointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Waypoint",
		Fields: graphql.Fields{
			"long":   &graphql.Field{Type: graphql.Float},
			"lat":    &graphql.Field{Type: graphql.Float},
			"height": &graphql.Field{Type: graphql.Float},
		},
	})

	statsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SearchStats",
		Fields: graphql.Fields{
			"grid_width":      &graphql.Field{Type: graphql.Int},
			"grid_height":     &graphql.Field{Type: graphql.Int},
			"downsample_x":    &graphql.Field{Type: graphql.Int},
			"downsample_y":    &graphql.Field{Type: graphql.Int},
			"frontier_pops":   &graphql.Field{Type: graphql.Int},
			"frontier_pushes": &graphql.Field{Type: graphql.Int},
			"expanded":        &graphql.Field{Type: graphql.Int},
		},
	})

	routeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Route",
		Fields: graphql.Fields{
			"waypoints":     &graphql.Field{Type: graphql.NewList(waypointType)},
			"message":       &graphql.Field{Type: graphql.String},
			"location":      &graphql.Field{Type: graphql.String},
			"forecast_date": &graphql.Field{Type: graphql.String},
			"risk_weighing": &graphql.Field{Type: graphql.Float},
			"stats":         &graphql.Field{Type: statsType},
			"elapsed_ms": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if r, ok := p.Source.(*domain.Route); ok {
						return r.Elapsed.Milliseconds(), nil
					}
					return nil, nil
				},
			},
		},
	})

	forecastDatesType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ForecastDates",
		Fields: graphql.Fields{
			"location": &graphql.Field{Type: graphql.String},
			"dates":    &graphql.Field{Type: graphql.NewList(graphql.String)},
		},
	})

	pastAvalancheType := graphql.NewObject(graphql.ObjectConfig{
		Name: "PastAvalanche",
		Fields: graphql.Fields{
			"long":    &graphql.Field{Type: graphql.Float},
			"lat":     &graphql.Field{Type: graphql.Float},
			"time":    &graphql.Field{Type: graphql.DateTime},
			"comment": &graphql.Field{Type: graphql.String},
			"height":  &graphql.Field{Type: graphql.Float},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"route": &graphql.Field{
				Type:        routeType,
				Description: "Least-cost route between two points for a given risk weighing",
				Args: graphql.FieldConfigArgument{
					"lon0":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lat0":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lon1":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lat1":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"risk_weighing": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"date":          &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: ""},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Paths.FindPath(p.Context, usecases.FindPathRequest{
						From:         domain.GeoPoint{Lon: p.Args["lon0"].(float64), Lat: p.Args["lat0"].(float64)},
						To:           domain.GeoPoint{Lon: p.Args["lon1"].(float64), Lat: p.Args["lat1"].(float64)},
						RiskWeighing: p.Args["risk_weighing"].(float64),
						Date:         p.Args["date"].(string),
					})
				},
			},
			"forecastDates": &graphql.Field{
				Type:        forecastDatesType,
				Description: "Forecast dates available for the region containing a point, newest first",
				Args: graphql.FieldConfigArgument{
					"lon": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Forecasts.ForecastDates(p.Context, domain.GeoPoint{
						Lon: p.Args["lon"].(float64),
						Lat: p.Args["lat"].(float64),
					})
				},
			},
			"pastAvalanches": &graphql.Field{
				Type:        graphql.NewList(pastAvalancheType),
				Description: "Avalanches observed between two dates (YYYY-MM-DD, both inclusive), oldest first",
				Args: graphql.FieldConfigArgument{
					"start": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"end":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Avalanches.PastAvalanches(p.Context, p.Args["start"].(string), p.Args["end"].(string))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
