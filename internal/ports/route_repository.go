package ports

import (
	"context"

	"bus-simulation-service/internal/domain"
)

// Port: a boundary for loading the route the simulation traverses.
type RouteRepository interface {
	// Load the named route as an ordered, validated segment sequence.
	LoadRoute(ctx context.Context, name string) (domain.Route, error)
}
