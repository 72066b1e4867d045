package controllers

import (
	"github.com/lintang-b-s/tdnavigator/pkg/engine"
)

type RoutingService interface {
	ShortestPath(timestamp, source, target string) (*engine.RouteResult, error)
	ValidateRoute(timestamp string, route []string) (*engine.RouteValidation, error)
	Distances(timestamp, source string) (map[string]float64, error)
	SpanningTree(timestamp, start string) ([]engine.SpanningEdge, float64, error)
	Timestamps() []string
}
