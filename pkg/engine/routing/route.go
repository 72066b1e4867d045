package routing

import (
	"github.com/lintang-b-s/tdnavigator/pkg/costfunction"
	da "github.com/lintang-b-s/tdnavigator/pkg/datastructure"
	"github.com/lintang-b-s/tdnavigator/pkg/timetable"
)

type Route[V comparable] struct {
	Vertices []V
	Edges    []da.WeightedEdge
	Cost     float64
}

// ComputeRoute builds the graph for one query from the topology, the durations of a timestamp and the
// usage percentages of its hour, then returns the minimum weight route from source to target.
func ComputeRoute(topology *timetable.Topology, durations, discounts []float64,
	source, target string) (*Route[string], error) {
	weights, err := costfunction.DiscountedWeights(durations, discounts, 0)
	if err != nil {
		return nil, err
	}
	g, err := costfunction.BuildGraph(topology, weights)
	if err != nil {
		return nil, err
	}
	return ComputeRouteOnGraph(g, source, target)
}

func ComputeRouteOnGraph[V comparable](g *da.WeightedGraph[V], source, target V) (*Route[V], error) {
	if _, err := g.IndexOf(target); err != nil {
		return nil, err
	}

	spt, err := NewDijkstra(g).ShortestPaths(source)
	if err != nil {
		return nil, err
	}
	return RouteFromTree(spt, source, target)
}

func RouteFromTree[V comparable](spt *ShortestPathTree[V], source, target V) (*Route[V], error) {
	edges, err := spt.PathTo(target)
	if err != nil {
		return nil, err
	}
	cost, _, _ := spt.DistanceTo(target)

	vertices := PathVertices(spt.graph, edges)
	if len(edges) == 0 {
		vertices = []V{source}
	}
	return &Route[V]{
		Vertices: vertices,
		Edges:    edges,
		Cost:     cost,
	}, nil
}
