package costfunction

import (
	"fmt"

	da "github.com/lintang-b-s/tdnavigator/pkg/datastructure"
	"github.com/lintang-b-s/tdnavigator/pkg/timetable"
)

type DurationSource interface {
	DurationsAt(timestamp string) ([]float64, error)
}

type CostFunction interface {
	// Weights returns one weight per topology edge for the timestamp.
	Weights(timestamp string, discounts []float64) ([]float64, error)
}

// DiscountedWeight down-weights a predicted duration by the share of past routes that used the edge.
// Percentages below threshold leave the duration unchanged.
func DiscountedWeight(duration, percentage, threshold float64) float64 {
	if percentage <= 0 || da.Lt(percentage, threshold) {
		return duration
	}
	if percentage > 1 {
		percentage = 1
	}
	return duration * (1 - percentage)
}

// BuildGraph populates a fresh graph over the topology's vertices with weights[i] on edge i.
func BuildGraph(topology *timetable.Topology, weights []float64) (*da.WeightedGraph[string], error) {
	if len(weights) != topology.NumberOfConnections() {
		return nil, fmt.Errorf("%w: %d weights for %d edges", timetable.ErrMisalignedTable, len(weights),
			topology.NumberOfConnections())
	}

	g, err := da.NewWeightedGraph(topology.GetVertices())
	if err != nil {
		return nil, err
	}
	for i, c := range topology.GetConnections() {
		if err := g.AddEdgeByVertices(c.From, c.To, weights[i]); err != nil {
			return nil, fmt.Errorf("edge %d (%s -> %s): %w", i, c.From, c.To, err)
		}
	}
	return g, nil
}

// ConnectionsOfPath maps the edges of a path found on BuildGraph(topology, weights) back to topology edge
// indices. Of several parallel edges the search relaxed the first one carrying the path edge's weight.
func ConnectionsOfPath(topology *timetable.Topology, weights []float64, path []da.WeightedEdge) ([]da.Index, error) {
	if len(weights) != topology.NumberOfConnections() {
		return nil, fmt.Errorf("%w: %d weights for %d edges", timetable.ErrMisalignedTable, len(weights),
			topology.NumberOfConnections())
	}

	vertices := topology.GetVertices()
	connections := make([]da.Index, 0, len(path))
	for _, e := range path {
		if int(e.GetFrom()) >= len(vertices) || int(e.GetTo()) >= len(vertices) {
			return nil, fmt.Errorf("%w: %v", da.ErrIndexOutOfRange, e)
		}
		from, to := vertices[e.GetFrom()], vertices[e.GetTo()]
		candidates, err := topology.ConnectionIndices(from, to)
		if err != nil {
			return nil, err
		}

		found := false
		for _, i := range candidates {
			if weights[i] == e.GetWeight() {
				connections = append(connections, i)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: no %s -> %s edge weighs %g", timetable.ErrUnknownConnection, from, to,
				e.GetWeight())
		}
	}
	return connections, nil
}

// DiscountedWeights combines a duration vector and a usage percentage vector, both aligned to topology edges.
// A nil discounts slice applies no discount.
func DiscountedWeights(durations, discounts []float64, threshold float64) ([]float64, error) {
	if discounts != nil && len(discounts) != len(durations) {
		return nil, fmt.Errorf("%w: %d discounts for %d durations", timetable.ErrMisalignedTable, len(discounts),
			len(durations))
	}
	weights := make([]float64, len(durations))
	for i, d := range durations {
		if discounts == nil {
			weights[i] = d
			continue
		}
		weights[i] = DiscountedWeight(d, discounts[i], threshold)
	}
	return weights, nil
}
