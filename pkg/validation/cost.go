package validation

import (
	"fmt"
	"math"

	da "github.com/lintang-b-s/tdnavigator/pkg/datastructure"
	"github.com/lintang-b-s/tdnavigator/pkg/util"
)

// ConnectionLookup resolves a vertex pair to the index of the edge joining them.
type ConnectionLookup interface {
	ConnectionIndex(from, to string) (da.Index, error)
}

// DurationLookup returns the predicted duration of one edge at a timestamp.
type DurationLookup interface {
	DurationAt(timestamp string, edge da.Index) (float64, error)
}

type RouteCostEvaluator struct {
	connections ConnectionLookup
	durations   DurationLookup
}

func NewRouteCostEvaluator(connections ConnectionLookup, durations DurationLookup) *RouteCostEvaluator {
	return &RouteCostEvaluator{
		connections: connections,
		durations:   durations,
	}
}

// RawRouteDuration sums the predicted durations of the edges between consecutive labels.
// The unit is whatever the duration table uses.
func (e *RouteCostEvaluator) RawRouteDuration(labels []string, timestamp string) (float64, error) {
	if len(labels) == 0 {
		return 0, ErrShortRoute
	}

	total := 0.0
	for i := 0; i+1 < len(labels); i++ {
		edge, err := e.connections.ConnectionIndex(labels[i], labels[i+1])
		if err != nil {
			return 0, fmt.Errorf("leg %d of route: %w", i, err)
		}
		d, err := e.durations.DurationAt(timestamp, edge)
		if err != nil {
			return 0, fmt.Errorf("leg %d of route (%s -> %s): %w", i, labels[i], labels[i+1], err)
		}
		total += d
	}
	return total, nil
}

// RawEdgeDuration sums the predicted durations of topology edges at timestamp. Unlike RawRouteDuration it
// prices the exact edges given, which matters when several edges join the same pair of vertices.
func (e *RouteCostEvaluator) RawEdgeDuration(edges []da.Index, timestamp string) (float64, error) {
	total := 0.0
	for i, edge := range edges {
		d, err := e.durations.DurationAt(timestamp, edge)
		if err != nil {
			return 0, fmt.Errorf("leg %d of route: %w", i, err)
		}
		total += d
	}
	return total, nil
}

// RouteDuration is RawRouteDuration in hours.minutes form, see HoursMinutes.
func (e *RouteCostEvaluator) RouteDuration(labels []string, timestamp string) (float64, error) {
	total, err := e.RawRouteDuration(labels, timestamp)
	if err != nil {
		return 0, err
	}
	return HoursMinutes(total), nil
}

// HoursMinutes turns fractional hours into h.mm: 1.87 hours is 1 hour 52 minutes, returned as 1.52.
func HoursMinutes(total float64) float64 {
	rounded := util.RoundFloat(total, 2)
	hours := math.Trunc(rounded)
	minutes := math.Round((rounded - hours) * 60)
	return util.RoundFloat(hours+minutes/100, 2)
}
