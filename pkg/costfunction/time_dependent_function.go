package costfunction

import (
	"fmt"

	da "github.com/lintang-b-s/tdnavigator/pkg/datastructure"
	"github.com/lintang-b-s/tdnavigator/pkg/timetable"
)

// TimeDependentFunction weights an edge by its predicted duration at a timestamp, discounted by historical usage.
type TimeDependentFunction struct {
	topology          *timetable.Topology
	durations         DurationSource
	discountThreshold float64
}

func NewTimeDependentCostFunction(topology *timetable.Topology, durations DurationSource,
	discountThreshold float64) *TimeDependentFunction {
	return &TimeDependentFunction{
		topology:          topology,
		durations:         durations,
		discountThreshold: discountThreshold,
	}
}

func (tf *TimeDependentFunction) Weights(timestamp string, discounts []float64) ([]float64, error) {
	durations, err := tf.durations.DurationsAt(timestamp)
	if err != nil {
		return nil, err
	}
	if len(durations) != tf.topology.NumberOfConnections() {
		return nil, fmt.Errorf("%w: %d durations for %d edges", timetable.ErrMisalignedTable, len(durations),
			tf.topology.NumberOfConnections())
	}
	return DiscountedWeights(durations, discounts, tf.discountThreshold)
}

func (tf *TimeDependentFunction) GetWeightAtTime(edge da.Index, timestamp string, discounts []float64) (float64, error) {
	durations, err := tf.durations.DurationsAt(timestamp)
	if err != nil {
		return 0, err
	}
	if int(edge) >= len(durations) {
		return 0, fmt.Errorf("%w: edge %d, table has %d edges", timetable.ErrMisalignedTable, edge, len(durations))
	}
	if discounts == nil {
		return durations[edge], nil
	}
	if int(edge) >= len(discounts) {
		return 0, fmt.Errorf("%w: edge %d, discounts have %d edges", timetable.ErrMisalignedTable, edge, len(discounts))
	}
	return DiscountedWeight(durations[edge], discounts[edge], tf.discountThreshold), nil
}

// BuildGraph builds the graph of one query. Each call returns a new graph, so concurrent queries never share one.
func (tf *TimeDependentFunction) BuildGraph(timestamp string, discounts []float64) (*da.WeightedGraph[string], error) {
	weights, err := tf.Weights(timestamp, discounts)
	if err != nil {
		return nil, err
	}
	return BuildGraph(tf.topology, weights)
}
