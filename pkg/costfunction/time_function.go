package costfunction

import (
	da "github.com/lintang-b-s/tdnavigator/pkg/datastructure"
	"github.com/lintang-b-s/tdnavigator/pkg/timetable"
)

// TimeFunction weights edges by predicted duration alone, ignoring historical usage.
type TimeFunction struct {
	topology  *timetable.Topology
	durations DurationSource
}

func NewTimeCostFunction(topology *timetable.Topology, durations DurationSource) *TimeFunction {
	return &TimeFunction{topology: topology, durations: durations}
}

func (tf *TimeFunction) Weights(timestamp string, _ []float64) ([]float64, error) {
	durations, err := tf.durations.DurationsAt(timestamp)
	if err != nil {
		return nil, err
	}
	return DiscountedWeights(durations, nil, 0)
}

func (tf *TimeFunction) BuildGraph(timestamp string) (*da.WeightedGraph[string], error) {
	weights, err := tf.Weights(timestamp, nil)
	if err != nil {
		return nil, err
	}
	return BuildGraph(tf.topology, weights)
}
