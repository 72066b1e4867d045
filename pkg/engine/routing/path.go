package routing

import (
	"fmt"
	"strings"

	da "github.com/lintang-b-s/tdnavigator/pkg/datastructure"
	"github.com/lintang-b-s/tdnavigator/pkg/util"
)

// ReconstructPath walks the predecessor edges back from target until it reaches source and returns
// the edges in source -> target order. An empty map or source == target gives an empty path.
func ReconstructPath(source, target da.Index, predecessors map[da.Index]da.WeightedEdge) ([]da.WeightedEdge, error) {
	if len(predecessors) == 0 || source == target {
		return []da.WeightedEdge{}, nil
	}

	edgePath := make([]da.WeightedEdge, 0)
	cur := target
	for cur != source {
		e, ok := predecessors[cur]
		// a walk longer than the map means the map has a cycle that never reaches source
		if !ok || len(edgePath) >= len(predecessors) {
			return nil, fmt.Errorf("%w: no predecessor edge for vertex %d on the way from %d to %d",
				ErrUnreachableTarget, cur, source, target)
		}
		edgePath = append(edgePath, e)
		cur = e.GetFrom()
	}

	return util.ReverseG(edgePath), nil
}

func TotalWeight(path []da.WeightedEdge) float64 {
	total := 0.0
	for _, e := range path {
		total += e.GetWeight()
	}
	return total
}

// PathVertices returns the labels visited by path, starting with the origin of the first edge.
func PathVertices[V comparable](graph *da.WeightedGraph[V], path []da.WeightedEdge) []V {
	if len(path) == 0 {
		return []V{}
	}
	vertices := graph.GetVertices()
	labels := make([]V, 0, len(path)+1)
	labels = append(labels, vertices[path[0].GetFrom()])
	for _, e := range path {
		labels = append(labels, vertices[e.GetTo()])
	}
	return labels
}

// FormatPath renders one "u weight> v" line per edge followed by the total weight.
func FormatPath[V comparable](graph *da.WeightedGraph[V], path []da.WeightedEdge) string {
	var sb strings.Builder
	vertices := graph.GetVertices()
	for _, e := range path {
		fmt.Fprintf(&sb, "%v %g> %v\n", vertices[e.GetFrom()], e.GetWeight(), vertices[e.GetTo()])
	}
	fmt.Fprintf(&sb, "Total Weight: %g\n", TotalWeight(path))
	return sb.String()
}
