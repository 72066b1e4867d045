package routing

import (
	"math"

	da "github.com/lintang-b-s/tdnavigator/pkg/datastructure"
)

// ShortestPathTree is the result of one Dijkstra run: a distance label per vertex and the edge that
// reached each labelled non-root vertex.
type ShortestPathTree[V comparable] struct {
	graph        *da.WeightedGraph[V]
	root         da.Index
	distances    []float64
	predecessors map[da.Index]da.WeightedEdge
}

func newShortestPathTree[V comparable](graph *da.WeightedGraph[V], root da.Index, distances []float64,
	predecessors map[da.Index]da.WeightedEdge) *ShortestPathTree[V] {
	return &ShortestPathTree[V]{
		graph:        graph,
		root:         root,
		distances:    distances,
		predecessors: predecessors,
	}
}

func (t *ShortestPathTree[V]) GetRoot() da.Index {
	return t.root
}

// Distance returns false for vertices the root cannot reach.
func (t *ShortestPathTree[V]) Distance(v da.Index) (float64, bool) {
	if int(v) >= len(t.distances) || math.IsInf(t.distances[v], 1) {
		return 0, false
	}
	return t.distances[v], true
}

func (t *ShortestPathTree[V]) DistanceTo(label V) (float64, bool, error) {
	v, err := t.graph.IndexOf(label)
	if err != nil {
		return 0, false, err
	}
	d, ok := t.Distance(v)
	return d, ok, nil
}

// Distances is indexed by vertex index; unreachable vertices hold +Inf.
func (t *ShortestPathTree[V]) Distances() []float64 {
	return t.distances
}

// DistancesByLabel maps every reachable vertex label to its distance. Unreachable labels are absent.
func (t *ShortestPathTree[V]) DistancesByLabel() map[V]float64 {
	out := make(map[V]float64, len(t.distances))
	for i, d := range t.distances {
		if math.IsInf(d, 1) {
			continue
		}
		out[t.graph.GetVertices()[i]] = d
	}
	return out
}

func (t *ShortestPathTree[V]) Predecessors() map[da.Index]da.WeightedEdge {
	return t.predecessors
}

// PathTo returns the edges root -> target. An unreachable target is an error, never an empty path.
func (t *ShortestPathTree[V]) PathTo(target V) ([]da.WeightedEdge, error) {
	v, err := t.graph.IndexOf(target)
	if err != nil {
		return nil, err
	}
	if _, ok := t.Distance(v); !ok {
		return nil, ErrUnreachableTarget
	}
	return ReconstructPath(t.root, v, t.predecessors)
}
