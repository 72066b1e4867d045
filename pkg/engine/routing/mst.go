package routing

import (
	da "github.com/lintang-b-s/tdnavigator/pkg/datastructure"
)

// MinimumSpanningTree grows a tree from start with lazy Prim: every edge leaving a visited vertex goes
// into the heap, and edges whose head was visited meanwhile are skipped when popped.
// Only the vertices reachable from start are covered; a partial result is not an error.
func MinimumSpanningTree[V comparable](graph *da.WeightedGraph[V], start da.Index) ([]da.WeightedEdge, error) {
	n := graph.NumberOfVertices()
	if int(start) >= n {
		return nil, ErrInvalidRange
	}

	result := make([]da.WeightedEdge, 0)
	pq := da.NewBinaryHeap[da.WeightedEdge]()
	visited := make([]bool, n)

	visit := func(index da.Index) {
		visited[index] = true
		graph.ForOutEdgesOf(index, func(e da.WeightedEdge) {
			if !visited[e.GetTo()] {
				pq.Insert(da.NewPriorityQueueNode(e.GetWeight(), e))
			}
		})
	}

	visit(start)

	for !pq.IsEmpty() {
		node, err := pq.ExtractMin()
		if err != nil {
			return nil, err
		}
		edge := node.GetItem()
		if visited[edge.GetTo()] {
			continue
		}
		result = append(result, edge)
		visit(edge.GetTo())
	}

	return result, nil
}
