package routing

import (
	"math"

	da "github.com/lintang-b-s/tdnavigator/pkg/datastructure"
)

// RelaxObserver is called each time a vertex gets a better distance label.
// previous is +Inf when v had no label yet.
type RelaxObserver func(v da.Index, previous, next float64)

// Dijkstra single-source shortest paths over non-negative weights (the graph rejects negative ones).
// One Dijkstra value serves one graph; it is not safe for concurrent use.
type Dijkstra[V comparable] struct {
	graph *da.WeightedGraph[V]

	distances    []float64
	predecessors map[da.Index]da.WeightedEdge

	pq *da.MinHeap[da.Index]

	onRelax         RelaxObserver
	numSettledNodes int
}

func NewDijkstra[V comparable](graph *da.WeightedGraph[V]) *Dijkstra[V] {
	return &Dijkstra[V]{
		graph: graph,
		pq:    da.NewFourAryHeap[da.Index](),
	}
}

func (us *Dijkstra[V]) SetRelaxObserver(observer RelaxObserver) {
	us.onRelax = observer
}

// ShortestPaths from root to every vertex reachable from it.
func (us *Dijkstra[V]) ShortestPaths(root V) (*ShortestPathTree[V], error) {
	first, err := us.graph.IndexOf(root)
	if err != nil {
		return nil, err
	}
	return us.ShortestPathsFromIndex(first)
}

func (us *Dijkstra[V]) ShortestPathsFromIndex(first da.Index) (*ShortestPathTree[V], error) {
	if int(first) >= us.graph.NumberOfVertices() {
		return nil, da.ErrIndexOutOfRange
	}

	us.Preallocate()

	us.distances[first] = 0
	us.pq.Insert(da.NewPriorityQueueNode(0, first))

	for !us.pq.IsEmpty() {
		if err := us.graphSearchUni(); err != nil {
			return nil, err
		}
	}

	return newShortestPathTree(us.graph, first, us.distances, us.predecessors), nil
}

func (us *Dijkstra[V]) graphSearchUni() error {
	queryKey, err := us.pq.ExtractMin()
	if err != nil {
		return err
	}
	uId := queryKey.GetItem()

	// the recorded label is authoritative; a larger rank means uId was pushed again with a better distance
	distU := us.distances[uId]
	if queryKey.GetRank() > distU {
		return nil
	}
	us.numSettledNodes++

	us.graph.ForOutEdgesOf(uId, func(e da.WeightedEdge) {
		vId := e.GetTo()
		newDist := distU + e.GetWeight()

		oldDist := us.distances[vId]
		if !math.IsInf(oldDist, 1) && newDist >= oldDist {
			// newDist is not better, do nothing
			return
		}

		us.distances[vId] = newDist
		us.predecessors[vId] = e
		if us.onRelax != nil {
			us.onRelax(vId, oldDist, newDist)
		}
		us.pq.Insert(da.NewPriorityQueueNode(newDist, vId))
	})
	return nil
}

func (us *Dijkstra[V]) Preallocate() {
	n := us.graph.NumberOfVertices()
	us.distances = make([]float64, n)
	for i := range us.distances {
		us.distances[i] = math.Inf(1)
	}
	us.predecessors = make(map[da.Index]da.WeightedEdge)
	us.pq.Clear()
	us.pq.Preallocate(us.graph.NumberOfEdges() + 1)
	us.numSettledNodes = 0
}

func (us *Dijkstra[V]) GetNumSettledNodes() int {
	return us.numSettledNodes
}
