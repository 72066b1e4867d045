package datastructure

import (
	"fmt"
	"strings"
)

// WeightedGraph is an index based adjacency list graph over a fixed set of vertex labels.
// The graph owns the label <-> index bijection. Out edges of a vertex are kept in insertion order,
// which is the order the shortest path search relaxes them in.
type WeightedGraph[V comparable] struct {
	vertices []V
	indexOf  map[V]Index
	edges    [][]WeightedEdge
	numEdges int
}

func NewWeightedGraph[V comparable](vertices []V) (*WeightedGraph[V], error) {
	g := &WeightedGraph[V]{
		vertices: make([]V, len(vertices)),
		indexOf:  make(map[V]Index, len(vertices)),
		edges:    make([][]WeightedEdge, len(vertices)),
	}
	copy(g.vertices, vertices)

	for i, label := range vertices {
		if _, ok := g.indexOf[label]; ok {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateVertex, label)
		}
		g.indexOf[label] = Index(i)
	}
	return g, nil
}

func (g *WeightedGraph[V]) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *WeightedGraph[V]) NumberOfEdges() int {
	return g.numEdges
}

func (g *WeightedGraph[V]) GetVertices() []V {
	return g.vertices
}

func (g *WeightedGraph[V]) IndexOf(label V) (Index, error) {
	idx, ok := g.indexOf[label]
	if !ok {
		return INVALID_VERTEX_ID, fmt.Errorf("%w: %v", ErrUnknownVertex, label)
	}
	return idx, nil
}

func (g *WeightedGraph[V]) HasVertex(label V) bool {
	_, ok := g.indexOf[label]
	return ok
}

func (g *WeightedGraph[V]) VertexAt(index Index) (V, error) {
	if !g.inRange(index) {
		var zero V
		return zero, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(g.vertices))
	}
	return g.vertices[index], nil
}

func (g *WeightedGraph[V]) inRange(index Index) bool {
	return int(index) < len(g.vertices)
}

func (g *WeightedGraph[V]) AddEdgeByIndices(u, v Index, weight float64) error {
	if !g.inRange(u) || !g.inRange(v) {
		return fmt.Errorf("%w: edge %d -> %d, number of vertices %d", ErrIndexOutOfRange, u, v, len(g.vertices))
	}
	if !isFiniteNonNegative(weight) {
		return fmt.Errorf("%w: edge %d -> %d has weight %v", ErrInvalidWeight, u, v, weight)
	}

	g.edges[u] = append(g.edges[u], NewWeightedEdge(u, v, weight))
	g.numEdges++
	return nil
}

func (g *WeightedGraph[V]) AddEdgeByVertices(first, second V, weight float64) error {
	u, err := g.IndexOf(first)
	if err != nil {
		return err
	}
	v, err := g.IndexOf(second)
	if err != nil {
		return err
	}
	return g.AddEdgeByIndices(u, v, weight)
}

// EdgesForIndex returns the out edges of u in insertion order. The slice must not be modified.
func (g *WeightedGraph[V]) EdgesForIndex(u Index) []WeightedEdge {
	if !g.inRange(u) {
		return nil
	}
	return g.edges[u]
}

func (g *WeightedGraph[V]) ForOutEdgesOf(u Index, handle func(e WeightedEdge)) {
	for _, e := range g.EdgesForIndex(u) {
		handle(e)
	}
}

type Neighbor[V comparable] struct {
	Vertex V
	Weight float64
}

func (g *WeightedGraph[V]) NeighborsForIndexWithWeights(u Index) []Neighbor[V] {
	out := g.EdgesForIndex(u)
	neighbors := make([]Neighbor[V], 0, len(out))
	for _, e := range out {
		neighbors = append(neighbors, Neighbor[V]{Vertex: g.vertices[e.v], Weight: e.weight})
	}
	return neighbors
}

func (g *WeightedGraph[V]) String() string {
	var sb strings.Builder
	for i := range g.vertices {
		fmt.Fprintf(&sb, "%v -> %v\n", g.vertices[i], g.NeighborsForIndexWithWeights(Index(i)))
	}
	return sb.String()
}
