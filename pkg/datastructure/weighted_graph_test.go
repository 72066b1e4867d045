package datastructure

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGraph(t *testing.T) *WeightedGraph[string] {
	t.Helper()
	g, err := NewWeightedGraph([]string{"A", "B", "C", "D"})
	require.NoError(t, err)
	require.NoError(t, g.AddEdgeByVertices("A", "B", 1.0))
	require.NoError(t, g.AddEdgeByVertices("B", "D", 1.0))
	require.NoError(t, g.AddEdgeByVertices("A", "C", 0.5))
	require.NoError(t, g.AddEdgeByVertices("C", "D", 0.4))
	return g
}

func TestWeightedGraphLookups(t *testing.T) {
	g := newTestGraph(t)

	assert.Equal(t, 4, g.NumberOfVertices())
	assert.Equal(t, 4, g.NumberOfEdges())

	idx, err := g.IndexOf("C")
	require.NoError(t, err)
	assert.Equal(t, Index(2), idx)

	label, err := g.VertexAt(3)
	require.NoError(t, err)
	assert.Equal(t, "D", label)

	_, err = g.IndexOf("Z")
	assert.ErrorIs(t, err, ErrUnknownVertex)

	_, err = g.VertexAt(4)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	assert.True(t, g.HasVertex("A"))
	assert.False(t, g.HasVertex("a"))
}

func TestWeightedGraphEdgesKeepInsertionOrder(t *testing.T) {
	g := newTestGraph(t)

	edges := g.EdgesForIndex(0)
	require.Len(t, edges, 2)
	assert.Equal(t, NewWeightedEdge(0, 1, 1.0), edges[0])
	assert.Equal(t, NewWeightedEdge(0, 2, 0.5), edges[1])

	for u := Index(0); u < Index(g.NumberOfVertices()); u++ {
		for _, e := range g.EdgesForIndex(u) {
			assert.Equal(t, u, e.GetFrom())
			assert.Less(t, int(e.GetTo()), g.NumberOfVertices())
		}
	}

	assert.Empty(t, g.EdgesForIndex(3))
	assert.Nil(t, g.EdgesForIndex(10))

	neighbors := g.NeighborsForIndexWithWeights(0)
	assert.Equal(t, []Neighbor[string]{{Vertex: "B", Weight: 1.0}, {Vertex: "C", Weight: 0.5}}, neighbors)
	assert.Contains(t, g.String(), "A -> ")
}

func TestWeightedGraphRejectsInvalidEdges(t *testing.T) {
	testCases := []struct {
		name    string
		u, v    Index
		weight  float64
		wantErr error
	}{
		{name: "negative weight", u: 0, v: 1, weight: -1, wantErr: ErrInvalidWeight},
		{name: "NaN weight", u: 0, v: 1, weight: math.NaN(), wantErr: ErrInvalidWeight},
		{name: "infinite weight", u: 0, v: 1, weight: math.Inf(1), wantErr: ErrInvalidWeight},
		{name: "origin out of range", u: 9, v: 1, weight: 1, wantErr: ErrIndexOutOfRange},
		{name: "destination out of range", u: 0, v: 9, weight: 1, wantErr: ErrIndexOutOfRange},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGraph(t)
			err := g.AddEdgeByIndices(tt.u, tt.v, tt.weight)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 4, g.NumberOfEdges())
		})
	}

	g := newTestGraph(t)
	assert.ErrorIs(t, g.AddEdgeByVertices("A", "Z", 1), ErrUnknownVertex)
	assert.NoError(t, g.AddEdgeByIndices(3, 3, 0), "zero weight self loops are allowed")
}

func TestWeightedGraphRejectsDuplicateLabels(t *testing.T) {
	_, err := NewWeightedGraph([]string{"1", "2", "1"})
	assert.ErrorIs(t, err, ErrDuplicateVertex)
}

func TestWeightedEdgeAccessors(t *testing.T) {
	e := NewWeightedEdge(2, 5, 1.25)
	assert.Equal(t, Index(2), e.GetFrom())
	assert.Equal(t, Index(5), e.GetTo())
	assert.Equal(t, 1.25, e.GetWeight())
	assert.Equal(t, NewWeightedEdge(5, 2, 1.25), e.Reversed())
	assert.Equal(t, "2 -> 5 (1.25)", e.String())
}
