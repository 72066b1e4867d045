package routing

import (
	"math"
	"math/rand"
	"strconv"
	"testing"

	da "github.com/lintang-b-s/tdnavigator/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pairEdge struct {
	from, to string
	weight   float64
}

func buildGraph(t *testing.T, vertices []string, edges []pairEdge) *da.WeightedGraph[string] {
	t.Helper()
	g, err := da.NewWeightedGraph(vertices)
	require.NoError(t, err)
	for _, e := range edges {
		require.NoError(t, g.AddEdgeByVertices(e.from, e.to, e.weight))
	}
	return g
}

// A -> B -> D costs 2.0, A -> C -> D costs 0.9
func exampleGraph(t *testing.T) *da.WeightedGraph[string] {
	return buildGraph(t, []string{"A", "B", "C", "D"}, []pairEdge{
		{"A", "B", 1.0},
		{"B", "D", 1.0},
		{"A", "C", 0.5},
		{"C", "D", 0.4},
	})
}

func randomGraph(t *testing.T, rng *rand.Rand, n int, density float64) *da.WeightedGraph[string] {
	t.Helper()
	vertices := make([]string, n)
	for i := range vertices {
		vertices[i] = strconv.Itoa(i)
	}
	g, err := da.NewWeightedGraph(vertices)
	require.NoError(t, err)
	for u := 0; u < n; u++ {
		for v := 0; v < n; v++ {
			if u == v || rng.Float64() > density {
				continue
			}
			w := math.Round(rng.Float64()*100) / 10
			require.NoError(t, g.AddEdgeByIndices(da.Index(u), da.Index(v), w))
		}
	}
	return g
}

// bruteForceDistances enumerates every simple path from root.
func bruteForceDistances(g *da.WeightedGraph[string], root da.Index) []float64 {
	n := g.NumberOfVertices()
	best := make([]float64, n)
	for i := range best {
		best[i] = math.Inf(1)
	}
	onPath := make([]bool, n)

	var dfs func(u da.Index, dist float64)
	dfs = func(u da.Index, dist float64) {
		if dist < best[u] {
			best[u] = dist
		}
		onPath[u] = true
		for _, e := range g.EdgesForIndex(u) {
			if !onPath[e.GetTo()] {
				dfs(e.GetTo(), dist+e.GetWeight())
			}
		}
		onPath[u] = false
	}
	dfs(root, 0)
	return best
}

func TestShortestPathExample(t *testing.T) {
	g := exampleGraph(t)

	spt, err := NewDijkstra(g).ShortestPaths("A")
	require.NoError(t, err)
	assert.Equal(t, da.Index(0), spt.GetRoot())

	path, err := spt.PathTo("D")
	require.NoError(t, err)
	require.Len(t, path, 2)
	assert.Equal(t, da.NewWeightedEdge(0, 2, 0.5), path[0])
	assert.Equal(t, da.NewWeightedEdge(2, 3, 0.4), path[1])
	assert.Equal(t, []string{"A", "C", "D"}, PathVertices(g, path))

	d, ok, err := spt.DistanceTo("D")
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 0.9, d, 1e-12)
	assert.InDelta(t, 0.9, TotalWeight(path), 1e-12)

	assert.Equal(t, map[string]float64{"A": 0, "B": 1.0, "C": 0.5, "D": d}, spt.DistancesByLabel())
}

func TestShortestPathUnreachable(t *testing.T) {
	g := exampleGraph(t)

	spt, err := NewDijkstra(g).ShortestPaths("D")
	require.NoError(t, err)

	for _, label := range []string{"A", "B", "C"} {
		_, ok, err := spt.DistanceTo(label)
		require.NoError(t, err)
		assert.False(t, ok, label)
	}
	assert.True(t, math.IsInf(spt.Distances()[0], 1))
	assert.Empty(t, spt.Predecessors())

	_, err = spt.PathTo("A")
	assert.ErrorIs(t, err, ErrUnreachableTarget)

	_, err = ComputeRouteOnGraph(g, "D", "A")
	assert.ErrorIs(t, err, ErrUnreachableTarget)
}

func TestShortestPathUnknownRoot(t *testing.T) {
	g := exampleGraph(t)

	_, err := NewDijkstra(g).ShortestPaths("Z")
	assert.ErrorIs(t, err, ErrUnknownVertex)

	_, err = NewDijkstra(g).ShortestPathsFromIndex(10)
	assert.ErrorIs(t, err, da.ErrIndexOutOfRange)

	_, err = ComputeRouteOnGraph(g, "A", "Z")
	assert.ErrorIs(t, err, ErrUnknownVertex)
}

func TestShortestPathMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 60; iter++ {
		n := 2 + rng.Intn(9)
		g := randomGraph(t, rng, n, 0.35)
		root := da.Index(rng.Intn(n))

		spt, err := NewDijkstra(g).ShortestPathsFromIndex(root)
		require.NoError(t, err)
		want := bruteForceDistances(g, root)

		for v := da.Index(0); v < da.Index(n); v++ {
			got, ok := spt.Distance(v)
			if math.IsInf(want[v], 1) {
				assert.False(t, ok, "iteration %d vertex %d should be unreachable", iter, v)
				continue
			}
			require.True(t, ok, "iteration %d vertex %d should be reachable", iter, v)
			assert.InDelta(t, want[v], got, 1e-9, "iteration %d vertex %d", iter, v)

			// the reconstructed path sums to the distance label
			path, err := ReconstructPath(root, v, spt.Predecessors())
			require.NoError(t, err)
			assert.InDelta(t, got, TotalWeight(path), 1e-9)
			if len(path) > 0 {
				assert.Equal(t, root, path[0].GetFrom())
				assert.Equal(t, v, path[len(path)-1].GetTo())
			}
		}
	}
}

func TestShortestPathRelaxationIsMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for iter := 0; iter < 20; iter++ {
		g := randomGraph(t, rng, 10, 0.5)

		relaxations := 0
		dij := NewDijkstra(g)
		dij.SetRelaxObserver(func(v da.Index, previous, next float64) {
			relaxations++
			assert.Less(t, next, previous, "distance label of %d increased", v)
		})

		spt, err := dij.ShortestPathsFromIndex(0)
		require.NoError(t, err)
		assert.LessOrEqual(t, dij.GetNumSettledNodes(), g.NumberOfVertices())
		// every labelled vertex except the root was relaxed at least once
		assert.GreaterOrEqual(t, relaxations, len(spt.DistancesByLabel())-1)
	}
}

func TestShortestPathIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	g := randomGraph(t, rng, 10, 0.4)

	dij := NewDijkstra(g)
	first, err := dij.ShortestPathsFromIndex(0)
	require.NoError(t, err)
	second, err := dij.ShortestPathsFromIndex(0)
	require.NoError(t, err)
	third, err := NewDijkstra(g).ShortestPathsFromIndex(0)
	require.NoError(t, err)

	assert.Equal(t, first.Distances(), second.Distances())
	assert.Equal(t, first.Predecessors(), second.Predecessors())
	assert.Equal(t, first.Distances(), third.Distances())
	assert.Equal(t, first.Predecessors(), third.Predecessors())
}

// equal cost paths: the edge inserted first into the adjacency list wins
func TestShortestPathTieBreakFollowsInsertionOrder(t *testing.T) {
	g := buildGraph(t, []string{"S", "X", "Y", "T"}, []pairEdge{
		{"S", "X", 1},
		{"S", "Y", 1},
		{"X", "T", 1},
		{"Y", "T", 1},
	})

	route, err := ComputeRouteOnGraph(g, "S", "T")
	require.NoError(t, err)
	assert.Equal(t, []string{"S", "X", "T"}, route.Vertices)
	assert.Equal(t, 2.0, route.Cost)
}

func TestShortestPathStaleEntriesAreSkipped(t *testing.T) {
	// C is first labelled 10 through A -> C, then improved to 2 through B
	g := buildGraph(t, []string{"A", "B", "C", "D"}, []pairEdge{
		{"A", "C", 10},
		{"A", "B", 1},
		{"B", "C", 1},
		{"C", "D", 1},
	})

	dij := NewDijkstra(g)
	spt, err := dij.ShortestPaths("A")
	require.NoError(t, err)

	d, ok, err := spt.DistanceTo("D")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3.0, d)
	assert.Equal(t, 4, dij.GetNumSettledNodes())
}

// weights as large as the heap's sentinel rank are ordinary distances
func TestShortestPathHugeWeights(t *testing.T) {
	g := buildGraph(t, []string{"A", "B", "C"}, []pairEdge{
		{"A", "B", 1e15},
		{"A", "C", 5e14},
		{"C", "B", 5e14 + 1e3},
	})

	relaxations := map[string]int{}
	dij := NewDijkstra(g)
	dij.SetRelaxObserver(func(v da.Index, previous, next float64) {
		label, err := g.VertexAt(v)
		require.NoError(t, err)
		relaxations[label]++
		assert.Less(t, next, previous)
	})

	spt, err := dij.ShortestPaths("A")
	require.NoError(t, err)

	d, ok, err := spt.DistanceTo("B")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1e15, d)
	assert.Equal(t, 1, relaxations["B"])

	path, err := spt.PathTo("B")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, PathVertices(g, path))

	lone := buildGraph(t, []string{"X", "Y"}, []pairEdge{{"X", "Y", 1e15}})
	route, err := ComputeRouteOnGraph(lone, "X", "Y")
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y"}, route.Vertices)
	assert.Equal(t, 1e15, route.Cost)
}

func TestComputeRouteSameSourceAndTarget(t *testing.T) {
	g := exampleGraph(t)
	route, err := ComputeRouteOnGraph(g, "B", "B")
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, route.Vertices)
	assert.Empty(t, route.Edges)
	assert.Equal(t, 0.0, route.Cost)
}
