package datastructure

import (
	"github.com/lintang-b-s/tdnavigator/pkg/util"
)

// StronglyConnectedComponents runs Kosaraju's algorithm and returns the component id of every vertex
// plus the number of components. Component ids follow the order the second pass discovers them.
func (g *WeightedGraph[V]) StronglyConnectedComponents() ([]Index, int) {
	n := Index(g.NumberOfVertices())

	reversedAdj := make([][]Index, n)
	for u := Index(0); u < n; u++ {
		g.ForOutEdgesOf(u, func(e WeightedEdge) {
			reversedAdj[e.GetTo()] = append(reversedAdj[e.GetTo()], u)
		})
	}

	order := make([]Index, 0, n)
	visited := make([]bool, n)
	for v := Index(0); v < n; v++ {
		if !visited[v] {
			g.dfs(v, &order, visited)
		}
	}

	order = util.ReverseG[Index](order)

	// reset visited
	visited = make([]bool, n)
	sccs := make([]Index, n)
	numComponents := 0

	for _, v := range order {
		if visited[v] {
			continue
		}
		component := make([]Index, 0, 10)
		dfsReversed(v, reversedAdj, &component, visited)
		for _, node := range component {
			sccs[node] = Index(numComponents)
		}
		numComponents++
	}

	return sccs, numComponents
}

// dfs appends v to output after all vertices reachable from it (post-order).
func (g *WeightedGraph[V]) dfs(v Index, output *[]Index, visited []bool) {
	visited[v] = true
	g.ForOutEdgesOf(v, func(e WeightedEdge) {
		if !visited[e.GetTo()] {
			g.dfs(e.GetTo(), output, visited)
		}
	})
	*output = append(*output, v)
}

func dfsReversed(v Index, reversedAdj [][]Index, output *[]Index, visited []bool) {
	visited[v] = true
	for _, u := range reversedAdj[v] {
		if !visited[u] {
			dfsReversed(u, reversedAdj, output, visited)
		}
	}
	*output = append(*output, v)
}
