package datastructure

import "fmt"

type Index uint32

const (
	INVALID_VERTEX_ID Index = ^Index(0)
)

// WeightedEdge is a directed edge u -> v. It has no setters: an edge never changes after the graph stores it.
type WeightedEdge struct {
	u      Index
	v      Index
	weight float64
}

func NewWeightedEdge(u, v Index, weight float64) WeightedEdge {
	return WeightedEdge{u: u, v: v, weight: weight}
}

func (e WeightedEdge) GetFrom() Index {
	return e.u
}

func (e WeightedEdge) GetTo() Index {
	return e.v
}

func (e WeightedEdge) GetWeight() float64 {
	return e.weight
}

// Reversed returns the edge v -> u with the same weight.
func (e WeightedEdge) Reversed() WeightedEdge {
	return WeightedEdge{u: e.v, v: e.u, weight: e.weight}
}

func (e WeightedEdge) String() string {
	return fmt.Sprintf("%d -> %d (%g)", e.u, e.v, e.weight)
}
