package datastructure

import (
	"math"

	"golang.org/x/exp/constraints"
)

const (
	EPS = 1e-6
)

// less than operator
func Lt[T constraints.Float](a, b T) bool {
	return a+EPS < b
}

// greater than or equal than operator
func Ge[T constraints.Float](a, b T) bool {
	return Le(b, a)
}

// less than or equal operator
func Le[T constraints.Float](a, b T) bool {
	return a <= b+EPS
}

func isFiniteNonNegative(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0) && w >= 0
}
