package datastructure

import "errors"

var (
	ErrUnknownVertex   = errors.New("vertex label not found in graph")
	ErrDuplicateVertex = errors.New("vertex label appears more than once")
	ErrIndexOutOfRange = errors.New("vertex index out of range")
	// negative, NaN or infinite weights would break the shortest path search
	ErrInvalidWeight = errors.New("edge weight must be finite and non-negative")
	ErrEmptyQueue    = errors.New("heap is empty")
)
