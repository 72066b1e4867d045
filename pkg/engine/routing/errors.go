package routing

import (
	"errors"

	da "github.com/lintang-b-s/tdnavigator/pkg/datastructure"
)

var (
	ErrUnreachableTarget = errors.New("target is not reachable from source")
	ErrInvalidRange      = errors.New("start vertex index out of range")
	ErrUnknownVertex     = da.ErrUnknownVertex
	ErrEmptyQueue        = da.ErrEmptyQueue
)
