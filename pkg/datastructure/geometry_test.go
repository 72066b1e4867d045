package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToleranceComparisons(t *testing.T) {
	third := 1.0 / 3.0

	assert.True(t, Ge(third*3, 1.0))
	assert.True(t, Le(1.0, third*3))
	assert.True(t, Ge(0.3, 0.1+0.2), "float noise below EPS is ignored")
	assert.False(t, Lt(0.1+0.2, 0.3))
	assert.True(t, Lt(0.39, 0.40))
	assert.False(t, Ge(0.39, 0.40))
}
