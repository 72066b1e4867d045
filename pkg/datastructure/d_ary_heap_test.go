package datastructure

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinHeapExtractOrder(t *testing.T) {
	testCases := []struct {
		name  string
		d     int
		ranks []float64
	}{
		{
			name:  "binary heap",
			d:     2,
			ranks: []float64{5, 3, 9, 1, 4, 1.5, 8, 0},
		},
		{
			name:  "four-ary heap",
			d:     4,
			ranks: []float64{10, 2, 7, 3, 3.5, 6, 0.25, 11, 1, 9},
		},
		{
			name:  "single element",
			d:     2,
			ranks: []float64{42},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			h := NewdAryHeap[int](tt.d)
			for i, r := range tt.ranks {
				h.Insert(NewPriorityQueueNode(r, i))
			}
			require.Equal(t, len(tt.ranks), h.Size())

			want := append([]float64(nil), tt.ranks...)
			sort.Float64s(want)

			got := make([]float64, 0, len(want))
			for !h.IsEmpty() {
				node, err := h.ExtractMin()
				require.NoError(t, err)
				got = append(got, node.GetRank())
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestMinHeapRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	h := NewFourAryHeap[int]()
	want := make([]float64, 0, 500)
	for i := 0; i < 500; i++ {
		r := float64(rng.Intn(100))
		want = append(want, r)
		h.Insert(NewPriorityQueueNode(r, i))
	}
	sort.Float64s(want)

	for i := range want {
		node, err := h.ExtractMin()
		require.NoError(t, err)
		require.Equal(t, want[i], node.GetRank())
	}
	assert.True(t, h.IsEmpty())
}

func TestMinHeapTiesAreFIFO(t *testing.T) {
	h := NewBinaryHeap[string]()
	for _, item := range []string{"a", "b", "c", "d", "e"} {
		h.Insert(NewPriorityQueueNode(1.0, item))
	}
	h.Insert(NewPriorityQueueNode(0.5, "first"))

	got := []string{}
	for !h.IsEmpty() {
		node, err := h.ExtractMin()
		require.NoError(t, err)
		got = append(got, node.GetItem())
	}
	assert.Equal(t, []string{"first", "a", "b", "c", "d", "e"}, got)
}

func TestMinHeapEmpty(t *testing.T) {
	h := NewBinaryHeap[int]()
	assert.True(t, h.IsEmpty())

	_, err := h.ExtractMin()
	assert.True(t, errors.Is(err, ErrEmptyQueue))

	_, err = h.GetMin()
	assert.ErrorIs(t, err, ErrEmptyQueue)

	h.Insert(NewPriorityQueueNode(2.0, 1))
	min, err := h.GetMin()
	require.NoError(t, err)
	assert.Equal(t, 2.0, min.GetRank())
	assert.Equal(t, 2.0, h.GetMinRank())

	h.Clear()
	assert.True(t, h.IsEmpty())
}
