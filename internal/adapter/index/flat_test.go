package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/port"
)

func TestFlat_InsertDimensionCheck(t *testing.T) {
	f := NewFlat("local/hash-v1", 3)

	err := f.Insert([]port.VectorEntry{{Seq: 0, Vector: []float32{1, 0}}})
	assert.Error(t, err)
	assert.Zero(t, f.Len())

	err = f.Insert([]port.VectorEntry{{Seq: 0, Vector: []float32{1, 0, 0}}})
	require.NoError(t, err)
	assert.Equal(t, 1, f.Len())
}

func TestFlat_SearchRanking(t *testing.T) {
	f := NewFlat("local/hash-v1", 2)
	require.NoError(t, f.Insert([]port.VectorEntry{
		{Seq: 0, Vector: []float32{1, 0}},
		{Seq: 1, Vector: []float32{0, 1}},
		{Seq: 2, Vector: []float32{0.6, 0.8}},
	}))

	hits, err := f.Search([]float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, 0, hits[0].Seq)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-6)
	assert.Equal(t, 2, hits[1].Seq)
	assert.InDelta(t, 0.6, hits[1].Score, 1e-6)
}

func TestFlat_SearchTieBreak(t *testing.T) {
	f := NewFlat("local/hash-v1", 2)
	require.NoError(t, f.Insert([]port.VectorEntry{
		{Seq: 3, Vector: []float32{1, 0}},
		{Seq: 1, Vector: []float32{1, 0}},
		{Seq: 2, Vector: []float32{1, 0}},
	}))

	hits, err := f.Search([]float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{hits[0].Seq, hits[1].Seq, hits[2].Seq})
}

func TestFlat_SearchKLargerThanIndex(t *testing.T) {
	f := NewFlat("local/hash-v1", 2)
	require.NoError(t, f.Insert([]port.VectorEntry{{Seq: 0, Vector: []float32{1, 0}}}))

	hits, err := f.Search([]float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestFlat_SearchEmptyAndInvalid(t *testing.T) {
	f := NewFlat("local/hash-v1", 2)

	hits, err := f.Search([]float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)

	_, err = f.Search([]float32{1, 0, 0}, 5)
	assert.Error(t, err)

	require.NoError(t, f.Insert([]port.VectorEntry{{Seq: 0, Vector: []float32{1, 0}}}))
	hits, err = f.Search([]float32{1, 0}, 0)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
