package tui

import (
	"testing"

	"github.com/dshills/sortviz/pkg/domain/types"
	"github.com/dshills/sortviz/pkg/sorting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayer_Navigation(t *testing.T) {
	tr, err := sorting.Run(string(types.InsertionSort), []int{3, 1, 2})
	require.NoError(t, err)
	p := NewPlayer(tr)

	assert.Equal(t, 0, p.Position())
	assert.Equal(t, tr.First().Explanation, p.Current().Explanation)
	assert.False(t, p.Prev(), "cannot move before the first step")

	assert.True(t, p.Next())
	assert.Equal(t, 1, p.Position())
	assert.True(t, p.Prev())
	assert.Equal(t, 0, p.Position())

	p.Last()
	assert.True(t, p.Done())
	assert.Equal(t, tr.Len()-1, p.Position())
	assert.Equal(t, []int{1, 2, 3}, p.Current().Snapshot)
	assert.False(t, p.Next(), "cannot move past the completion step")

	p.First()
	assert.Equal(t, 0, p.Position())
	assert.False(t, p.Done())
}

func TestPlayer_WalksEveryStep(t *testing.T) {
	tr, err := sorting.Run(string(types.MergeSort), []int{4, 3, 2, 1})
	require.NoError(t, err)
	p := NewPlayer(tr)

	visited := 1
	for p.Next() {
		visited++
	}
	assert.Equal(t, tr.Len(), visited)
	assert.Equal(t, tr.Len(), p.Len())
}
