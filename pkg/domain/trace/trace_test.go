package trace

import (
	"testing"

	"github.com/dshills/sortviz/pkg/domain/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange(t *testing.T) {
	assert.Equal(t, []int{2, 3, 4}, Range(2, 5))
	assert.Equal(t, []int{}, Range(3, 3))
	assert.Equal(t, []int{}, Range(5, 1))
	assert.NotNil(t, Range(0, 0))
}

func TestHighlight_RolePrecedence(t *testing.T) {
	h := NewHighlight().
		WithComparing(0, 1, 2, 3).
		WithSwapping(1, 2, 3).
		WithSorted(2, 3).
		WithPivot(3)

	assert.Equal(t, RoleComparing, h.RoleOf(0))
	assert.Equal(t, RoleSwapping, h.RoleOf(1))
	assert.Equal(t, RoleSorted, h.RoleOf(2))
	assert.Equal(t, RolePivot, h.RoleOf(3))
	assert.Equal(t, RoleNone, h.RoleOf(4))
}

func TestHighlight_WithCopiesIndices(t *testing.T) {
	idx := []int{1, 2}
	h := NewHighlight().WithComparing(idx...)
	idx[0] = 9

	assert.Equal(t, []int{1, 2}, h.Comparing)
}

func TestRecorder_SnapshotsAreCopies(t *testing.T) {
	input := []int{3, 1, 2}
	rec := NewRecorder(types.BubbleSort, input)

	arr := rec.Array()
	rec.Record("first", "", NewHighlight())
	arr[0], arr[1] = arr[1], arr[0]
	rec.Record("second", "", NewHighlight())

	tr := rec.Trace()
	require.Equal(t, 2, tr.Len())
	assert.Equal(t, []int{3, 1, 2}, tr.Steps[0].Snapshot)
	assert.Equal(t, []int{1, 3, 2}, tr.Steps[1].Snapshot)
	assert.Equal(t, []int{3, 1, 2}, input, "recorder must work on its own copy")
	assert.Equal(t, types.BubbleSort, tr.Algorithm)
}

func TestTrace_Validate(t *testing.T) {
	complete := NewHighlight().WithSorted(0, 1)

	tests := []struct {
		name    string
		steps   []Step
		wantErr bool
	}{
		{
			name: "valid",
			steps: []Step{
				{Snapshot: []int{2, 1}, Highlight: NewHighlight()},
				{Snapshot: []int{1, 2}, Highlight: complete},
			},
		},
		{
			name:    "too short",
			steps:   []Step{{Snapshot: []int{1}, Highlight: NewHighlight()}},
			wantErr: true,
		},
		{
			name: "snapshot length drift",
			steps: []Step{
				{Snapshot: []int{2, 1}, Highlight: NewHighlight()},
				{Snapshot: []int{1}, Highlight: complete},
			},
			wantErr: true,
		},
		{
			name: "nil role list",
			steps: []Step{
				{Snapshot: []int{2, 1}, Highlight: Highlight{}},
				{Snapshot: []int{1, 2}, Highlight: complete},
			},
			wantErr: true,
		},
		{
			name: "completion not fully sorted",
			steps: []Step{
				{Snapshot: []int{2, 1}, Highlight: NewHighlight()},
				{Snapshot: []int{1, 2}, Highlight: NewHighlight().WithSorted(1)},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &Trace{Algorithm: types.QuickSort, Steps: tt.steps}
			err := tr.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTrace_NilLen(t *testing.T) {
	var tr *Trace
	assert.Equal(t, 0, tr.Len())
	assert.Nil(t, tr.Result())
}
