package execution

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dshills/sortviz/pkg/domain/types"
	"github.com/dshills/sortviz/pkg/sorting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStepFilter_Rejects(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want error
	}{
		{"empty", "   ", ErrInvalidFilter},
		{"syntax", "len(swapping) >", ErrInvalidFilter},
		{"not bool", "index + 1", ErrInvalidFilter},
		{"unknown variable", "nodes > 1", ErrInvalidFilter},
		{"unsafe", `os.Getenv("HOME") == ""`, ErrUnsafeOperation},
		{"unsafe is also invalid", `exec.Command("ls") != nil`, ErrInvalidFilter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewStepFilter(tt.expr)
			require.Error(t, err)
			assert.Nil(t, f)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestNewStepFilter_UnsafeWrapsBothSentinels(t *testing.T) {
	_, err := NewStepFilter(`os.Getenv("HOME") == ""`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFilter)
	assert.ErrorIs(t, err, ErrUnsafeOperation)
	assert.Contains(t, err.Error(), `"os."`)
}

func TestStepFilter_Apply(t *testing.T) {
	tr, err := sorting.Run(string(types.QuickSort), []int{5, 2, 9, 1})
	require.NoError(t, err)

	tests := []struct {
		name  string
		expr  string
		check func(t *testing.T, indices []int)
	}{
		{
			name: "pivot steps",
			expr: "len(pivot) > 0",
			check: func(t *testing.T, indices []int) {
				require.NotEmpty(t, indices)
				for _, i := range indices {
					assert.NotEmpty(t, tr.Steps[i].Highlight.Pivot)
				}
			},
		},
		{
			name: "first and last",
			expr: fmt.Sprintf("index == 0 || index == %d", tr.Len()-1),
			check: func(t *testing.T, indices []int) {
				assert.Equal(t, []int{0, tr.Len() - 1}, indices)
			},
		},
		{
			name: "explanation text",
			expr: `explanation contains "Starting"`,
			check: func(t *testing.T, indices []int) {
				assert.Equal(t, []int{0}, indices)
			},
		},
		{
			name: "no match yields empty slice",
			expr: "index < 0",
			check: func(t *testing.T, indices []int) {
				assert.NotNil(t, indices)
				assert.Empty(t, indices)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewStepFilter(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expr, f.String())

			indices, err := f.Apply(tr)
			require.NoError(t, err)
			tt.check(t, indices)
		})
	}
}
