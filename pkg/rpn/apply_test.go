package rpn

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stackOf(vals ...float64) *Stack {
	s := NewStack(3)
	for _, v := range vals {
		s.Push(v)
	}
	return s
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		start  []float64
		kind   Kind
		repeat int
		want   []float64
	}{
		{"add once", []float64{3, 4}, Add, 1, []float64{7}},
		{"subtract is y-x", []float64{10, 4}, Subtract, 1, []float64{6}},
		{"multiply", []float64{3, 4}, Multiply, 1, []float64{12}},
		{"divide is y/x", []float64{10, 4}, Divide, 1, []float64{2.5}},
		{"repeat twice", []float64{1, 2, 3, 4}, Add, 2, []float64{1, 9}},
		{"until underflow", []float64{1, 2, 3}, Add, 0, []float64{6}},
		{"until underflow across segments", []float64{1, 2, 3, 4, 5, 6, 7, 8}, Multiply, 0, []float64{40320}},
		{"repeat beyond operands stops", []float64{2, 3}, Multiply, 5, []float64{6}},
		{"single operand untouched", []float64{9}, Subtract, 1, []float64{9}},
		{"empty untouched", nil, Add, 0, []float64{}},
		{"subtract chain", []float64{1, 2, 3}, Subtract, 0, []float64{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := stackOf(tt.start...)
			require.NoError(t, Apply(s, tt.kind, tt.repeat))
			if diff := cmp.Diff(tt.want, s.Values()); diff != "" {
				t.Errorf("stack mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestApply_DivisionByZero(t *testing.T) {
	t.Run("operands consumed", func(t *testing.T) {
		s := stackOf(10, 0)
		err := Apply(s, Divide, 1)
		assert.ErrorIs(t, err, ErrDivisionByZero)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("aborts remaining repeats", func(t *testing.T) {
		// 0/3 = 0 is pushed, then dividing 2 by that 0 fails and 5 8 stay.
		s := stackOf(5, 8, 2, 0, 3)
		err := Apply(s, Divide, 0)
		assert.ErrorIs(t, err, ErrDivisionByZero)
		assert.Equal(t, []float64{5, 8}, s.Values())
	})
}
