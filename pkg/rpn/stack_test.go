package rpn

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack_LIFOAcrossSegments(t *testing.T) {
	const c = 4
	for _, n := range []int{0, 1, c - 1, c, c + 1, 2 * c, 2*c + 1, 5*c + 3} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			s := NewStack(c)
			want := make([]float64, n)
			for i := range n {
				want[i] = float64(i) + 0.5
				s.Push(want[i])
			}
			require.Equal(t, n, s.Len())
			if diff := cmp.Diff(want, s.Values()); diff != "" {
				t.Fatalf("Values() mismatch (-want +got):\n%s", diff)
			}

			for i := n - 1; i >= 0; i-- {
				v, ok := s.Pop()
				require.True(t, ok)
				assert.Equal(t, want[i], v)
			}
			_, ok := s.Pop()
			assert.False(t, ok, "pop on empty stack")
			assert.Equal(t, 0, s.Len())
			assert.Equal(t, 1, s.Segments())
		})
	}
}

func TestStack_SegmentCount(t *testing.T) {
	s := NewStack(3)
	tests := []struct {
		push, pop    int
		wantLen      int
		wantSegments int
	}{
		{push: 3, wantLen: 3, wantSegments: 1},
		{push: 1, wantLen: 4, wantSegments: 2},
		{push: 2, wantLen: 6, wantSegments: 2},
		{push: 1, wantLen: 7, wantSegments: 3},
		{pop: 1, wantLen: 6, wantSegments: 2},
		{pop: 3, wantLen: 3, wantSegments: 1},
		{pop: 5, wantLen: 0, wantSegments: 1},
	}
	for i, tt := range tests {
		for range tt.push {
			s.Push(1)
		}
		for range tt.pop {
			s.Pop()
		}
		assert.Equal(t, tt.wantLen, s.Len(), "step %d", i)
		assert.Equal(t, tt.wantSegments, s.Segments(), "step %d", i)
	}
}

func TestStack_ClearKeepsFirstSegment(t *testing.T) {
	s := NewStack(2)
	first := s.segs[0]
	for i := range 7 {
		s.Push(float64(i))
	}
	require.Equal(t, 4, s.Segments())

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 1, s.Segments())
	assert.Same(t, first, s.segs[0])

	s.Push(42)
	assert.Same(t, first, s.segs[0])
	v, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, 42.0, v)
}

func TestStack_ClearEmptyIsNoop(t *testing.T) {
	s := NewStack(0)
	s.Clear()
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Values())
	assert.Equal(t, DefaultSegmentCapacity, s.Capacity())
}

func TestStack_AllIsRestartable(t *testing.T) {
	s := NewStack(2)
	for _, v := range []float64{1, 2, 3} {
		s.Push(v)
	}

	var first, second []float64
	for v := range s.All() {
		first = append(first, v)
	}
	for v := range s.All() {
		second = append(second, v)
	}
	assert.Equal(t, []float64{1, 2, 3}, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 3, s.Len())

	// Early break stops the traversal.
	var got []float64
	for v := range s.All() {
		got = append(got, v)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []float64{1, 2}, got)
}

func TestStack_SizeNeverNegative(t *testing.T) {
	s := NewStack(1)
	pushes, pops := 0, 0
	for i := range 50 {
		if i%3 == 2 {
			if _, ok := s.Pop(); ok {
				pops++
			}
			if _, ok := s.Pop(); ok {
				pops++
			}
			continue
		}
		s.Push(float64(i))
		pushes++
	}
	for range 100 {
		if _, ok := s.Pop(); ok {
			pops++
		}
	}
	assert.Equal(t, pushes-pops, s.Len())
	assert.Equal(t, 0, s.Len())
}
