package rpn

import "iter"

// DefaultSegmentCapacity is the number of slots in each stack segment when
// NewStack is given a non-positive capacity.
const DefaultSegmentCapacity = 10

// segment is a fixed-capacity block of stack slots. n is the number of
// occupied slots, which are always vals[:n].
type segment struct {
	vals []float64
	n    int
}

// Stack is a LIFO store of float64 operands kept in fixed-capacity segments.
// Growing the stack appends a segment instead of copying stored values, so
// Push and Pop are O(1) and a stored value never moves.
//
// Every segment except the last is full. The first segment always exists;
// any later segment is released as soon as a Pop empties it.
type Stack struct {
	segs  []*segment
	size  int
	count int
}

// NewStack returns an empty stack whose segments hold capacity values each.
// A capacity of zero or less selects DefaultSegmentCapacity.
func NewStack(capacity int) *Stack {
	if capacity <= 0 {
		capacity = DefaultSegmentCapacity
	}
	return &Stack{
		segs: []*segment{newSegment(capacity)},
		size: capacity,
	}
}

func newSegment(capacity int) *segment {
	return &segment{vals: make([]float64, capacity)}
}

func (s *Stack) last() *segment {
	return s.segs[len(s.segs)-1]
}

// Push appends v to the top of the stack.
func (s *Stack) Push(v float64) {
	seg := s.last()
	if seg.n == s.size {
		seg = newSegment(s.size)
		s.segs = append(s.segs, seg)
	}
	seg.vals[seg.n] = v
	seg.n++
	s.count++
}

// Pop removes and returns the top value. It reports false when the stack
// is empty.
func (s *Stack) Pop() (float64, bool) {
	if s.count == 0 {
		return 0, false
	}
	seg := s.last()
	seg.n--
	v := seg.vals[seg.n]
	s.count--
	if seg.n == 0 && len(s.segs) > 1 {
		s.segs[len(s.segs)-1] = nil
		s.segs = s.segs[:len(s.segs)-1]
	}
	return v, true
}

// Len returns the number of values on the stack.
func (s *Stack) Len() int {
	return s.count
}

// Clear empties the stack. Every segment but the first is released; the
// first is kept and reused by the next Push.
func (s *Stack) Clear() {
	for i := 1; i < len(s.segs); i++ {
		s.segs[i] = nil
	}
	s.segs = s.segs[:1]
	s.segs[0].n = 0
	s.count = 0
}

// All returns an iterator over the stack from bottom to top. It does not
// modify the stack and may be ranged over any number of times.
func (s *Stack) All() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for _, seg := range s.segs {
			for _, v := range seg.vals[:seg.n] {
				if !yield(v) {
					return
				}
			}
		}
	}
}

// Values returns a copy of the stack contents from bottom to top.
func (s *Stack) Values() []float64 {
	out := make([]float64, 0, s.count)
	for v := range s.All() {
		out = append(out, v)
	}
	return out
}

// Segments returns the number of live segments.
func (s *Stack) Segments() int {
	return len(s.segs)
}

// Capacity returns the number of slots in each segment.
func (s *Stack) Capacity() int {
	return s.size
}
