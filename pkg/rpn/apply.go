package rpn

// Apply runs the operator kind against s up to repeat times. A repeat of
// zero runs until one operand is left. Running out of operands stops Apply
// without error.
//
// Each step pops x (top) and y, then pushes x+y, y-x, x*y or y/x. Dividing
// by zero returns ErrDivisionByZero and skips the remaining steps; x and y
// are not pushed back.
func Apply(s *Stack, kind Kind, repeat int) error {
	if repeat == 0 {
		repeat = max(s.Len()-1, 0)
	}
	for range repeat {
		if s.Len() <= 1 {
			return nil
		}
		x, _ := s.Pop()
		y, _ := s.Pop()

		var res float64
		switch kind {
		case Add:
			res = x + y
		case Subtract:
			res = y - x
		case Multiply:
			res = x * y
		case Divide:
			if x == 0 {
				return ErrDivisionByZero
			}
			res = y / x
		}
		s.Push(res)
	}
	return nil
}
