// Package rpn evaluates Reverse Polish Notation arithmetic.
//
// A line of whitespace-delimited tokens is classified token by token into
// Commands, which are applied to a segmented operand Stack. Operators may
// carry a repeat count: "3+" adds three times and "0*" multiplies until
// fewer than two operands remain.
//
//	s := rpn.NewStack(0)
//	outcome, err := rpn.Evaluate(s, "1 2 3 0+")
//	// outcome == rpn.Completed, err == nil, s.Values() == []float64{6}
//
// Nothing in this package blocks or locks; a Stack belongs to one caller.
package rpn
