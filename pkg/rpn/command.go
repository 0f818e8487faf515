package rpn

import "fmt"

// Kind selects the arithmetic of an operator.
type Kind int

// Operator kinds.
const (
	Add Kind = iota
	Subtract
	Multiply
	Divide
)

// Symbol returns the character that spells the operator in a token.
func (k Kind) Symbol() byte {
	switch k {
	case Add:
		return '+'
	case Subtract:
		return '-'
	case Multiply:
		return '*'
	case Divide:
		return '/'
	}
	return '?'
}

func (k Kind) String() string {
	switch k {
	case Add:
		return "add"
	case Subtract:
		return "subtract"
	case Multiply:
		return "multiply"
	case Divide:
		return "divide"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// kindOf maps an operator character to its Kind.
func kindOf(c byte) (Kind, bool) {
	switch c {
	case '+':
		return Add, true
	case '-':
		return Subtract, true
	case '*':
		return Multiply, true
	case '/':
		return Divide, true
	}
	return 0, false
}

// Command is the classified form of one token. It is one of Number,
// Operator, Drop, Clear or Quit.
type Command interface {
	command()
}

// Number pushes Value onto the stack.
type Number struct {
	Value float64
}

// Operator applies Kind to the stack Repeat times. A Repeat of zero means
// "until fewer than two operands remain".
type Operator struct {
	Kind   Kind
	Repeat int
}

// Drop discards the top of the stack.
type Drop struct{}

// Clear empties the stack.
type Clear struct{}

// Quit ends the session.
type Quit struct{}

func (Number) command()   {}
func (Operator) command() {}
func (Drop) command()     {}
func (Clear) command()    {}
func (Quit) command()     {}

func (n Number) String() string { return fmt.Sprintf("number %g", n.Value) }

func (o Operator) String() string {
	if o.Repeat == 1 {
		return string(o.Kind.Symbol())
	}
	return fmt.Sprintf("%d%c", o.Repeat, o.Kind.Symbol())
}

func (Drop) String() string  { return "drop" }
func (Clear) String() string { return "clear" }
func (Quit) String() string  { return "quit" }
