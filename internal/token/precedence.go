package token

// Assoc is the tie-break rule for operators of equal precedence.
type Assoc uint8

const (
	AssocLeft Assoc = iota
	AssocRight
)

func (a Assoc) String() string {
	if a == AssocRight {
		return "right"
	}
	return "left"
}

var precedence = map[string]int{
	"^": 3,
	"*": 2,
	"/": 2,
	"+": 1,
	"-": 1,
}

// PrecedenceOf returns the binding rank of value; 0 for anything that is not an operator.
func PrecedenceOf(value string) int {
	return precedence[value]
}

// AssocOf returns the associativity of an operator value. Only ^ is right-associative.
func AssocOf(value string) Assoc {
	if value == "^" {
		return AssocRight
	}
	return AssocLeft
}

// KindOf classifies a literal value. Anything that is not an operator or a
// parenthesis is an operand.
func KindOf(value string) Kind {
	switch value {
	case "(":
		return LeftParen
	case ")":
		return RightParen
	}
	if _, ok := precedence[value]; ok {
		return Operator
	}
	return Operand
}

// IsOperatorByte reports whether b is one of the single-character symbols
// the lexer emits as its own token.
func IsOperatorByte(b byte) bool {
	switch b {
	case '+', '-', '*', '/', '^', '(', ')':
		return true
	default:
		return false
	}
}
