package token

import "strconv"

// Token is one immutable lexical element of an expression.
type Token struct {
	ID         string `json:"id" yaml:"id" msgpack:"id"`
	Value      string `json:"value" yaml:"value" msgpack:"value"`
	Kind       Kind   `json:"kind" yaml:"kind" msgpack:"kind"`
	Precedence int    `json:"precedence" yaml:"precedence" msgpack:"precedence"`
	Span       Span   `json:"span" yaml:"span" msgpack:"span"`
}

// New builds the token at index pos of a sequence. Kind and precedence are
// derived from value.
func New(pos int, value string, span Span) Token {
	return Token{
		ID:         ID(pos, value),
		Value:      value,
		Kind:       KindOf(value),
		Precedence: PrecedenceOf(value),
		Span:       span,
	}
}

// ID is the stable identity of the token at index pos with the given value.
func ID(pos int, value string) string {
	return strconv.Itoa(pos) + "-" + value
}

// IsOperand reports whether the token is an operand.
func (t Token) IsOperand() bool { return t.Kind == Operand }

// IsOperator reports whether the token is one of + - * / ^.
func (t Token) IsOperator() bool { return t.Kind == Operator }

// IsParen reports whether the token is a parenthesis of either side.
func (t Token) IsParen() bool { return t.Kind == LeftParen || t.Kind == RightParen }

// RightAssoc reports whether the token is a right-associative operator.
func (t Token) RightAssoc() bool {
	return t.Kind == Operator && AssocOf(t.Value) == AssocRight
}

// Values returns the literal values of tokens in order.
func Values(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Value
	}
	return out
}
