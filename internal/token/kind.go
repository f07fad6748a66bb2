package token

import "fmt"

// Kind represents the category of an expression token.
type Kind uint8

const (
	// Operand is a maximal run of letters, digits and dots.
	Operand Kind = iota + 1
	// Operator is one of + - * / ^.
	Operator
	// LeftParen is an opening parenthesis.
	LeftParen
	// RightParen is a closing parenthesis.
	RightParen
)

func (k Kind) String() string {
	switch k {
	case Operand:
		return "OPERAND"
	case Operator:
		return "OPERATOR"
	case LeftParen:
		return "LEFT_PAREN"
	case RightParen:
		return "RIGHT_PAREN"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	if k < Operand || k > RightParen {
		return nil, fmt.Errorf("invalid token kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name produced by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind converts a kind name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "OPERAND":
		return Operand, nil
	case "OPERATOR":
		return Operator, nil
	case "LEFT_PAREN":
		return LeftParen, nil
	case "RIGHT_PAREN":
		return RightParen, nil
	default:
		return 0, fmt.Errorf("invalid token kind: %q (expected: OPERAND|OPERATOR|LEFT_PAREN|RIGHT_PAREN)", s)
	}
}
