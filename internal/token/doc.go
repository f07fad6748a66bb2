// Package token defines the lexical tokens of an infix arithmetic expression.
// Invariants:
//   - A Token is never mutated after creation; engines track where a token
//     is in a side table keyed by Token.ID.
//   - Token.Value is the literal text (operand text or one of + - * / ^ ( )).
//   - Token.ID is derived only from the token's index in its sequence and its
//     value, so tokenizing the same input twice yields the same ids.
//   - Precedence is 0 for operands and parentheses, 1 for + -, 2 for * /, 3 for ^.
package token
