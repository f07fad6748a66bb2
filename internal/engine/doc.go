// Package engine runs the Shunting-yard algorithm over a token sequence and
// records every intermediate state as an immutable Step.
//
// # Model
//
// Tokens never change. Where a token currently is lives in a side table
// (token id → Location) owned by one run. Each Location names one of four
// zones and a position inside it:
//
//   - ZoneInput: tokens not yet consumed, in reading order
//   - ZoneStack: the operator stack, bottom first
//   - ZoneOutput: the output queue, in emission order
//   - ZoneDiscarded: matched parentheses (position is always 0)
//
// After every event the positions of the input, stack and output zones are
// exactly 0..n-1, and a Step captures a full copy of the table.
//
// # Directions
//
// Postfix scans left to right. Prefix reverses the tokens and swaps the
// parentheses first, pops on an operator tie only for right-associative
// operators, and leaves the output queue unreversed: Result.Notation applies
// the final reversal, the steps never do.
//
// # Usage
//
//	res, err := engine.Run("A + B * C", engine.Postfix)
//	if errors.Is(err, engine.ErrMismatchedParentheses) {
//	    // invalid input, not a defect
//	}
//	fmt.Println(res.Notation()) // A B C * +
//
// A run keeps no state outside the returned Result; Run is safe to call
// from any number of goroutines.
package engine
