package engine

import (
	"fmt"
	"strings"

	"shunt/internal/token"
)

const (
	startTitle    = "Start"
	finishedTitle = "Finished"
	discardTitle  = "Discard parentheses"
)

func readTitle(t token.Token) string   { return fmt.Sprintf("Read '%s'", t.Value) }
func outputTitle(t token.Token) string { return fmt.Sprintf("Output '%s'", t.Value) }
func pushTitle(t token.Token) string   { return fmt.Sprintf("Push '%s'", t.Value) }
func popTitle(t token.Token) string    { return fmt.Sprintf("Pop '%s'", t.Value) }

func startDetail(n int) string {
	switch n {
	case 0:
		return "The expression has no tokens."
	case 1:
		return "1 token waits in the input queue."
	default:
		return fmt.Sprintf("%d tokens wait in the input queue.", n)
	}
}

func readDetail(t token.Token) string {
	switch t.Kind {
	case token.Operand:
		return fmt.Sprintf("'%s' is an operand.", t.Value)
	case token.LeftParen:
		return "'(' opens a group."
	case token.RightParen:
		return "')' closes a group: operators are popped until the matching '('."
	default:
		return fmt.Sprintf("'%s' is an operator with precedence %d, %s-associative.",
			t.Value, t.Precedence, token.AssocOf(t.Value))
	}
}

func operandDetail(t token.Token) string {
	return fmt.Sprintf("Operands go straight to the output queue; '%s' is appended.", t.Value)
}

func openDetail(token.Token) string {
	return "'(' is pushed to mark where the group starts."
}

func groupPopDetail(top, closing token.Token) string {
	return fmt.Sprintf("'%s' belongs to the group closed by '%s' and moves to the output.", top.Value, closing.Value)
}

func discardDetail(open, closing token.Token) string {
	return fmt.Sprintf("'%s' is on top of the stack and matches '%s'; both are discarded.", open.Value, closing.Value)
}

func operatorPopDetail(top, incoming token.Token, higher bool, dir direction) string {
	if higher {
		return fmt.Sprintf("'%s' (precedence %d) binds tighter than '%s' (precedence %d) and leaves the stack first.",
			top.Value, top.Precedence, incoming.Value, incoming.Precedence)
	}
	if dir.reversed {
		return fmt.Sprintf("'%s' ties with '%s'; '%s' is right-associative, so in a right-to-left scan the earlier one leaves first.",
			top.Value, incoming.Value, incoming.Value)
	}
	return fmt.Sprintf("'%s' ties with '%s'; '%s' is left-associative, so the earlier one leaves first.",
		top.Value, incoming.Value, incoming.Value)
}

func pushDetail(t, below token.Token) string {
	switch {
	case below.ID == "":
		return fmt.Sprintf("The stack is empty; '%s' is pushed.", t.Value)
	case below.Kind == token.LeftParen:
		return fmt.Sprintf("'%s' is pushed above '(' inside the current group.", t.Value)
	default:
		return fmt.Sprintf("'%s' is pushed above '%s', which does not have to leave first.", t.Value, below.Value)
	}
}

func drainDetail(top token.Token) string {
	return fmt.Sprintf("The input is exhausted; '%s' moves from the stack to the output.", top.Value)
}

func (r *recorder) finishedDetail() string {
	if len(r.output) == 0 {
		return "Nothing to convert."
	}
	queue := strings.Join(token.Values(r.output), " ")
	if !r.dir.reversed {
		return fmt.Sprintf("Postfix: %s", queue)
	}
	prefix := strings.Join(token.Values(r.dir.finish(r.output)), " ")
	return fmt.Sprintf("Output queue: %s. Read in reverse for prefix: %s", queue, prefix)
}
