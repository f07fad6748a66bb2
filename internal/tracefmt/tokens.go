package tracefmt

import (
	"encoding/json"
	"fmt"
	"io"

	"shunt/internal/token"
)

// FormatTokensPretty prints one token per line.
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-11s %-6q prec=%d id=%s at %s\n",
			i+1, tok.Kind, tok.Value, tok.Precedence, tok.ID, tok.Span); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON prints the tokens as an indented JSON array; an empty
// input prints [].
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	if tokens == nil {
		tokens = []token.Token{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tokens)
}
